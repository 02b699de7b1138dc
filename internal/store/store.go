// Package store persists documents and chunks in PostgreSQL with
// pgvector embeddings. It implements the rag package's DocumentStore and
// ChunkSearcher contracts.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/ganderhq/gander/internal/rag"
)

const (
	insertDocumentSQL = `
		INSERT INTO documents (title, content, fingerprint)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	insertChunkSQL = `
		INSERT INTO chunks (document_id, chunk_number, text, fingerprint, embedding)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	// similarity is 1 - cosine distance; rows must strictly exceed the
	// cutoff and ties break on id for a deterministic order.
	searchChunksSQL = `
		SELECT id, text, 1 - (embedding <=> $1) AS similarity
		FROM chunks
		WHERE 1 - (embedding <=> $1) > $2
		ORDER BY similarity DESC, id
		LIMIT $3`
)

// Store manages document and chunk persistence with a PostgreSQL backend.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates a new Store over the given connection pool.
// A nil logger uses slog.Default().
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		pool:   pool,
		logger: logger,
	}
}

// InsertDocument persists a document and returns its generated id. The
// document's ID and CreatedAt fields are populated from the database.
func (s *Store) InsertDocument(ctx context.Context, doc *rag.Document) (uuid.UUID, error) {
	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, insertDocumentSQL, doc.Title, doc.Content, doc.Fingerprint).
		Scan(&id, &createdAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert document: %w", err)
	}

	doc.ID = pgUUIDToUUID(id)
	doc.CreatedAt = createdAt.Time

	s.logger.Debug("inserted document", "id", doc.ID, "title", doc.Title)
	return doc.ID, nil
}

// InsertChunks persists a document's chunks in a single transaction:
// either every chunk is stored or none are. Generated ids are written
// back into the given slice.
func (s *Store) InsertChunks(ctx context.Context, chunks []rag.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(ctx); err != nil {
				s.logger.Error("failed to rollback chunk insert", "error", err)
			}
		}
	}()

	for i := range chunks {
		c := &chunks[i]
		var id pgtype.UUID
		err := tx.QueryRow(ctx, insertChunkSQL,
			uuidToPgUUID(c.DocumentID), c.Number, c.Text, c.Fingerprint, c.Embedding,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", c.Number, err)
		}
		c.ID = pgUUIDToUUID(id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chunk insert: %w", err)
	}
	committed = true

	s.logger.Debug("inserted chunks",
		"document_id", chunks[0].DocumentID,
		"count", len(chunks),
	)
	return nil
}

// SearchChunks returns the chunks whose cosine similarity to embedding
// strictly exceeds cutoff, ordered by similarity descending with id as
// the tie-break, limited to limit rows. The embedding travels as a bound
// parameter, never as query text.
func (s *Store) SearchChunks(ctx context.Context, embedding pgvector.Vector, cutoff float64, limit int32) ([]rag.Match, error) {
	rows, err := s.pool.Query(ctx, searchChunksSQL, embedding, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	var matches []rag.Match
	for rows.Next() {
		var (
			id         pgtype.UUID
			text       string
			similarity float64
		)
		if err := rows.Scan(&id, &text, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan chunk row: %w", err)
		}
		matches = append(matches, rag.Match{
			ChunkID:    pgUUIDToUUID(id),
			Text:       text,
			Similarity: similarity,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chunk rows: %w", err)
	}

	return matches, nil
}

// uuidToPgUUID converts uuid.UUID to pgtype.UUID.
func uuidToPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{
		Bytes: id,
		Valid: true,
	}
}

// pgUUIDToUUID converts pgtype.UUID to uuid.UUID.
func pgUUIDToUUID(pgUUID pgtype.UUID) uuid.UUID {
	if !pgUUID.Valid {
		return uuid.Nil
	}
	return pgUUID.Bytes
}
