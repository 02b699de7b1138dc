package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/ganderhq/gander/internal/chunker"
)

// DocumentStore is the persistence contract the ingestion pipeline
// requires: insert one document and return its generated id, then
// bulk-insert the document's chunks as a unit of work.
//
// Interfaces are defined by the consumer; internal/store provides the
// PostgreSQL implementation.
type DocumentStore interface {
	InsertDocument(ctx context.Context, doc *Document) (uuid.UUID, error)
	InsertChunks(ctx context.Context, chunks []Chunk) error
}

// Ingestor orchestrates Chunker, Embedder, and DocumentStore for a new
// document submission. Ingestion is append-only: re-submitting identical
// content creates a new document and chunk set; fingerprints are stored
// for integrity but uniqueness is not enforced.
//
// Ingestor is safe for concurrent use; concurrent ingestions only append
// and cannot conflict.
type Ingestor struct {
	store    DocumentStore
	embedder *Embedder
	chunker  *chunker.Chunker
	logger   *slog.Logger
}

// NewIngestor creates an Ingestor. A nil splitter falls back to the
// default chunk size; a nil logger falls back to slog.Default().
func NewIngestor(store DocumentStore, embedder *Embedder, splitter *chunker.Chunker, logger *slog.Logger) *Ingestor {
	if splitter == nil {
		splitter = chunker.New(chunker.DefaultMaxSentences)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{
		store:    store,
		embedder: embedder,
		chunker:  splitter,
		logger:   logger,
	}
}

// Ingest validates the submission, persists the document, splits the
// content into chunks, embeds them in one batch, and persists the chunks
// referencing the document. It returns the stored document and its
// chunks.
//
// Empty title or content fails with ErrValidation before any side
// effect. Content that yields zero chunks still succeeds, storing a
// document with no retrievable chunks. Failures after the document
// insert fail with ErrIngestion wrapping the specific cause (an
// embedding failure also matches ErrEmbedding); the already-persisted
// document is not rolled back here — whether an orphan document can
// exist is the store's durability concern, and no chunk rows are written
// on a failed batch.
func (ing *Ingestor) Ingest(ctx context.Context, title, content string) (*Document, []Chunk, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	doc := &Document{
		Title:       title,
		Content:     content,
		Fingerprint: Fingerprint(content),
	}

	id, err := ing.store.InsertDocument(ctx, doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: inserting document: %w", ErrIngestion, err)
	}
	doc.ID = id

	texts := ing.chunker.Split(content)
	if len(texts) == 0 {
		ing.logger.Info("ingested document without retrievable chunks",
			"document_id", id, "title", title)
		return doc, nil, nil
	}

	vectors, err := ing.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: embedding chunks for document %s: %w", ErrIngestion, id, err)
	}

	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{
			DocumentID:  id,
			Number:      int32(i), // #nosec G115 -- i is bounded by the chunk count of one document
			Text:        text,
			Fingerprint: Fingerprint(text),
			Embedding:   pgvector.NewVector(vectors[i]),
		}
	}

	if err := ing.store.InsertChunks(ctx, chunks); err != nil {
		return nil, nil, fmt.Errorf("%w: inserting chunks for document %s: %w", ErrIngestion, id, err)
	}

	ing.logger.Info("ingested document",
		"document_id", id,
		"title", title,
		"chunks", len(chunks),
	)
	return doc, chunks, nil
}
