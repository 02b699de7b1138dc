package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ganderhq/gander/internal/chunker"
)

// mockDocumentStore implements DocumentStore for testing
type mockDocumentStore struct {
	insertDocErr    error
	insertChunksErr error

	docID uuid.UUID

	insertDocCalls    int
	insertChunksCalls int
	lastDoc           *Document
	lastChunks        []Chunk
}

func (m *mockDocumentStore) InsertDocument(ctx context.Context, doc *Document) (uuid.UUID, error) {
	m.insertDocCalls++
	m.lastDoc = doc
	if m.insertDocErr != nil {
		return uuid.Nil, m.insertDocErr
	}
	if m.docID == uuid.Nil {
		m.docID = uuid.New()
	}
	return m.docID, nil
}

func (m *mockDocumentStore) InsertChunks(ctx context.Context, chunks []Chunk) error {
	m.insertChunksCalls++
	m.lastChunks = chunks
	return m.insertChunksErr
}

func newTestIngestor(store DocumentStore, client *mockEmbedClient) *Ingestor {
	return NewIngestor(store, NewEmbedder(client, 3, nil), chunker.New(2), nil)
}

func TestIngest_Success(t *testing.T) {
	store := &mockDocumentStore{}
	client := &mockEmbedClient{dimension: 3}
	ing := newTestIngestor(store, client)

	content := "Go is a statically typed language. It compiles quickly. Concurrency is built in."
	doc, chunks, err := ing.Ingest(context.Background(), "Go overview", content)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if doc.ID != store.docID {
		t.Error("document id not taken from store")
	}
	if doc.Fingerprint != Fingerprint(content) {
		t.Error("document fingerprint mismatch")
	}

	// 3 sentences with a chunk size of 2: one full chunk plus a remainder.
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.DocumentID != doc.ID {
			t.Errorf("chunk %d references wrong document", i)
		}
		if c.Number != int32(i) {
			t.Errorf("chunk %d has number %d, numbers must be dense from 0", i, c.Number)
		}
		if c.Fingerprint != Fingerprint(c.Text) {
			t.Errorf("chunk %d fingerprint mismatch", i)
		}
		if c.Embedding.Slice() == nil {
			t.Errorf("chunk %d has no embedding", i)
		}
	}

	if store.insertDocCalls != 1 || store.insertChunksCalls != 1 {
		t.Errorf("expected one insert of each kind, got doc=%d chunks=%d",
			store.insertDocCalls, store.insertChunksCalls)
	}
	if client.callCount != 1 {
		t.Errorf("expected a single embedding batch, got %d calls", client.callCount)
	}
}

func TestIngest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
	}{
		{"empty title", "", "Some content."},
		{"whitespace title", "   ", "Some content."},
		{"empty content", "Title", ""},
		{"whitespace content", "Title", " \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockDocumentStore{}
			client := &mockEmbedClient{dimension: 3}
			ing := newTestIngestor(store, client)

			_, _, err := ing.Ingest(context.Background(), tt.title, tt.content)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}

			// Validation must reject before any side effect.
			if store.insertDocCalls != 0 || store.insertChunksCalls != 0 || client.callCount != 0 {
				t.Error("no store or embedder call should happen on invalid input")
			}
		})
	}
}

func TestIngest_ZeroChunks(t *testing.T) {
	store := &mockDocumentStore{}
	client := &mockEmbedClient{dimension: 3}
	ing := newTestIngestor(store, client)

	// Content without terminating punctuation yields no chunks.
	doc, chunks, err := ing.Ingest(context.Background(), "Fragment", "no sentence terminator here")
	if err != nil {
		t.Fatalf("zero-chunk ingestion must succeed, got %v", err)
	}

	if doc == nil || doc.ID == uuid.Nil {
		t.Fatal("document should still be persisted")
	}
	if chunks != nil {
		t.Errorf("expected nil chunks, got %v", chunks)
	}
	if client.callCount != 0 {
		t.Error("embedder should not be called with zero chunks")
	}
	if store.insertChunksCalls != 0 {
		t.Error("no chunk insert should happen with zero chunks")
	}
}

func TestIngest_DocumentInsertFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &mockDocumentStore{insertDocErr: storeErr}
	client := &mockEmbedClient{dimension: 3}
	ing := newTestIngestor(store, client)

	_, _, err := ing.Ingest(context.Background(), "Title", "One sentence.")
	if !errors.Is(err, ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store cause, got %v", err)
	}
	if client.callCount != 0 {
		t.Error("embedder should not run after a failed document insert")
	}
}

func TestIngest_EmbeddingFailure(t *testing.T) {
	store := &mockDocumentStore{}
	client := &mockEmbedClient{embedErr: errors.New("provider down")}
	ing := newTestIngestor(store, client)

	_, _, err := ing.Ingest(context.Background(), "Title", "First sentence. Second sentence.")
	if !errors.Is(err, ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("embedding causes must also match ErrEmbedding, got %v", err)
	}

	// The batch failed, so no chunk rows may be written.
	if store.insertChunksCalls != 0 {
		t.Error("no chunks may be written after a failed embedding batch")
	}
}

func TestIngest_ChunkInsertFailure(t *testing.T) {
	store := &mockDocumentStore{insertChunksErr: errors.New("unique violation")}
	client := &mockEmbedClient{dimension: 3}
	ing := newTestIngestor(store, client)

	_, _, err := ing.Ingest(context.Background(), "Title", "First sentence. Second sentence.")
	if !errors.Is(err, ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}
