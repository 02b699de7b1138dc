package rag

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Document is an ingested text submission. Documents are immutable after
// ingestion: the core never updates or deletes them.
type Document struct {
	ID          uuid.UUID
	Title       string
	Content     string
	Fingerprint string // SHA-256 hex digest of Content
	CreatedAt   time.Time
}

// Chunk is one retrievable unit of a Document. A chunk belongs to exactly
// one document and is created once, in a batch, right after its parent.
// Number is the chunk's position within the document, dense from 0.
type Chunk struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	Number      int32
	Text        string
	Fingerprint string // SHA-256 hex digest of Text
	Embedding   pgvector.Vector
}

// Match is one retrieval result: a stored chunk and its cosine
// similarity to the query vector.
type Match struct {
	ChunkID    uuid.UUID
	Text       string
	Similarity float64
}

// Fingerprint returns the SHA-256 hex digest of text. It is a content
// identity for dedup and integrity checks, not a security primitive.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
