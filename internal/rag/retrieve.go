package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pgvector/pgvector-go"
)

// ChunkSearcher is the document store's similarity query surface. The
// store computes cosine similarity (1 - cosine distance) against every
// stored chunk embedding, returns only rows strictly above cutoff,
// ordered by similarity descending with chunk id as the tie-break, and
// limited to limit rows. The embedding is passed as a bound parameter,
// never interpolated into query text.
//
// Interfaces are defined by the consumer; internal/store provides the
// PostgreSQL implementation.
type ChunkSearcher interface {
	SearchChunks(ctx context.Context, embedding pgvector.Vector, cutoff float64, limit int32) ([]Match, error)
}

// SearchOption configures a retrieval using the functional options
// pattern.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK   int32
	cutoff float64
}

// WithTopK sets the maximum number of matches to return.
// Default is DefaultTopK.
func WithTopK(k int32) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithCutoff sets the similarity cutoff; only chunks strictly above it
// are eligible. Default is DefaultSimilarityCutoff.
func WithCutoff(cutoff float64) SearchOption {
	return func(c *searchConfig) {
		c.cutoff = cutoff
	}
}

func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{
		topK:   DefaultTopK,
		cutoff: DefaultSimilarityCutoff,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Retriever returns the stored chunks most similar to a query vector.
// It validates the query's dimensionality before touching the store: a
// mismatched vector must fail loudly, never produce a silently wrong
// score.
//
// Retriever is safe for concurrent use.
type Retriever struct {
	searcher  ChunkSearcher
	dimension int
	logger    *slog.Logger
}

// NewRetriever creates a Retriever over the given searcher. Non-positive
// dimension falls back to VectorDimension; nil logger falls back to
// slog.Default().
func NewRetriever(searcher ChunkSearcher, dimension int, logger *slog.Logger) *Retriever {
	if dimension <= 0 {
		dimension = VectorDimension
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		searcher:  searcher,
		dimension: dimension,
		logger:    logger,
	}
}

// Retrieve returns at most topK chunks with similarity strictly greater
// than the cutoff, ordered by similarity descending. An empty result is
// a valid outcome, distinct from a retrieval failure.
//
// Fails with ErrRetrieval if the query vector's length does not match
// the stored embedding dimensionality or if the store query fails.
func (r *Retriever) Retrieve(ctx context.Context, queryVector []float32, opts ...SearchOption) ([]Match, error) {
	cfg := buildSearchConfig(opts)

	if len(queryVector) != r.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, stored embeddings have %d",
			ErrRetrieval, len(queryVector), r.dimension)
	}

	matches, err := r.searcher.SearchChunks(ctx, pgvector.NewVector(queryVector), cfg.cutoff, cfg.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: searching chunks: %w", ErrRetrieval, err)
	}

	r.logger.Debug("retrieved chunks",
		"matches", len(matches),
		"top_k", cfg.topK,
		"cutoff", cfg.cutoff,
	)
	return matches, nil
}
