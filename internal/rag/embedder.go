package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
)

// Embedder adapts a Genkit ai.Embedder to the pipeline contract: one
// fixed-length vector per input text, in input order. The provider is a
// black box; the adapter validates shape and dimensionality before a
// batch is accepted.
//
// Embedder is safe for concurrent use.
type Embedder struct {
	client    ai.Embedder
	dimension int
	options   any
	logger    *slog.Logger
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithRequestOptions sets provider-specific options attached to every
// embed request. Providers whose models emit a different native
// dimensionality need this to request truncated output — e.g. a Gemini
// EmbedContentConfig with OutputDimensionality set to the expected
// vector length.
func WithRequestOptions(options any) EmbedderOption {
	return func(e *Embedder) {
		e.options = options
	}
}

// NewEmbedder creates an Embedder producing vectors of the given
// dimensionality. Non-positive dimension falls back to VectorDimension;
// nil logger falls back to slog.Default().
func NewEmbedder(client ai.Embedder, dimension int, logger *slog.Logger, opts ...EmbedderOption) *Embedder {
	if dimension <= 0 {
		dimension = VectorDimension
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Embedder{
		client:    client,
		dimension: dimension,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dimension returns the expected embedding vector length.
func (e *Embedder) Dimension() int {
	return e.dimension
}

// EmbedTexts embeds texts in a single provider call and returns one
// vector per input, order-preserving. It fails with an *EmbedError
// (matching ErrEmbedding) if the provider errors, returns a vector count
// different from the input count, or returns any vector whose length is
// not the expected dimensionality. An empty batch yields nil, nil.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	input := make([]*ai.Document, len(texts))
	for i, text := range texts {
		input[i] = ai.DocumentFromText(text, nil)
	}

	resp, err := e.client.Embed(ctx, &ai.EmbedRequest{Input: input, Options: e.options})
	if err != nil {
		return nil, &EmbedError{Index: -1, Err: err}
	}

	if got, want := len(resp.Embeddings), len(texts); got != want {
		return nil, &EmbedError{
			Index: min(got, want-1),
			Err:   fmt.Errorf("provider returned %d embeddings for %d inputs", got, want),
		}
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Embedding) == 0 {
			return nil, &EmbedError{Index: i, Err: errors.New("empty embedding returned")}
		}
		if len(emb.Embedding) != e.dimension {
			return nil, &EmbedError{
				Index: i,
				Err:   fmt.Errorf("embedding has dimension %d, expected %d", len(emb.Embedding), e.dimension),
			}
		}
		vectors[i] = emb.Embedding
	}

	e.logger.Debug("embedded batch", "inputs", len(texts), "dimension", e.dimension)
	return vectors, nil
}
