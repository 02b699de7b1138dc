package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"google.golang.org/genai"
)

// mockEmbedClient implements ai.Embedder for testing
type mockEmbedClient struct {
	embedErr    error       // Error to return from Embed
	vectors     [][]float32 // Vectors to return, one per input; nil generates defaults
	dimension   int         // Dimension of generated default vectors
	callCount   int         // Track number of calls
	lastInputs  []string    // Track input texts for verification
	lastOptions any         // Track request options for verification
}

func (m *mockEmbedClient) Name() string {
	return "mock-embedder"
}

func (m *mockEmbedClient) Register(r api.Registry) {
	// No-op for testing
}

func (m *mockEmbedClient) Embed(ctx context.Context, req *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	m.callCount++
	m.lastOptions = req.Options

	m.lastInputs = m.lastInputs[:0]
	for _, doc := range req.Input {
		if len(doc.Content) > 0 {
			m.lastInputs = append(m.lastInputs, doc.Content[0].Text)
		}
	}

	if m.embedErr != nil {
		return nil, m.embedErr
	}

	vectors := m.vectors
	if vectors == nil {
		dim := m.dimension
		if dim == 0 {
			dim = 3
		}
		vectors = make([][]float32, len(req.Input))
		for i := range vectors {
			v := make([]float32, dim)
			v[0] = float32(i + 1)
			vectors[i] = v
		}
	}

	embeddings := make([]*ai.Embedding, len(vectors))
	for i, v := range vectors {
		embeddings[i] = &ai.Embedding{Embedding: v}
	}
	return &ai.EmbedResponse{Embeddings: embeddings}, nil
}

func TestNewEmbedder_Defaults(t *testing.T) {
	e := NewEmbedder(&mockEmbedClient{}, 0, nil)

	if e.Dimension() != VectorDimension {
		t.Errorf("expected default dimension %d, got %d", VectorDimension, e.Dimension())
	}
	if e.logger == nil {
		t.Error("logger should never be nil")
	}
}

func TestEmbedTexts_Success(t *testing.T) {
	client := &mockEmbedClient{
		vectors: [][]float32{
			{0.1, 0.2, 0.3},
			{0.4, 0.5, 0.6},
		},
	}
	e := NewEmbedder(client, 3, nil)

	vectors, err := e.EmbedTexts(context.Background(), []string{"first text", "second text"})
	if err != nil {
		t.Fatalf("EmbedTexts failed: %v", err)
	}

	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 0.1 || vectors[1][0] != 0.4 {
		t.Error("vectors not returned in input order")
	}
	if client.callCount != 1 {
		t.Errorf("expected a single batched provider call, got %d", client.callCount)
	}
	if len(client.lastInputs) != 2 || client.lastInputs[0] != "first text" {
		t.Errorf("inputs not forwarded correctly: %v", client.lastInputs)
	}
}

func TestEmbedTexts_ForwardsRequestOptions(t *testing.T) {
	// Gemini embedding models emit 3072-dimensional vectors unless the
	// request asks for truncated output, so the provider options must
	// reach the embed request unchanged.
	dim := int32(VectorDimension)
	options := &genai.EmbedContentConfig{OutputDimensionality: &dim}

	client := &mockEmbedClient{vectors: [][]float32{{0.1, 0.2, 0.3}}}
	e := NewEmbedder(client, 3, nil, WithRequestOptions(options))

	if _, err := e.EmbedTexts(context.Background(), []string{"text"}); err != nil {
		t.Fatalf("EmbedTexts failed: %v", err)
	}

	got, ok := client.lastOptions.(*genai.EmbedContentConfig)
	if !ok {
		t.Fatalf("request options have type %T, want *genai.EmbedContentConfig", client.lastOptions)
	}
	if got.OutputDimensionality == nil || *got.OutputDimensionality != dim {
		t.Errorf("OutputDimensionality = %v, want %d", got.OutputDimensionality, dim)
	}
}

func TestEmbedTexts_NoOptionsByDefault(t *testing.T) {
	client := &mockEmbedClient{vectors: [][]float32{{0.1, 0.2, 0.3}}}
	e := NewEmbedder(client, 3, nil)

	if _, err := e.EmbedTexts(context.Background(), []string{"text"}); err != nil {
		t.Fatalf("EmbedTexts failed: %v", err)
	}
	if client.lastOptions != nil {
		t.Errorf("expected nil request options, got %v", client.lastOptions)
	}
}

func TestEmbedTexts_EmptyBatch(t *testing.T) {
	client := &mockEmbedClient{}
	e := NewEmbedder(client, 3, nil)

	vectors, err := e.EmbedTexts(context.Background(), nil)
	if err != nil {
		t.Fatalf("empty batch should succeed, got %v", err)
	}
	if vectors != nil {
		t.Errorf("expected nil vectors for empty batch, got %v", vectors)
	}
	if client.callCount != 0 {
		t.Error("provider should not be called for an empty batch")
	}
}

func TestEmbedTexts_ProviderError(t *testing.T) {
	providerErr := errors.New("provider unavailable")
	e := NewEmbedder(&mockEmbedClient{embedErr: providerErr}, 3, nil)

	_, err := e.EmbedTexts(context.Background(), []string{"text"})
	if err == nil {
		t.Fatal("expected error")
	}

	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("expected error to match ErrEmbedding, got %v", err)
	}
	if !errors.Is(err, providerErr) {
		t.Errorf("expected error to wrap provider cause, got %v", err)
	}

	var embedErr *EmbedError
	if !errors.As(err, &embedErr) {
		t.Fatalf("expected *EmbedError, got %T", err)
	}
	if embedErr.Index != -1 {
		t.Errorf("whole-call failure should report index -1, got %d", embedErr.Index)
	}
}

func TestEmbedTexts_CountMismatch(t *testing.T) {
	client := &mockEmbedClient{
		vectors: [][]float32{{0.1, 0.2, 0.3}}, // one vector for two inputs
	}
	e := NewEmbedder(client, 3, nil)

	_, err := e.EmbedTexts(context.Background(), []string{"a.", "b."})
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("expected ErrEmbedding on count mismatch, got %v", err)
	}
}

func TestEmbedTexts_EmptyVector(t *testing.T) {
	client := &mockEmbedClient{
		vectors: [][]float32{{0.1, 0.2, 0.3}, {}},
	}
	e := NewEmbedder(client, 3, nil)

	_, err := e.EmbedTexts(context.Background(), []string{"a.", "b."})
	if !errors.Is(err, ErrEmbedding) {
		t.Fatalf("expected ErrEmbedding on empty vector, got %v", err)
	}

	var embedErr *EmbedError
	if !errors.As(err, &embedErr) {
		t.Fatalf("expected *EmbedError, got %T", err)
	}
	if embedErr.Index != 1 {
		t.Errorf("expected failing index 1, got %d", embedErr.Index)
	}
}

func TestEmbedTexts_DimensionMismatch(t *testing.T) {
	client := &mockEmbedClient{
		vectors: [][]float32{{0.1, 0.2}}, // dimension 2, expected 3
	}
	e := NewEmbedder(client, 3, nil)

	_, err := e.EmbedTexts(context.Background(), []string{"text"})
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("expected ErrEmbedding on dimension mismatch, got %v", err)
	}
}
