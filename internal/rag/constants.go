package rag

// VectorDimension is the embedding dimensionality used across the whole
// corpus. Every stored chunk embedding and every query embedding must
// have exactly this length; the pgvector schema in db/migrations declares
// the same value. Changing it mid-deployment corrupts stored vectors, so
// the adapter rejects any vector of a different length before it reaches
// the store.
const VectorDimension = 768

// Retrieval defaults.
const (
	// DefaultTopK is the maximum number of chunks returned per query.
	DefaultTopK int32 = 5

	// DefaultSimilarityCutoff is the minimum cosine similarity a chunk
	// must strictly exceed to be eligible for retrieval.
	DefaultSimilarityCutoff = 0.5
)

// DefaultTemperature is the sampling temperature for answer generation.
const DefaultTemperature float32 = 0.7

// NoContextMessage is returned when no stored chunk clears the
// similarity cutoff. This is a successful outcome, not an error, and the
// generator is never invoked for it.
const NoContextMessage = "No relevant information found for your question."

// FallbackMessage is returned when the generator produces no usable text.
const FallbackMessage = "I don't know."

// answerSystemTemplate is the fixed system instruction for answer
// generation. The assembled retrieval context is substituted in.
const answerSystemTemplate = `You are a helpful AI assistant. Use only the context below to answer the user's question.
If the context does not contain the answer, say "I don't know."

Context:
%s`
