// Package rag implements the retrieval-augmented generation core:
// chunk embedding, vector retrieval, context assembly, and answer
// generation.
//
// The package exposes two request-scoped pipelines. Ingestor turns a
// (title, content) submission into a stored Document plus its embedded
// Chunks. Answerer turns a question into a response by embedding it,
// retrieving the most similar chunks above a similarity cutoff, and
// feeding them as context to a chat-completion model.
//
// Persistence and model access are behind consumer-defined interfaces
// (DocumentStore, ChunkSearcher, Generator, ai.Embedder), so both
// pipelines are fully testable with in-memory fakes. Failures surface
// as sentinel errors (ErrValidation, ErrEmbedding, ErrRetrieval,
// ErrIngestion) matched with errors.Is; nothing is retried here —
// retries carry cost and rate-limit implications that belong to the
// caller.
package rag
