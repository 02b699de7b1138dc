package rag

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline failures. Callers match with errors.Is;
// wrapped errors carry the specific cause.
var (
	// ErrValidation indicates missing or empty required input.
	ErrValidation = errors.New("validation failed")

	// ErrEmbedding indicates the embedding provider returned no vector,
	// a malformed shape, or a wrong dimensionality.
	ErrEmbedding = errors.New("embedding failed")

	// ErrRetrieval indicates a query vector dimensionality mismatch or an
	// unreachable document store.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrIngestion indicates a failure during the ingest unit of work.
	// It always wraps the more specific underlying cause.
	ErrIngestion = errors.New("ingestion failed")
)

// EmbedError reports a failed embedding batch. Index identifies the
// input the provider failed on; it is -1 when the call itself failed
// before any per-input result was available.
//
// EmbedError matches ErrEmbedding under errors.Is.
type EmbedError struct {
	Index int
	Err   error
}

func (e *EmbedError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("embedding batch: %v", e.Err)
	}
	return fmt.Sprintf("embedding input %d: %v", e.Index, e.Err)
}

func (e *EmbedError) Unwrap() []error {
	return []error{ErrEmbedding, e.Err}
}
