package model

import "fmt"

// EmbeddingError marks a failed embedding provider call. At ingestion the
// pipeline recovers with a zero-vector fallback; at query time it is fatal
// to the request.
type EmbeddingError struct {
	Err error
}

func (e EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e EmbeddingError) Unwrap() error { return e.Err }

// GenerationError marks a failed generative call. It is fatal to the
// enclosing request.
type GenerationError struct {
	Err error
}

func (e GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e GenerationError) Unwrap() error { return e.Err }
