package store

import (
	"context"
	"errors"

	"petcare/types"
)

// ErrDuplicateID is returned by Upsert when a chunk id already exists in the
// collection. Re-ingestion treats it as a per-chunk no-op.
var ErrDuplicateID = errors.New("duplicate chunk id")

// VectorStorer persists (vector, text, metadata) triples and answers
// nearest-neighbor queries by cosine similarity. The handle is process-wide,
// opened once at startup; reads are safe concurrently, writes come from the
// single offline ingestion job.
type VectorStorer interface {
	Upsert(ctx context.Context, chunk types.Chunk) error
	Search(ctx context.Context, vector []float32, k int) ([]types.Passage, error)
	Count() int
	Close() error
}
