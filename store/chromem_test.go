package store

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/types"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (stubEmbedder) Dimension() int {
	return 3
}

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	s, err := NewChromemStore(t.TempDir(), "pet_chunks", stubEmbedder{})
	require.NoError(t, err)
	return s
}

func TestUpsertAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.Equal(t, 0, s.Count())

	err := s.Upsert(ctx, types.Chunk{ID: 0, Text: "cats purr", Embedding: []float32{1, 0, 0}})
	require.NoError(t, err)
	err = s.Upsert(ctx, types.Chunk{ID: 1, Text: "dogs bark", Embedding: []float32{0, 1, 0}})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Count())
}

func TestUpsertDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	chunk := types.Chunk{ID: 7, Text: "original", Embedding: []float32{1, 0, 0}}
	require.NoError(t, s.Upsert(ctx, chunk))

	err := s.Upsert(ctx, types.Chunk{ID: 7, Text: "replacement", Embedding: []float32{0, 1, 0}})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, s.Count())
}

func TestSearchOrdersBySimilarity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, types.Chunk{ID: 0, Text: "cats purr", Embedding: []float32{1, 0, 0}}))
	require.NoError(t, s.Upsert(ctx, types.Chunk{ID: 1, Text: "dogs bark", Embedding: []float32{0, 1, 0}}))
	require.NoError(t, s.Upsert(ctx, types.Chunk{ID: 2, Text: "birds sing", Embedding: []float32{0, 0, 1}}))

	passages, err := s.Search(ctx, []float32{0, 1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, passages, 2)
	assert.Equal(t, "dogs bark", passages[0].Text)
	assert.GreaterOrEqual(t, passages[0].Score, passages[1].Score)
}

func TestSearchClampsKToCollectionSize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, types.Chunk{ID: 0, Text: "only one", Embedding: []float32{1, 0, 0}}))

	passages, err := s.Search(ctx, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, passages, 1)
}

func TestSearchDropsZeroVectorChunks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, types.Chunk{ID: 0, Text: "real chunk", Embedding: []float32{1, 0, 0}}))
	require.NoError(t, s.Upsert(ctx, types.Chunk{ID: 1, Text: "zero fallback", Embedding: []float32{0, 0, 0}}))

	passages, err := s.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "real chunk", passages[0].Text)
	assert.False(t, math.IsNaN(passages[0].Score))
}

func TestSearchEmptyCollection(t *testing.T) {
	s := newTestStore(t)

	passages, err := s.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewChromemStore(dir, "pet_chunks", stubEmbedder{})
	require.NoError(t, err)
	require.NoError(t, s.Upsert(ctx, types.Chunk{ID: 0, Text: "persisted", Embedding: []float32{1, 0, 0}}))
	require.NoError(t, s.Close())

	reopened, err := NewChromemStore(dir, "pet_chunks", stubEmbedder{})
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Count())
}
