package store

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"

	"petcare/model"
	"petcare/types"
)

// ChromemStore keeps the collection in a chromem-go persistent database: a
// single directory on local storage identified by (path, collection name).
// The collection is created lazily on first use, at most one per name per
// path.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewChromemStore opens (or creates) the persistent database at path and
// the named collection inside it. The embedder backs chromem's embedding
// function for documents stored without an explicit vector; the ingestion
// pipeline always supplies vectors, so it is a consistency guard rather
// than a hot path.
func NewChromemStore(path, collection string, embedder model.EmbedderInterface) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open persistent store at %s: %w", path, err)
	}

	embeddingFunc := chromem.EmbeddingFunc(func(ctx context.Context, text string) ([]float32, error) {
		return embedder.Embed(ctx, text)
	})

	col, err := db.GetOrCreateCollection(collection, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", collection, err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		logger:     slog.Default(),
	}, nil
}

// Upsert stores one chunk with its embedding. An already-present id is
// rejected with ErrDuplicateID so the ingestion pipeline can skip and log
// instead of silently overwriting an immutable chunk.
func (s *ChromemStore) Upsert(ctx context.Context, chunk types.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(chunk.ID)
	if _, err := s.collection.GetByID(ctx, id); err == nil {
		return ErrDuplicateID
	}

	doc := chromem.Document{
		ID:        id,
		Content:   chunk.Text,
		Embedding: chunk.Embedding,
		Metadata: map[string]string{
			"chunk_index": strconv.Itoa(chunk.Index),
		},
	}
	if err := s.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert document %s: %w", id, err)
	}
	return nil
}

// Search returns up to k passages nearest to the query vector, in
// non-increasing similarity order. Zero results is a valid outcome, not an
// error. Ties are broken by the index's internal order.
func (s *ChromemStore) Search(ctx context.Context, vector []float32, k int) ([]types.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// chromem rejects nResults greater than the collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search collection: %w", err)
	}

	passages := make([]types.Passage, 0, len(results))
	for _, result := range results {
		// Zero-vector fallback chunks have no norm and surface with NaN
		// similarity; they carry no retrieval signal.
		if math.IsNaN(float64(result.Similarity)) {
			continue
		}
		passages = append(passages, types.Passage{
			Text:  result.Content,
			Score: float64(result.Similarity),
		})
	}
	return passages, nil
}

// Count reports the number of stored chunks.
func (s *ChromemStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection.Count()
}

// Close releases the store handle. chromem persists on write, so there is
// nothing to flush.
func (s *ChromemStore) Close() error {
	s.logger.Info("vector store closed")
	return nil
}
