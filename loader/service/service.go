package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"petcare/chunker"
	"petcare/config"
	"petcare/loader/internal"
	"petcare/model"
	"petcare/store"
	"petcare/types"
)

// Service runs the offline ingestion batch job: extract a document, chunk
// it, embed the chunks and write them to the vector store. It is the single
// writer; it never runs concurrently with itself.
type Service struct {
	cfg      config.LoaderConfig
	logger   *slog.Logger
	store    store.VectorStorer
	embedder model.EmbedderInterface
	chunker  *chunker.SemanticChunker
}

func New(cfg config.LoaderConfig, storer store.VectorStorer, embedder model.EmbedderInterface, ch *chunker.SemanticChunker) *Service {
	return &Service{
		cfg:      cfg,
		logger:   slog.Default(),
		store:    storer,
		embedder: embedder,
		chunker:  ch,
	}
}

// Run ingests every file in the source directory, in name order for
// deterministic chunk ids. Processed files move to the archive directory,
// failed ones to the bad directory. The run id ties all log lines of one
// batch together.
func (s *Service) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	if err := internal.CreateDirectories(s.cfg.SourceDir, s.cfg.ArchiveDir, s.cfg.BadDir); err != nil {
		return err
	}

	entries, err := os.ReadDir(s.cfg.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(s.cfg.SourceDir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		logger.Info("no files to ingest", "dir", s.cfg.SourceDir)
		return nil
	}

	// Ids restart at zero every run, so re-ingesting a document collides
	// with its earlier chunk ids and is skipped instead of duplicated.
	nextID := 0
	for _, path := range files {
		added, err := s.IngestFile(ctx, path, nextID)
		if err != nil {
			logger.Error("ingestion failed", "file", path, "error", err)
			if moveErr := internal.MoveFile(path, s.cfg.BadDir); moveErr != nil {
				logger.Error("failed to move bad file", "file", path, "error", moveErr)
			}
			continue
		}
		nextID += added
		logger.Info("file ingested", "file", path, "chunks", added)
		if err := internal.MoveFile(path, s.cfg.ArchiveDir); err != nil {
			logger.Error("failed to archive file", "file", path, "error", err)
		}
	}

	logger.Info("ingestion run completed", "files", len(files), "collection_size", s.store.Count())
	return nil
}

// IngestFile runs the full pipeline for one document. Chunk ids start at
// firstID and follow chunk order, preserving the collection-wide total
// order. It returns the number of chunks produced (including duplicates
// that were skipped by id).
func (s *Service) IngestFile(ctx context.Context, path string, firstID int) (int, error) {
	doc, err := internal.Extract(path)
	if err != nil {
		return 0, err
	}

	chunks, err := s.chunker.Chunk(ctx, doc.Content)
	if err != nil {
		return 0, fmt.Errorf("failed to chunk %s: %w", path, err)
	}
	s.logger.Info("document chunked", "title", doc.Title, "source", doc.Source, "chunks", len(chunks))

	embedded := s.embedChunks(ctx, chunks, firstID)
	if err := s.storeChunks(ctx, embedded); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// embedChunks obtains an embedding per chunk, serially. A provider failure
// is recovered locally: the chunk gets a zero vector so a single bad call
// cannot abort the whole batch. The fallback is lossy and logged, never
// silent.
func (s *Service) embedChunks(ctx context.Context, chunks []string, firstID int) []types.Chunk {
	embedded := make([]types.Chunk, 0, len(chunks))
	for i, text := range chunks {
		embedding, err := s.embedder.Embed(ctx, text)
		if err != nil {
			s.logger.Warn("embedding failed, storing zero vector", "chunk_index", i, "error", err)
			embedding = make([]float32, s.embedder.Dimension())
		}
		embedded = append(embedded, types.Chunk{
			ID:        firstID + i,
			Index:     i,
			Text:      text,
			Embedding: embedding,
		})
	}
	return embedded
}

// storeChunks writes chunks in fixed-size batches. A duplicate id means the
// chunk is already in the collection from an earlier run; it is skipped
// with a warning and does not change the collection.
func (s *Service) storeChunks(ctx context.Context, chunks []types.Chunk) error {
	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		for _, chunk := range chunks[start:end] {
			err := s.store.Upsert(ctx, chunk)
			if errors.Is(err, store.ErrDuplicateID) {
				s.logger.Warn("skipping duplicate chunk", "id", chunk.ID)
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to store chunk %d: %w", chunk.ID, err)
			}
		}
		s.logger.Info("stored batch", "from", chunks[start].ID, "count", end-start)
	}
	return nil
}
