// Package chunker splits raw text into semantically coherent chunks. A
// boundary is placed between adjacent sentences whose embedding distance
// exceeds a percentile threshold over all adjacent-pair distances, then
// undersized chunks are merged into their neighbors.
package chunker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"petcare/model"
)

// ErrEmptyInput is returned for input that contains no content after
// whitespace trimming.
var ErrEmptyInput = errors.New("input text contains no content")

// SemanticChunker implements percentile-based semantic splitting. Boundary
// selection is deterministic given the same embedder and threshold, since it
// gates downstream retrieval quality.
type SemanticChunker struct {
	embedder model.EmbedderInterface

	// MinChunkSize is the smallest chunk, in characters, that survives the
	// merge pass.
	MinChunkSize int
	// BreakpointPercentile selects the distance threshold: a boundary is
	// placed where an adjacent-pair distance exceeds this percentile of all
	// pairwise distances.
	BreakpointPercentile float64
	// SentenceSplitter splits text into elementary units.
	SentenceSplitter func(string) []string
}

// Option configures a SemanticChunker.
type Option func(*SemanticChunker)

// WithMinChunkSize overrides the merge threshold in characters.
func WithMinChunkSize(size int) Option {
	return func(c *SemanticChunker) {
		c.MinChunkSize = size
	}
}

// WithBreakpointPercentile overrides the boundary percentile.
func WithBreakpointPercentile(p float64) Option {
	return func(c *SemanticChunker) {
		c.BreakpointPercentile = p
	}
}

// WithSentenceSplitter overrides the sentence splitting function.
func WithSentenceSplitter(splitter func(string) []string) Option {
	return func(c *SemanticChunker) {
		c.SentenceSplitter = splitter
	}
}

// New creates a SemanticChunker over the given embedder. Defaults: minimum
// chunk size 512 characters, 70th percentile breakpoint, sentence splitting
// on terminal punctuation. Both constants are tuned values, configurable
// rather than load-bearing.
func New(embedder model.EmbedderInterface, opts ...Option) *SemanticChunker {
	c := &SemanticChunker{
		embedder:             embedder,
		MinChunkSize:         512,
		BreakpointPercentile: 70,
		SentenceSplitter:     SplitSentences,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into an ordered, non-overlapping sequence of chunks
// whose concatenation reconstructs the source up to whitespace
// normalization. Text with fewer than two sentences yields exactly one
// chunk.
func (c *SemanticChunker) Chunk(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	sentences := c.SentenceSplitter(text)
	if len(sentences) < 2 {
		return []string{normalizeWhitespace(text)}, nil
	}

	distances, err := c.adjacentDistances(ctx, sentences)
	if err != nil {
		return nil, err
	}

	threshold := percentile(distances, c.BreakpointPercentile)

	var chunks []string
	var current []string
	for i, sentence := range sentences {
		current = append(current, sentence)
		if i < len(distances) && distances[i] > threshold {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return c.mergeSmall(chunks), nil
}

// adjacentDistances embeds every sentence and computes the cosine distance
// between each adjacent pair. An embedding failure here is fatal: chunk
// boundaries must be derived from real vectors or determinism is lost.
func (c *SemanticChunker) adjacentDistances(ctx context.Context, sentences []string) ([]float64, error) {
	embeddings := make([][]float32, len(sentences))
	for i, sentence := range sentences {
		emb, err := c.embedder.Embed(ctx, sentence)
		if err != nil {
			return nil, fmt.Errorf("failed to embed sentence %d: %w", i, err)
		}
		embeddings[i] = emb
	}

	distances := make([]float64, len(sentences)-1)
	for i := 0; i < len(sentences)-1; i++ {
		distances[i] = 1 - cosineSimilarity(embeddings[i], embeddings[i+1])
	}
	return distances, nil
}

// mergeSmall folds chunks shorter than MinChunkSize into the following
// chunk, then folds a trailing runt into its predecessor.
func (c *SemanticChunker) mergeSmall(chunks []string) []string {
	if len(chunks) <= 1 {
		return chunks
	}

	merged := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if n := len(merged); n > 0 && len(merged[n-1]) < c.MinChunkSize {
			merged[n-1] = merged[n-1] + " " + chunk
			continue
		}
		merged = append(merged, chunk)
	}
	if n := len(merged); n > 1 && len(merged[n-1]) < c.MinChunkSize {
		merged[n-2] = merged[n-2] + " " + merged[n-1]
		merged = merged[:n-1]
	}
	return merged
}

// SplitSentences splits text on terminal punctuation (., !, ?), keeping the
// punctuation with its sentence and skipping boundaries inside double
// quotes.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	inQuote := false

	for _, r := range text {
		current.WriteRune(r)
		if r == '"' {
			inQuote = !inQuote
		}
		if (r == '.' || r == '!' || r == '?') && !inQuote {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, normalizeWhitespace(s))
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, normalizeWhitespace(s))
	}
	return sentences
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// percentile computes the p-th percentile of values with linear
// interpolation between closest ranks.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
