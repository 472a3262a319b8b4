package types

// Chunk is a contiguous slice of source text stored with an id and position
// metadata for retrieval. Ids are assigned sequentially during ingestion and
// a chunk is immutable once stored.
type Chunk struct {
	ID        int
	Text      string
	Index     int
	Embedding []float32
}

// Document holds the raw text of a source file during ingestion. It is read
// once and never persisted.
type Document struct {
	Title      string
	Source     string // "pdf" or "text"
	SourcePath string
	Content    string
}

// Passage is a retrieved chunk text with its similarity score, nearest-first
// within a retrieval result.
type Passage struct {
	Text  string
	Score float64
}
