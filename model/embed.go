package model

import "context"

// EmbedderInterface maps text to a fixed-dimension vector. The same model
// must be used at ingestion and query time; a mismatch silently degrades
// retrieval relevance with no error raised.
type EmbedderInterface interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// GeneratorInterface produces text from a composed prompt. Calls may fail
// transiently; the core does not retry.
type GeneratorInterface interface {
	Generate(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

// VisionInterface analyzes an image for visible pet health conditions.
type VisionInterface interface {
	Analyze(ctx context.Context, data []byte, mimeType string) (string, error)
}
