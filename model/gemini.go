package model

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"petcare/config"
)

// Gemini wraps a single genai client and serves the three capabilities the
// assistant consumes: embeddings, answer generation and image analysis.
// The client is opened once at process start and shared.
type Gemini struct {
	client    *genai.Client
	cfg       config.ModelConfig
	dimension int
	logger    *slog.Logger
	timeout   time.Duration
}

func NewGemini(ctx context.Context, apiKey string, cfg config.ModelConfig, dimension int) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set %s)", cfg.APIKeyEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	return &Gemini{
		client:    client,
		cfg:       cfg,
		dimension: dimension,
		logger:    slog.Default(),
		timeout:   time.Duration(cfg.TimeoutSecs) * time.Second,
	}, nil
}

// Embed generates a fixed-dimension embedding vector for the given text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, EmbeddingError{Err: fmt.Errorf("text cannot be empty")}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	outputDim := int32(g.dimension)
	result, err := g.client.Models.EmbedContent(
		timeoutCtx,
		g.cfg.EmbedModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{OutputDimensionality: &outputDim},
	)
	if err != nil {
		return nil, EmbeddingError{Err: err}
	}

	var embedding []float32
	if result != nil && len(result.Embeddings) > 0 {
		embedding = result.Embeddings[0].Values
	}
	if len(embedding) == 0 {
		return nil, EmbeddingError{Err: fmt.Errorf("no embedding returned from API")}
	}
	if len(embedding) != g.dimension {
		return nil, EmbeddingError{Err: fmt.Errorf("embedding dimension mismatch: expected %d, got %d", g.dimension, len(embedding))}
	}

	return embedding, nil
}

// Dimension reports the embedding vector length this provider produces.
func (g *Gemini) Dimension() int {
	return g.dimension
}

// Generate produces a completion for the prompt with the given temperature
// and output-token budget. A timeout fails the whole call, no partial text
// is returned.
func (g *Gemini) Generate(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(
		timeoutCtx,
		g.cfg.ChatModel,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(temperature),
			MaxOutputTokens: int32(maxTokens),
		},
	)
	if err != nil {
		return "", GenerationError{Err: err}
	}

	text := collectText(resp)
	if text == "" {
		return "", GenerationError{Err: fmt.Errorf("no response generated from chat model")}
	}

	g.logger.Debug("generation completed",
		"model", g.cfg.ChatModel,
		"response_length", len(text),
		"duration", time.Since(start))
	return text, nil
}

// Analyze sends the image with the fixed examination prompt to the vision
// model. The vision call uses its own generation settings, not the chat
// defaults.
func (g *Gemini) Analyze(ctx context.Context, data []byte, mimeType string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(visionSystemPrompt),
	}
	resp, err := g.client.Models.GenerateContent(
		timeoutCtx,
		g.cfg.VisionModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(1)),
			TopP:            genai.Ptr(float32(0.95)),
			MaxOutputTokens: 8192,
		},
	)
	if err != nil {
		return "", GenerationError{Err: err}
	}

	text := collectText(resp)
	if text == "" {
		return "", GenerationError{Err: fmt.Errorf("failed to generate analysis")}
	}
	return text, nil
}

// collectText extracts the first candidate with non-empty text parts.
func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				b.WriteString(part.Text)
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}
