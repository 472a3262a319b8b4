package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// ChunkerConfig holds the semantic chunker tuning constants. The percentile
// and minimum size are tuned values carried over from the ingestion job, not
// derived quantities.
type ChunkerConfig struct {
	MinChunkSize         int     `yaml:"min_chunk_size"`
	BreakpointPercentile float64 `yaml:"breakpoint_percentile"`
}

// StoreConfig identifies the persistent collection.
type StoreConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
	Dimension  int    `yaml:"dimension"`
}

// ModelConfig selects the Gemini models. The embedding model must be the
// same at ingestion and query time or retrieval silently degrades.
type ModelConfig struct {
	EmbedModel    string  `yaml:"embed_model"`
	ChatModel     string  `yaml:"chat_model"`
	VisionModel   string  `yaml:"vision_model"`
	Temperature   float32 `yaml:"temperature"`
	TimeoutSecs   int     `yaml:"timeout_secs"`
	APIKeyEnv     string  `yaml:"api_key_env"`
	MaxPromptToks int     `yaml:"max_prompt_tokens"`
}

// LoaderConfig holds the ingestion job's directory layout.
type LoaderConfig struct {
	SourceDir  string `yaml:"source_dir"`
	ArchiveDir string `yaml:"archive_dir"`
	BadDir     string `yaml:"bad_dir"`
	BatchSize  int    `yaml:"batch_size"`
}

// RetrieverConfig controls query-time retrieval.
type RetrieverConfig struct {
	TopK int `yaml:"top_k"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Store     StoreConfig     `yaml:"store"`
	Model     ModelConfig     `yaml:"model"`
	Loader    LoaderConfig    `yaml:"loader"`
	Retriever RetrieverConfig `yaml:"retriever"`
}

// Load reads a config from the given path. A missing file yields defaults;
// a present file is merged over them.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// APIKey resolves the Gemini API key from the configured environment
// variable.
func (c *AppConfig) APIKey() string {
	return os.Getenv(c.Model.APIKeyEnv)
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr: ":8000",
			CORSOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
				"http://127.0.0.1:5173",
				"http://127.0.0.1:3000",
			},
		},
		Chunker: ChunkerConfig{
			MinChunkSize:         512,
			BreakpointPercentile: 70,
		},
		Store: StoreConfig{
			Path:       "chroma_rag_data",
			Collection: "pet_chunks",
			Dimension:  768,
		},
		Model: ModelConfig{
			EmbedModel:    "gemini-embedding-001",
			ChatModel:     "gemini-1.5-flash",
			VisionModel:   "gemini-1.5-pro-latest",
			Temperature:   0.3,
			TimeoutSecs:   30,
			APIKeyEnv:     "GEMINI_API_KEY",
			MaxPromptToks: 30000,
		},
		Loader: LoaderConfig{
			SourceDir:  "data/source",
			ArchiveDir: "data/archive",
			BadDir:     "data/bad",
			BatchSize:  100,
		},
		Retriever: RetrieverConfig{TopK: 5},
	}
}

func applyDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = def.Server.CORSOrigins
	}
	if cfg.Chunker.MinChunkSize == 0 {
		cfg.Chunker.MinChunkSize = def.Chunker.MinChunkSize
	}
	if cfg.Chunker.BreakpointPercentile == 0 {
		cfg.Chunker.BreakpointPercentile = def.Chunker.BreakpointPercentile
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = def.Store.Path
	}
	if cfg.Store.Collection == "" {
		cfg.Store.Collection = def.Store.Collection
	}
	if cfg.Store.Dimension == 0 {
		cfg.Store.Dimension = def.Store.Dimension
	}
	if cfg.Model.EmbedModel == "" {
		cfg.Model.EmbedModel = def.Model.EmbedModel
	}
	if cfg.Model.ChatModel == "" {
		cfg.Model.ChatModel = def.Model.ChatModel
	}
	if cfg.Model.VisionModel == "" {
		cfg.Model.VisionModel = def.Model.VisionModel
	}
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = def.Model.Temperature
	}
	if cfg.Model.TimeoutSecs == 0 {
		cfg.Model.TimeoutSecs = def.Model.TimeoutSecs
	}
	if cfg.Model.APIKeyEnv == "" {
		cfg.Model.APIKeyEnv = def.Model.APIKeyEnv
	}
	if cfg.Model.MaxPromptToks == 0 {
		cfg.Model.MaxPromptToks = def.Model.MaxPromptToks
	}
	if cfg.Loader.SourceDir == "" {
		cfg.Loader.SourceDir = def.Loader.SourceDir
	}
	if cfg.Loader.ArchiveDir == "" {
		cfg.Loader.ArchiveDir = def.Loader.ArchiveDir
	}
	if cfg.Loader.BadDir == "" {
		cfg.Loader.BadDir = def.Loader.BadDir
	}
	if cfg.Loader.BatchSize == 0 {
		cfg.Loader.BatchSize = def.Loader.BatchSize
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = def.Retriever.TopK
	}
}
