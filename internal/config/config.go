package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EmbedderConfig selects and configures the embedding provider.
type EmbedderConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	APIKeyEnv  string `yaml:"api_key_env"`
}

// APIKey resolves the provider credential from the configured
// environment variable.
func (c *EmbedderConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

// ChunkerConfig configures how documents are split before embedding.
type ChunkerConfig struct {
	MaxTokens int `yaml:"max_tokens"`
}

// MilvusConfig contains connection details for a Milvus deployment.
type MilvusConfig struct {
	Address string `yaml:"address"`
}

// ChromemConfig configures the embedded chromem store.
type ChromemConfig struct {
	Path     string `yaml:"path"`
	Compress bool   `yaml:"compress"`
}

// VectorStoreConfig selects and configures the vector store engine.
type VectorStoreConfig struct {
	Engine     string         `yaml:"engine"`
	Collection string         `yaml:"collection"`
	Milvus     *MilvusConfig  `yaml:"milvus,omitempty"`
	Chromem    *ChromemConfig `yaml:"chromem,omitempty"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Log         LogConfig         `yaml:"log"`
}

// Load reads a config from a specified path. A missing file yields the
// defaults; environment variables override either way.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Embedder.Provider == "" {
		cfg.Embedder.Provider = "openai"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "text-embedding-3-large"
	}
	if cfg.Embedder.Dimensions == 0 {
		cfg.Embedder.Dimensions = 3072
	}
	if cfg.Embedder.APIKeyEnv == "" {
		switch cfg.Embedder.Provider {
		case "cohere":
			cfg.Embedder.APIKeyEnv = "CO_API_KEY"
		default:
			cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
		}
	}
	if cfg.Chunker.MaxTokens == 0 {
		cfg.Chunker.MaxTokens = 8191
	}
	if cfg.VectorStore.Engine == "" {
		cfg.VectorStore.Engine = "memory"
	}
	if cfg.VectorStore.Collection == "" {
		cfg.VectorStore.Collection = "documentation_snippets"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// applyEnv lets deployments override config file values without
// editing it.
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("DOCSNIPPETS_ENGINE"); v != "" {
		cfg.VectorStore.Engine = v
	}
	if v := os.Getenv("DOCSNIPPETS_COLLECTION"); v != "" {
		cfg.VectorStore.Collection = v
	}
	if v := os.Getenv("DOCSNIPPETS_EMBEDDING_MODEL"); v != "" {
		cfg.Embedder.Model = v
	}
	if v := os.Getenv("DOCSNIPPETS_EMBEDDING_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Embedder.Dimensions = n
		}
	}
	if v := os.Getenv("DOCSNIPPETS_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Chunker.MaxTokens = n
		}
	}
	if v := os.Getenv("MILVUS_ADDRESS"); v != "" {
		if cfg.VectorStore.Milvus == nil {
			cfg.VectorStore.Milvus = &MilvusConfig{}
		}
		cfg.VectorStore.Milvus.Address = v
	}
	if v := os.Getenv("CHROMEM_PATH"); v != "" {
		if cfg.VectorStore.Chromem == nil {
			cfg.VectorStore.Chromem = &ChromemConfig{}
		}
		cfg.VectorStore.Chromem.Path = v
	}
	if v := os.Getenv("DOCSNIPPETS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
