// Package file loads Tutor configuration from a TOML file.
//
// Configuration lives at ~/.tutor/config.toml by default. A missing
// file is not an error: every setting has a default, and API keys are
// read from the environment rather than the file so they never end up
// on disk.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// Environment variables holding provider API keys.
const (
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
)

// Config is the full Tutor configuration.
type Config struct {
	// DataDir is where the catalog database and vector index live.
	// Empty means ~/.tutor/data.
	DataDir string `toml:"data_dir"`

	Chunking  ChunkingConfig  `toml:"chunking"`
	Search    SearchConfig    `toml:"search"`
	Session   SessionConfig   `toml:"session"`
	Ingest    IngestConfig    `toml:"ingest"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
}

// ChunkingConfig controls how course documents are split.
type ChunkingConfig struct {
	// Size is the maximum chunk size in characters.
	Size int `toml:"size"`

	// Overlap is the target character overlap between consecutive chunks.
	Overlap int `toml:"overlap"`
}

// SearchConfig controls content search behaviour.
type SearchConfig struct {
	// MaxResults is the default number of hits per search.
	MaxResults int `toml:"max_results"`
}

// SessionConfig controls conversation history.
type SessionConfig struct {
	// MaxExchanges is the number of user/assistant exchange pairs
	// retained per session.
	MaxExchanges int `toml:"max_exchanges"`
}

// IngestConfig controls document ingestion.
type IngestConfig struct {
	// EmbedRateLimit caps embedding requests per second during
	// ingestion. Zero disables the limiter.
	EmbedRateLimit float64 `toml:"embed_rate_limit"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// Dimensions overrides the model's default vector size.
	Dimensions int `toml:"dimensions"`
}

// LLMConfig selects and configures the generation model.
type LLMConfig struct {
	// Provider is the LLM provider. Only "anthropic" is supported.
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// MaxTokens caps the generated answer length.
	MaxTokens int `toml:"max_tokens"`

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64 `toml:"temperature"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Chunking: ChunkingConfig{
			Size:    800,
			Overlap: 100,
		},
		Search: SearchConfig{
			MaxResults: 5,
		},
		Session: SessionConfig{
			MaxExchanges: domain.DefaultMaxExchanges,
		},
		Ingest: IngestConfig{
			EmbedRateLimit: 10,
		},
		Embedding: EmbeddingConfig{
			Provider: domain.AIProviderOllama.String(),
		},
		LLM: LLMConfig{
			Provider:  domain.AIProviderAnthropic.String(),
			MaxTokens: 1024,
		},
	}
}

// DefaultPath returns ~/.tutor/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".tutor", "config.toml"), nil
}

// Load reads configuration from the given path, layering file values
// over the defaults. If path is empty the default path is used. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}

// AnthropicAPIKey returns the Anthropic API key from the environment.
func AnthropicAPIKey() string {
	return os.Getenv(EnvAnthropicAPIKey)
}

// OpenAIAPIKey returns the OpenAI API key from the environment.
func OpenAIAPIKey() string {
	return os.Getenv(EnvOpenAIAPIKey)
}

// ResolveDataDir returns the configured data directory, defaulting to
// ~/.tutor/data.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".tutor", "data"), nil
}
