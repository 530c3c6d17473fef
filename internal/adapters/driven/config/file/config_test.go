package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Chunking.Size)
	assert.Equal(t, 100, cfg.Chunking.Overlap)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 2, cfg.Session.MaxExchanges)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/tmp/tutor-data"

[chunking]
size = 400

[embedding]
provider = "openai"
model = "text-embedding-3-large"

[llm]
temperature = 0.2
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tutor-data", cfg.DataDir)
	assert.Equal(t, 400, cfg.Chunking.Size)
	// Unset keys keep their defaults.
	assert.Equal(t, 100, cfg.Chunking.Overlap)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedding.Model)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[chunking\nsize = 400"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/custom/data"

	dir, err := cfg.ResolveDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/custom/data", dir)

	cfg.DataDir = ""
	dir, err = cfg.ResolveDataDir()
	require.NoError(t, err)
	assert.Contains(t, dir, filepath.Join(".tutor", "data"))
}

func TestAPIKeysComeFromEnvironment(t *testing.T) {
	t.Setenv(EnvAnthropicAPIKey, "sk-ant-test")
	t.Setenv(EnvOpenAIAPIKey, "sk-test")

	assert.Equal(t, "sk-ant-test", AnthropicAPIKey())
	assert.Equal(t, "sk-test", OpenAIAPIKey())
}
