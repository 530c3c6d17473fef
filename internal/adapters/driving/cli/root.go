// Package cli provides the tutor command-line interface.
//
// Commands wire the core services lazily: a command that only reads the
// catalog never touches the embedding or LLM providers, so `tutor
// courses` works without Ollama or an API key.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opencourse-ai/tutor-cli/internal/adapters/driven/ai"
	"github.com/opencourse-ai/tutor-cli/internal/adapters/driven/config/file"
	"github.com/opencourse-ai/tutor-cli/internal/adapters/driven/embedding/ratelimit"
	chromemindex "github.com/opencourse-ai/tutor-cli/internal/adapters/driven/index/chromem"
	"github.com/opencourse-ai/tutor-cli/internal/adapters/driven/storage/sqlite"
	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driving"
	"github.com/opencourse-ai/tutor-cli/internal/core/services"
	"github.com/opencourse-ai/tutor-cli/internal/docparse"
	"github.com/opencourse-ai/tutor-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgPath string
	verbose bool
)

// Services shared by the commands. Wired on first use; tests inject
// mocks directly.
var (
	appConfig        *file.Config
	catalogStore     driven.CatalogStore
	courseIndex      driven.CourseIndex
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
	searchTool       *services.CourseSearchTool
	catalogService   driving.CatalogService
	ingestService    driving.IngestService
	assistantService driving.AssistantService
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Ask questions about your course materials",
	Long: `Tutor indexes course documents and answers questions about them.

Course documents are plain text files with a title header and numbered
lesson sections. Ingest a directory of them, then ask questions; answers
are grounded in the indexed material and cite their sources.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.tutor/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and releases any wired services.
// Interrupt cancels the command context so long-running commands
// (ingest --watch, mcp serve) shut down cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig loads and caches the configuration.
func loadConfig() (*file.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}

	cfg, err := file.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

// initCatalog wires the catalog store and its read-only service.
func initCatalog() error {
	if catalogService != nil {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}

	catalogStore = store
	catalogService = services.NewCatalogService(store)
	return nil
}

// initIndex wires the embedding provider, the vector index, the search
// tool, and the ingestion coordinator.
func initIndex() error {
	if searchTool != nil {
		return nil
	}
	if err := initCatalog(); err != nil {
		return err
	}

	cfg := appConfig

	embedder, err := ai.CreateAndValidateEmbeddingService(embeddingSettings(cfg))
	if err != nil {
		return err
	}
	embedder = ratelimit.Wrap(embedder, cfg.Ingest.EmbedRateLimit)
	embeddingService = embedder

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	index, err := chromemindex.NewCourseIndex(chromemindex.Config{
		Path:         filepath.Join(dataDir, "index"),
		DefaultLimit: cfg.Search.MaxResults,
	}, embedder)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}

	courseIndex = index
	searchTool = services.NewCourseSearchTool(index, catalogStore, cfg.Search.MaxResults)

	processor := docparse.New(
		docparse.WithChunkSize(cfg.Chunking.Size),
		docparse.WithChunkOverlap(cfg.Chunking.Overlap),
	)
	ingestService = services.NewIngestService(processor, catalogStore, index)
	return nil
}

// initAssistant wires the LLM provider and the assistant on top of the
// index services.
func initAssistant() error {
	if assistantService != nil {
		return nil
	}
	if err := initIndex(); err != nil {
		return err
	}

	cfg := appConfig

	llm, err := ai.CreateAndValidateLLMService(llmSettings(cfg))
	if err != nil {
		return err
	}
	llmService = llm

	toolbox := services.NewToolbox(searchTool)
	sessions := services.NewSessionManager(cfg.Session.MaxExchanges)
	assistantService = services.NewAssistantService(llm, toolbox, sessions, services.AssistantConfig{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	return nil
}

// closeServices releases wired providers and stores.
func closeServices() {
	if llmService != nil {
		llmService.Close() //nolint:errcheck
	}
	if embeddingService != nil {
		embeddingService.Close() //nolint:errcheck
	}
	if courseIndex != nil {
		courseIndex.Close() //nolint:errcheck
	}
	if catalogStore != nil {
		catalogStore.Close() //nolint:errcheck
	}
}

// embeddingSettings maps file config to embedding provider settings.
// The API key comes from the environment, never the file.
func embeddingSettings(cfg *file.Config) *domain.EmbeddingSettings {
	return &domain.EmbeddingSettings{
		Provider:   domain.AIProvider(cfg.Embedding.Provider),
		Model:      cfg.Embedding.Model,
		BaseURL:    cfg.Embedding.BaseURL,
		APIKey:     file.OpenAIAPIKey(),
		Dimensions: cfg.Embedding.Dimensions,
	}
}

// llmSettings maps file config to LLM provider settings.
func llmSettings(cfg *file.Config) *domain.LLMSettings {
	return &domain.LLMSettings{
		Provider: domain.AIProvider(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
		APIKey:   file.AnthropicAPIKey(),
	}
}
