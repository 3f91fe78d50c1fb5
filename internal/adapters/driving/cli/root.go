// Package cli implements the shopscout command-line interface.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/shopscout-labs/shopscout-cli/internal/adapters/driven/config/file"
	"github.com/shopscout-labs/shopscout-cli/internal/adapters/driven/index/sqlite"
	"github.com/shopscout-labs/shopscout-cli/internal/adapters/driven/llm/ollama"
	reviewfile "github.com/shopscout-labs/shopscout-cli/internal/adapters/driven/reviews/file"
	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driven"
	"github.com/shopscout-labs/shopscout-cli/internal/core/ports/driving"
	"github.com/shopscout-labs/shopscout-cli/internal/core/services"
	"github.com/shopscout-labs/shopscout-cli/internal/logger"
)

// version is set through Execute; "dev" outside release builds.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services used by the commands. Wired on demand by wireServices;
// tests substitute mocks directly.
var (
	assistantService driving.AssistantService
	reviewService    driving.ReviewService
)

var rootCmd = &cobra.Command{
	Use:   "shopscout",
	Short: "Shopping assistant for a local product catalogue",
	Long: `ShopScout answers free-text questions about a product catalogue.
It retrieves matching products with BM25 lexical search, asks a local
language model to compose a product listing, and can summarise the
customer reviews of any listed product.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.shopscout)")
}

// Execute runs the root command with the given build version.
func Execute(ver string) error {
	if ver != "" {
		version = ver
	}
	return rootCmd.Execute()
}

// loadAppSettings resolves configuration from the config file and the
// environment. A broken config store degrades to defaults plus
// environment.
func loadAppSettings() domain.Settings {
	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("Config store unavailable, using defaults: %v", err)
		return configfile.LoadSettings(nil)
	}
	return configfile.LoadSettings(store)
}

// newPromptStore creates the prompt store next to the config file.
func newPromptStore() driven.PromptStore {
	dir := ""
	if configDir != "" {
		dir = filepath.Join(configDir, "prompts")
	}
	store, err := configfile.NewPromptStore(dir)
	if err != nil {
		logger.Warn("Prompt store unavailable, using built-in prompts: %v", err)
		return nil
	}
	return store
}

// connectLLM creates the model client and checks it is reachable.
// Returns nil when it is not; the services degrade per turn instead
// of refusing to start.
func connectLLM(ctx context.Context, settings domain.Settings) driven.LLMService {
	svc := ollama.NewLLMService(ollama.LLMConfig{
		BaseURL: settings.LLMBaseURL,
		Model:   settings.LLMModel,
		Timeout: settings.LLMTimeout,
	})
	if err := svc.Ping(ctx); err != nil {
		logger.Warn("Model %s unreachable at %s: %v", settings.LLMModel, settings.LLMBaseURL, err)
		return nil
	}
	logger.Info("Connected to model %s", svc.ModelName())
	return svc
}

// wireServices builds the index if needed, opens the driven adapters
// and assembles the core services. The returned cleanup closes
// everything that was opened. Index build failure is fatal; a missing
// review corpus or an unreachable model only disables the dependent
// feature.
func wireServices(ctx context.Context, withReviews bool) (func(), error) {
	settings := loadAppSettings()

	builder := sqlite.NewBuilder(settings.DataDir, settings.CatalogueName)
	result, err := builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if !result.Skipped {
		logger.Info("Indexed %d documents (%d dropped)", result.Indexed, result.Dropped)
	}

	engine, err := sqlite.Open(builder.IndexDir(), settings.BM25K1, settings.BM25B)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	llm := connectLLM(ctx, settings)
	prompts := newPromptStore()

	assistant := services.NewAssistant(engine, llm, settings)
	assistant.SetPromptStore(prompts)
	assistantService = assistant

	var reviews *reviewfile.Store
	if withReviews {
		reviews, err = reviewfile.Open(settings.ReviewFile)
		if err != nil {
			logger.Warn("Review corpus unavailable, review lookups disabled: %v", err)
		} else {
			logger.Debug("Review corpus covers %d products", reviews.Products())
			summarizer := services.NewReviewSummarizer(reviews, llm, settings.ReviewCap)
			summarizer.SetPromptStore(prompts)
			reviewService = summarizer
		}
	}

	cleanup := func() {
		engine.Close() //nolint:errcheck // Best-effort shutdown
		if llm != nil {
			llm.Close() //nolint:errcheck // Best-effort shutdown
		}
		if reviews != nil {
			reviews.Close() //nolint:errcheck // Best-effort shutdown
		}
		assistantService = nil
		reviewService = nil
	}
	return cleanup, nil
}
