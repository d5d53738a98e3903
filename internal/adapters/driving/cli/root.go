// Package cli provides the cobra command tree for the query assistant.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/ali1k/mcp-query-assistant/internal/adapters/driven/config/file"
	"github.com/ali1k/mcp-query-assistant/internal/adapters/driven/embedding/openai"
	storagefile "github.com/ali1k/mcp-query-assistant/internal/adapters/driven/storage/file"
	"github.com/ali1k/mcp-query-assistant/internal/adapters/driven/vector/chromem"
	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driven"
	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driving"
	"github.com/ali1k/mcp-query-assistant/internal/core/services"
	"github.com/ali1k/mcp-query-assistant/internal/logger"
)

// version is the CLI version string.
const version = "0.1.0"

// Environment variables honoured by the CLI. Flags take precedence over the
// environment, the environment over the config file.
const (
	envAPIKey  = "OPENAI_API_KEY"
	envDataDir = "QUERY_ASSISTANT_DATA_DIR"
)

var (
	verboseFlag bool
	dataDirFlag string
	apiKeyFlag  string

	// Wired by initServices; tests inject their own.
	exampleService driving.ExampleService
	configStore    *configfile.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "queryassist",
	Short: "Similarity search over question-to-query training examples",
	Long: `queryassist maintains a local set of question-to-query training examples
and retrieves the most semantically similar ones for a new question, as
few-shot material for query generation.

Examples are embedded with the OpenAI API and matched by cosine similarity.
Set an API key with --api-key, the OPENAI_API_KEY environment variable, or
'queryassist config set openai.api_key'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)

		// Commands that never touch the stores skip the wiring.
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initServices(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.queryassist)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "OpenAI API key")
}

// initServices wires the adapters and runs the startup sync. Idempotent so
// tests can pre-inject a service.
func initServices(ctx context.Context) error {
	if exampleService != nil {
		return nil
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	cfg, err := configfile.NewConfigStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = cfg

	var embedder driven.EmbeddingService
	dimensions := cfg.GetInt(configfile.KeyEmbeddingDimensions)

	if apiKey := resolveAPIKey(cfg); apiKey != "" {
		svc, err := openai.New(openai.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.GetString(configfile.KeyBaseURL),
			Model:      cfg.GetString(configfile.KeyModel),
			Dimensions: dimensions,
		})
		if err != nil {
			return fmt.Errorf("configuring embedding service: %w", err)
		}
		embedder = svc
		dimensions = svc.Dimensions()
	} else {
		logger.Warn("No OpenAI API key configured; adding examples and similarity search are disabled")
		if dimensions <= 0 {
			dimensions = 1536
		}
	}

	store := storagefile.New(filepath.Join(dataDir, "examples.json"))
	index, err := chromem.New(
		filepath.Join(dataDir, "vectors"),
		dimensions,
		cfg.GetInt(configfile.KeyIndexCapacity),
	)
	if err != nil {
		return fmt.Errorf("opening vector index: %w", err)
	}

	svc := services.NewExampleService(
		services.NewIndexCoordinator(store, index, embedder),
		store,
	)
	if err := svc.Sync(ctx); err != nil {
		return fmt.Errorf("syncing example store: %w", err)
	}

	exampleService = svc
	return nil
}

// resolveDataDir returns the data directory: flag, environment, then the
// default under the home directory.
func resolveDataDir() (string, error) {
	if dataDirFlag != "" {
		return dataDirFlag, nil
	}
	if dir := os.Getenv(envDataDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".queryassist"), nil
}

// resolveAPIKey returns the API key: flag, environment, then config file.
func resolveAPIKey(cfg *configfile.ConfigStore) string {
	if apiKeyFlag != "" {
		return apiKeyFlag
	}
	if key := os.Getenv(envAPIKey); key != "" {
		return key
	}
	return cfg.GetString(configfile.KeyAPIKey)
}
