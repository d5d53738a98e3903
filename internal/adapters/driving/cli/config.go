package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/ali1k/mcp-query-assistant/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and set configuration values stored in config.toml.

Recognised keys:
  openai.api_key     OpenAI API key
  openai.model       embedding model (default text-embedding-3-small)
  openai.base_url    API base URL override
  openai.dimensions  embedding dimension override
  index.capacity     maximum vector index size`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	switch key {
	case configfile.KeyIndexCapacity, configfile.KeyEmbeddingDimensions:
		cmd.Println(configStore.GetInt(key))
	case configfile.KeyAPIKey:
		// Never echo the full credential.
		cmd.Println(maskAPIKey(configStore.GetString(key)))
	default:
		cmd.Println(configStore.GetString(key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	switch key {
	case configfile.KeyIndexCapacity, configfile.KeyEmbeddingDimensions:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s expects an integer: %w", key, err)
		}
		if err := configStore.Set(key, n); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	default:
		if err := configStore.Set(key, value); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	cmd.Println(configStore.Path())
	return nil
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
