package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

var (
	listLimit  int
	listDomain string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored training examples",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", domain.DefaultListLimit, "maximum number of examples")
	listCmd.Flags().StringVarP(&listDomain, "domain", "d", "", "only list examples with this domain label")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output examples as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if exampleService == nil {
		return errors.New("example service not configured")
	}

	list, err := exampleService.ListExamples(cmd.Context(), domain.ListOptions{
		Limit:  listLimit,
		Domain: listDomain,
	})
	if err != nil {
		return fmt.Errorf("listing examples failed: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal examples: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(list.Examples) == 0 {
		cmd.Printf("No examples to show (%d stored).\n", list.Total)
		return nil
	}

	cmd.Printf("Examples (%d of %d):\n", len(list.Examples), list.Total)
	cmd.Println()
	for i := range list.Examples {
		ex := list.Examples[i]
		cmd.Printf("  %s\n", ex.ID)
		cmd.Printf("    Q: %s\n", ex.Question)
		cmd.Printf("    A: %s\n", ex.AnswerQuery)
		if ex.Metadata.Domain != "" || ex.Metadata.Complexity != "" {
			cmd.Printf("    Domain: %s  Complexity: %s\n", ex.Metadata.Domain, ex.Metadata.Complexity)
		}
		cmd.Println()
	}
	return nil
}
