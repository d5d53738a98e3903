package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

var (
	findLimit     int
	findThreshold float64
	findJSON      bool
)

var findCmd = &cobra.Command{
	Use:   "find [question]",
	Short: "Find training examples similar to a question",
	Long: `Embeds the question and returns the stored training examples with the
highest cosine similarity, best first. Results below the similarity
threshold are omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", domain.DefaultFindLimit, "maximum number of results")
	findCmd.Flags().Float64VarP(&findThreshold, "threshold", "t", domain.DefaultFindThreshold, "minimum cosine similarity (0 to 1)")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	if exampleService == nil {
		return errors.New("example service not configured")
	}

	opts := domain.FindOptions{
		Limit:     findLimit,
		Threshold: findThreshold,
	}
	results, err := exampleService.FindSimilar(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("similarity search failed: %w", err)
	}

	if findJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No similar examples found.")
		return nil
	}

	cmd.Println("Similar examples:")
	cmd.Println()
	for i := range results {
		ex := results[i].Example
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, ex.Question, results[i].Similarity)
		cmd.Printf("      %s\n", ex.AnswerQuery)
		if ex.Metadata.Domain != "" {
			cmd.Printf("      Domain: %s\n", ex.Metadata.Domain)
		}
		cmd.Println()
	}
	return nil
}
