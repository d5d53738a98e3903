package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

var (
	addDomain     string
	addComplexity string
	addTags       []string
)

var addCmd = &cobra.Command{
	Use:   "add [question] [query]",
	Short: "Add a question-to-query training example",
	Long: `Stores a new training example: the natural-language question and the
database query answering it. The question is embedded immediately so the
example can be retrieved by similarity.

An exact duplicate of an existing example (same question and query,
ignoring case and surrounding whitespace) is rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDomain, "domain", "d", "", "domain label, e.g. users or orders")
	addCmd.Flags().StringVarP(&addComplexity, "complexity", "c", "", "complexity label: simple, medium or complex")
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "free-form tag (repeatable)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if exampleService == nil {
		return errors.New("example service not configured")
	}

	meta := domain.Metadata{
		Domain:     addDomain,
		Complexity: domain.Complexity(addComplexity),
		Tags:       addTags,
	}

	id, err := exampleService.AddExample(cmd.Context(), args[0], args[1], meta)
	if err != nil {
		var dup *domain.DuplicateError
		if errors.As(err, &dup) {
			return fmt.Errorf("example already exists with id %s", dup.ExistingID)
		}
		return fmt.Errorf("adding example failed: %w", err)
	}

	cmd.Printf("Added example %s\n", id)
	return nil
}
