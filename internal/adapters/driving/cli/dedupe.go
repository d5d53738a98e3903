package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var dedupeConfirm bool

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Find and remove duplicated training examples",
	Long: `Finds groups of examples sharing the same question and query (ignoring
case and surrounding whitespace). Within each group the oldest example is
kept and the rest are removed.

Without --confirm the command only previews what would be removed.
Removal rebuilds the similarity index, which re-embeds every remaining
example and may take a while on large sets.`,
	Args: cobra.NoArgs,
	RunE: runDedupe,
}

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeConfirm, "confirm", false, "actually remove the duplicates")
	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, _ []string) error {
	if exampleService == nil {
		return errors.New("example service not configured")
	}

	groups, err := exampleService.FindDuplicateGroups(cmd.Context())
	if err != nil {
		return fmt.Errorf("finding duplicates failed: %w", err)
	}

	if len(groups) == 0 {
		cmd.Println("No duplicates found.")
		return nil
	}

	cmd.Printf("Duplicate groups (%d):\n", len(groups))
	cmd.Println()
	for i, group := range groups {
		cmd.Printf("  [%d] %s\n", i+1, group.Question)
		cmd.Printf("      keep   %s\n", group.KeptID)
		for _, id := range group.DuplicateIDs {
			cmd.Printf("      remove %s\n", id)
		}
		cmd.Println()
	}

	report, err := exampleService.RemoveDuplicates(cmd.Context(), dedupeConfirm)
	if err != nil {
		return fmt.Errorf("removing duplicates failed: %w", err)
	}

	if report.ConfirmationRequired {
		cmd.Printf("%d examples would be removed. Re-run with --confirm to remove them.\n", report.Removed)
		return nil
	}

	cmd.Printf("Removed %d examples and rebuilt the index.\n", report.Removed)
	return nil
}
