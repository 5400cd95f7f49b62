package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printViews writes views, either as JSON or as a numbered list.
// total is the number of matches before any limit was applied.
func printViews(cmd *cobra.Command, views []domain.CombinationView, total int, asJSON bool) error {
	if asJSON {
		out := make([]combinationJSON, len(views))
		for i := range views {
			out[i] = toJSON(&views[i])
		}
		return printJSON(cmd, out)
	}

	if total == 0 {
		cmd.Println("No combinations found.")
		return nil
	}

	cmd.Println(styles.Title.Render(fmt.Sprintf("%d combinations:", total)))
	cmd.Println()
	for i := range views {
		cmd.Println(formatView(i+1, &views[i]))
	}
	if len(views) < total {
		cmd.Println()
		cmd.Println(styles.Muted.Render(fmt.Sprintf("  ... %d more (use --limit to show more)", total-len(views))))
	}
	return nil
}

func limited[T any](values []T, limit int) []T {
	if limit > 0 && len(values) > limit {
		return values[:limit]
	}
	return values
}
