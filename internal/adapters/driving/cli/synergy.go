package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var synergyJSON bool

var synergyCmd = &cobra.Command{
	Use:   "synergy ITEM...",
	Short: "Show trait counts and levels for a set of items",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSynergy,
}

func init() {
	synergyCmd.Flags().BoolVar(&synergyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(synergyCmd)
}

func runSynergy(cmd *cobra.Command, args []string) error {
	rt, catalog, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	view, err := rt.Query.Synergy(cmd.Context(), args)
	if err != nil {
		return err
	}
	if synergyJSON {
		return printJSON(cmd, toJSON(view))
	}

	cmd.Println(styles.Title.Render(strings.Join(view.Names, ", ")))
	cmd.Printf("  %s %s\n", styles.Label.Render("Score:"), styles.Score.Render(fmt.Sprint(view.TotalScore)))
	cmd.Println()
	for _, trait := range catalog.Traits() {
		count := view.Snapshot.Count(trait.Name)
		if count == 0 {
			continue
		}
		level := view.Snapshot.Level(trait.Name)
		line := fmt.Sprintf("  %-20s %d  level %d  thresholds %v", trait.Name, count, level, trait.Thresholds)
		if level == 0 {
			line = styles.Muted.Render(line)
		}
		cmd.Println(line)
	}
	return nil
}
