package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in ~/.synergy/config.toml.

Keys:
  catalog.path            catalog file
  store.dir               directory holding combinations.db
  search.max_size         size bound for full enumeration (0-9)
  search.workers          parallel first-level branches (1 = sequential)
  search.max_results      stop once this many combinations are held (0 = unlimited)
  search.timeout_seconds  stop after this many seconds (0 = unlimited)`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(styles.Title.Render("Current Settings"))
	cmd.Println()
	cmd.Printf("  %-24s %s\n", "catalog.path", orDefault(settings.Catalog.Path, "~/.synergy/catalog.toml"))
	cmd.Printf("  %-24s %s\n", "store.dir", orDefault(settings.Store.Dir, "~/.synergy/data"))
	cmd.Printf("  %-24s %d\n", "search.max_size", settings.Search.MaxSize)
	cmd.Printf("  %-24s %d\n", "search.workers", settings.Search.Workers)
	cmd.Printf("  %-24s %s\n", "search.max_results", unlimited(settings.Search.MaxResults))
	cmd.Printf("  %-24s %s\n", "search.timeout_seconds", unlimited(settings.Search.TimeoutSeconds))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return styles.Muted.Render(fallback + " (default)")
	}
	return value
}

func unlimited(n int) string {
	if n == 0 {
		return styles.Muted.Render("unlimited")
	}
	return fmt.Sprint(n)
}
