package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
)

// catalogWatcher is implemented by catalog sources that can report changes.
type catalogWatcher interface {
	Watch(ctx context.Context) (<-chan driven.CatalogChange, error)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the item catalog",
	Long: `Commands for the item/trait catalog file.

The catalog is read from --catalog, or catalog.path in the settings,
or ~/.synergy/catalog.toml. TOML, YAML and JSON files are accepted.`,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the catalog loads",
	Args:  cobra.NoArgs,
	RunE:  runCatalogValidate,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List items and traits",
	Args:  cobra.NoArgs,
	RunE:  runCatalogShow,
}

var catalogWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate the catalog whenever it changes",
	Args:  cobra.NoArgs,
	RunE:  runCatalogWatch,
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogWatchCmd)
	rootCmd.AddCommand(catalogCmd)
}

func loadCatalog(cmd *cobra.Command) (driven.CatalogSource, *domain.Catalog, error) {
	source, err := openCatalogSource()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := source.Load(cmd.Context())
	if err != nil {
		return source, nil, err
	}
	return source, catalog, nil
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	source, catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	cmd.Println(styles.Success.Render(fmt.Sprintf("Catalog OK: %d items, %d traits", catalog.Len(), len(catalog.Traits()))))
	cmd.Println(styles.Muted.Render(source.Location()))
	return nil
}

func runCatalogShow(cmd *cobra.Command, _ []string) error {
	_, catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	cmd.Println(styles.Title.Render("Traits"))
	for _, trait := range catalog.Traits() {
		cmd.Printf("  %-20s %v\n", trait.Name, trait.Thresholds)
	}
	cmd.Println()
	cmd.Println(styles.Title.Render("Items"))
	for _, item := range catalog.Items() {
		cmd.Printf("  %-20s cost %d  %s\n", item.Name, item.Cost, styles.Muted.Render(strings.Join(item.Traits, ", ")))
	}
	return nil
}

func runCatalogWatch(cmd *cobra.Command, _ []string) error {
	source, err := openCatalogSource()
	if err != nil {
		return err
	}
	watcher, ok := source.(catalogWatcher)
	if !ok {
		return errors.New("catalog source does not support watching")
	}

	changes, err := watcher.Watch(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Println(styles.Muted.Render(fmt.Sprintf("Watching %s (Ctrl+C to stop)", source.Location())))

	for change := range changes {
		if change.Err != nil {
			cmd.Println(styles.Error.Render(fmt.Sprintf("Invalid catalog: %v", change.Err)))
			continue
		}
		cmd.Println(styles.Success.Render(fmt.Sprintf("Catalog reloaded: %d items, %d traits",
			change.Catalog.Len(), len(change.Catalog.Traits()))))
	}
	return nil
}
