package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the enumeration run held by the store",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	rt, catalog, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	cmd.Printf("Catalog: %d items, %d traits\n", catalog.Len(), len(catalog.Traits()))

	run, err := rt.Enumeration.LastRun(cmd.Context())
	if errors.Is(err, domain.ErrStoreNotBuilt) {
		cmd.Println(styles.Warning.Render("Combination store not built. Run 'synergy enumerate' to build it."))
		return nil
	}
	if err != nil {
		return err
	}

	cmd.Println(styles.Title.Render("Combination store"))
	cmd.Printf("  Run:          %s\n", run.ID)
	cmd.Printf("  Max size:     %d\n", run.MaxSize)
	cmd.Printf("  Items:        %d\n", run.CatalogItems)
	cmd.Printf("  Combinations: %d\n", run.Combinations)
	cmd.Printf("  Started:      %s\n", run.StartedAt.Local().Format(time.DateTime))
	cmd.Printf("  Completed:    %s (%s)\n", run.CompletedAt.Local().Format(time.DateTime),
		run.CompletedAt.Sub(run.StartedAt).Round(time.Second))
	if run.CatalogItems != catalog.Len() {
		cmd.Println(styles.Warning.Render("  The catalog has changed since this run; consider 'synergy enumerate --force'."))
	}
	return nil
}
