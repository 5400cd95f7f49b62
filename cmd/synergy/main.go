// Command synergy enumerates item combinations by trait synergy and answers
// membership queries over the stored result.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	catalogfile "github.com/custodia-labs/synergy-cli/internal/adapters/driven/catalog/file"
	configfile "github.com/custodia-labs/synergy-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/synergy-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/synergy-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
	"github.com/custodia-labs/synergy-cli/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	cli.Configure(&cli.Config{
		Settings: settingsService,
		OpenCatalog: func(path string) (driven.CatalogSource, error) {
			return catalogfile.NewSource(path)
		},
		OpenRuntime: func(_ context.Context, catalog *domain.Catalog, storeDir string) (*cli.Runtime, error) {
			settings, err := settingsService.Get()
			if err != nil {
				return nil, err
			}

			store, err := sqlite.NewStore(storeDir)
			if err != nil {
				return nil, err
			}

			aggregator := services.NewSynergyAggregator(catalog)
			engine := services.NewSearchEngine(catalog, aggregator)

			return &cli.Runtime{
				Enumeration: services.NewEnumerationService(engine, store, settings.Search),
				Query:       services.NewQueryService(catalog, aggregator, store),
				Close:       store.Close,
			}, nil
		},
	})

	return cli.Execute(ctx)
}
