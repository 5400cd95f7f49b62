// Package cli implements the synergy command line with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driving"
	"github.com/custodia-labs/synergy-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	verbose     bool
	catalogFlag string
	storeFlag   string
)

// Runtime holds the services available once a catalog is loaded.
type Runtime struct {
	Enumeration driving.EnumerationService
	Query       driving.QueryService

	// Close releases the store. May be nil.
	Close func() error
}

// Config wires the commands to the application.
type Config struct {
	// Settings reads and writes ~/.synergy/config.toml.
	Settings driving.SettingsService

	// OpenCatalog returns the catalog source at path. An empty path selects the default.
	OpenCatalog func(path string) (driven.CatalogSource, error)

	// OpenRuntime builds the services for a loaded catalog and store directory.
	OpenRuntime func(ctx context.Context, catalog *domain.Catalog, storeDir string) (*Runtime, error)
}

var (
	settingsService driving.SettingsService
	cliConfig       *Config
)

// Configure sets the services the commands use.
func Configure(cfg *Config) {
	cliConfig = cfg
	if cfg != nil {
		settingsService = cfg.Settings
	} else {
		settingsService = nil
	}
}

var rootCmd = &cobra.Command{
	Use:   "synergy",
	Short: "Enumerate and query item combinations by trait synergy",
	Long: `synergy scores combinations of catalog items by the traits they share.

It enumerates every combination worth keeping with a pruned depth-first search,
stores them behind an inverted index and answers membership queries over the
stored set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "catalog file (overrides catalog.path)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store-dir", "", "combination store directory (overrides store.dir)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// currentSettings returns the stored settings, or defaults when none are configured.
func currentSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	return settingsService.Get()
}

// openCatalogSource resolves the catalog path from --catalog, then catalog.path.
func openCatalogSource() (driven.CatalogSource, error) {
	if cliConfig == nil || cliConfig.OpenCatalog == nil {
		return nil, errors.New("catalog source not configured")
	}
	settings, err := currentSettings()
	if err != nil {
		return nil, err
	}
	path := settings.Catalog.Path
	if catalogFlag != "" {
		path = catalogFlag
	}
	return cliConfig.OpenCatalog(path)
}

// openRuntime loads the catalog and opens the store. Callers must call closeRuntime.
func openRuntime(cmd *cobra.Command) (*Runtime, *domain.Catalog, error) {
	if cliConfig == nil || cliConfig.OpenRuntime == nil {
		return nil, nil, errors.New("services not configured")
	}
	source, err := openCatalogSource()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := source.Load(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Loaded %d items from %s", catalog.Len(), source.Location())

	settings, err := currentSettings()
	if err != nil {
		return nil, nil, err
	}
	storeDir := settings.Store.Dir
	if storeFlag != "" {
		storeDir = storeFlag
	}

	rt, err := cliConfig.OpenRuntime(cmd.Context(), catalog, storeDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening combination store: %w", err)
	}
	return rt, catalog, nil
}

func closeRuntime(rt *Runtime) {
	if rt == nil || rt.Close == nil {
		return
	}
	if err := rt.Close(); err != nil {
		logger.Warn("closing store: %v", err)
	}
}
