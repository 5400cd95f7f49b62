package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	catalogfile "github.com/custodia-labs/synergy-cli/internal/adapters/driven/catalog/file"
	"github.com/custodia-labs/synergy-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
	"github.com/custodia-labs/synergy-cli/internal/core/services"
)

// threeItemCatalog yields {C}, {A,B} and {A,B,C} at max size 3.
const threeItemCatalog = `
[[traits]]
name = "X"
thresholds = [2]

[[traits]]
name = "Y"
thresholds = [1]

[[items]]
name = "A"
cost = 1
traits = ["X"]

[[items]]
name = "B"
cost = 1
traits = ["X"]

[[items]]
name = "C"
cost = 2
traits = ["Y"]
`

// testEnv is the state behind one configured CLI.
type testEnv struct {
	catalogPath string
	store       *memory.CombinationStore
	settings    *services.SettingsService
}

// setupTestServices configures the CLI with a temp catalog, in-memory
// settings and an in-memory combination store.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		catalogPath: writeCatalog(t, threeItemCatalog),
		store:       memory.NewCombinationStore(),
		settings:    services.NewSettingsService(memory.NewConfigStore()),
	}
	require.NoError(t, env.settings.Set("catalog.path", env.catalogPath))

	Configure(&Config{
		Settings: env.settings,
		OpenCatalog: func(path string) (driven.CatalogSource, error) {
			return catalogfile.NewSource(path)
		},
		OpenRuntime: func(_ context.Context, catalog *domain.Catalog, _ string) (*Runtime, error) {
			settings, err := env.settings.Get()
			if err != nil {
				return nil, err
			}
			aggregator := services.NewSynergyAggregator(catalog)
			engine := services.NewSearchEngine(catalog, aggregator)
			engine.ProgressInterval = 0
			return &Runtime{
				Enumeration: services.NewEnumerationService(engine, env.store, settings.Search),
				Query:       services.NewQueryService(catalog, aggregator, env.store),
			}, nil
		},
	})
	t.Cleanup(func() { Configure(nil) })

	return env
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCommand executes the root command with args and returns everything
// written to stdout and stderr. Flags are reset afterwards.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so that values do not leak
// between executions of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if slice, ok := f.Value.(pflag.SliceValue); ok {
			_ = slice.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
