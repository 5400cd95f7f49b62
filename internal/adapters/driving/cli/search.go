package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

var (
	searchRequired []string
	searchMode     string
	searchExcluded []string
	searchMaxSize  int
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog for combinations",
	Long: `Runs the combination search engine over the catalog without touching the store.

Required items constrain the results: with --mode and every required item must
be present, with --mode or at least one. Excluded items are removed before the
search starts.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchRequired, "require", "r", nil, "required item names")
	searchCmd.Flags().StringVar(&searchMode, "mode", string(domain.RequiredAll), "required mode: and, or")
	searchCmd.Flags().StringSliceVarP(&searchExcluded, "exclude", "x", nil, "excluded item names")
	searchCmd.Flags().IntVarP(&searchMaxSize, "max-size", "s", domain.DefaultMaxSize, "maximum combination size")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results to print (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	rt, _, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	settings, err := currentSettings()
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		MaxSize:    searchMaxSize,
		Required:   searchRequired,
		Mode:       domain.RequiredMode(searchMode),
		Excluded:   searchExcluded,
		Workers:    settings.Search.Workers,
		MaxResults: settings.Search.MaxResults,
		Timeout:    time.Duration(settings.Search.TimeoutSeconds) * time.Second,
	}

	result, err := rt.Enumeration.Search(cmd.Context(), opts)
	if err != nil {
		var exhausted *domain.SearchExhaustedError
		if errors.As(err, &exhausted) {
			return fmt.Errorf("search incomplete: %w", err)
		}
		return fmt.Errorf("search failed: %w", err)
	}
	if !searchJSON {
		cmd.Println(styles.Muted.Render(fmt.Sprintf("Searched %d nodes in %s",
			result.Stats.Nodes, result.Stats.Elapsed.Round(time.Millisecond))))
	}

	shown := limited(result.Combinations, searchLimit)
	views := make([]domain.CombinationView, 0, len(shown))
	for _, combo := range shown {
		view, err := rt.Query.Synergy(cmd.Context(), rt.Query.Catalog().Names(combo))
		if err != nil {
			return err
		}
		views = append(views, *view)
	}

	return printViews(cmd, views, len(result.Combinations), searchJSON)
}
