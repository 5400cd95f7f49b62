package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

var (
	queryInclude  []string
	queryExclude  []string
	querySizeMin  int
	querySizeMax  int
	queryScoreMin int
	queryScoreMax int
	queryLimit    int
	queryJSON     bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query stored combinations",
	Long: `Finds stored combinations that contain every --include item, none of the
--exclude items, and whose size and score fall inside the given ranges.

At least one --include item is needed; without one nothing is returned.
Unless --score-max is given, the score range is capped at 100 or at the
highest score the catalog can produce, whichever is larger.
Run 'synergy enumerate' first to build the store.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	defaults := domain.DefaultCombinationQuery()
	queryCmd.Flags().StringSliceVarP(&queryInclude, "include", "i", nil, "item names every combination must contain")
	queryCmd.Flags().StringSliceVarP(&queryExclude, "exclude", "x", nil, "item names no combination may contain")
	queryCmd.Flags().IntVar(&querySizeMin, "size-min", defaults.SizeMin, "minimum combination size")
	queryCmd.Flags().IntVar(&querySizeMax, "size-max", defaults.SizeMax, "maximum combination size")
	queryCmd.Flags().IntVar(&queryScoreMin, "score-min", defaults.ScoreMin, "minimum total score")
	queryCmd.Flags().IntVar(&queryScoreMax, "score-max", defaults.ScoreMax, "maximum total score; when unset, widened to the catalog maximum if higher")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 20, "maximum number of results to print (0 = all)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	rt, catalog, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	q := domain.CombinationQuery{
		MustInclude: queryInclude,
		MustExclude: queryExclude,
		SizeMin:     querySizeMin,
		SizeMax:     querySizeMax,
		ScoreMin:    queryScoreMin,
		ScoreMax:    queryScoreMax,
	}
	if !cmd.Flags().Changed("score-max") {
		q.ScoreMax = domain.DefaultCombinationQueryFor(catalog).ScoreMax
	}

	views, err := rt.Query.Query(cmd.Context(), q)
	if errors.Is(err, domain.ErrStoreNotBuilt) {
		return fmt.Errorf("%w: run 'synergy enumerate' first", err)
	}
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if len(queryInclude) == 0 && !queryJSON {
		cmd.Println(styles.Warning.Render("No --include items given; nothing to match."))
		return nil
	}

	return printViews(cmd, limited(views, queryLimit), len(views), queryJSON)
}
