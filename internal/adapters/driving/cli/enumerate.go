package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/logger"
)

var (
	enumerateMaxSize int
	enumerateForce   bool
	enumerateYes     bool
)

// stdinIsTerminal reports whether confirmation can be asked for interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Short: "Enumerate every combination and build the store",
	Long: `Searches the whole catalog up to the maximum size and bulk-loads every
combination found into the combination store, replacing its contents.

A full enumeration can take hours. It only runs when the store has not been
built yet, unless --force is given, and asks for confirmation unless --yes is
given.`,
	Args: cobra.NoArgs,
	RunE: runEnumerate,
}

func init() {
	enumerateCmd.Flags().IntVarP(&enumerateMaxSize, "max-size", "s", -1, "maximum combination size (default search.max_size)")
	enumerateCmd.Flags().BoolVar(&enumerateForce, "force", false, "rebuild an existing store")
	enumerateCmd.Flags().BoolVarP(&enumerateYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(enumerateCmd)
}

func runEnumerate(cmd *cobra.Command, _ []string) error {
	rt, catalog, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	maxSize := enumerateMaxSize
	if maxSize < 0 {
		settings, err := currentSettings()
		if err != nil {
			return err
		}
		maxSize = settings.Search.MaxSize
	}

	previous, err := rt.Enumeration.LastRun(cmd.Context())
	switch {
	case err == nil && !enumerateForce:
		return fmt.Errorf("store already holds run %s (%d combinations); use --force to rebuild",
			previous.ID, previous.Combinations)
	case err != nil && !errors.Is(err, domain.ErrStoreNotBuilt):
		return err
	}

	if !enumerateYes {
		ok, err := confirm(cmd, fmt.Sprintf(
			"Enumerate all combinations of %d items up to size %d? This can take hours.", catalog.Len(), maxSize))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	cmd.Println(styles.Title.Render("Enumerating combinations..."))
	logger.SetProgress(true)
	defer logger.SetProgress(false)

	run, err := rt.Enumeration.RunFullEnumeration(cmd.Context(), maxSize)
	if err != nil {
		return fmt.Errorf("enumeration failed: %w", err)
	}

	cmd.Println(styles.Success.Render(fmt.Sprintf("Stored %d combinations (run %s) in %s",
		run.Combinations, run.ID, run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond))))
	return nil
}

// confirm asks for a typed "yes". Without a terminal it refuses and points at --yes.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if !stdinIsTerminal() {
		return false, errors.New("confirmation required: re-run with --yes")
	}
	cmd.Printf("%s\nType 'yes' to continue: ", question)
	return readLine(bufio.NewReader(cmd.InOrStdin())) == "yes", nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
