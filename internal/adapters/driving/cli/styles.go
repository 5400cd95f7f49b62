package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// Theme defines the colour palette for terminal output.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Score   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Success),
		Success: lipgloss.NewStyle().
			Foreground(theme.Success),
		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),
	}
}

var styles = NewStyles(nil)

// formatView renders one combination as "[n] A, B, C  score 4  X 2/2, Y 1/1".
func formatView(n int, view *domain.CombinationView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s  %s",
		styles.Muted.Render(fmt.Sprintf("[%d]", n)),
		strings.Join(view.Names, ", "),
		styles.Score.Render(fmt.Sprintf("score %d", view.TotalScore)),
	)
	if traits := formatTraits(view.Snapshot.Active()); traits != "" {
		b.WriteString("  ")
		b.WriteString(styles.Muted.Render(traits))
	}
	return b.String()
}

// formatTraits renders active traits as "name count/level".
func formatTraits(active []domain.TraitLevel) string {
	parts := make([]string, len(active))
	for i, trait := range active {
		parts[i] = fmt.Sprintf("%s %d/%d", trait.Trait, trait.Count, trait.Level)
	}
	return strings.Join(parts, ", ")
}

// combinationJSON is the JSON shape of a combination in command output.
type combinationJSON struct {
	Index  int64               `json:"index"`
	Items  []string            `json:"items"`
	Size   int                 `json:"size"`
	Score  int                 `json:"score"`
	Counts map[string]int      `json:"counts"`
	Traits []domain.TraitLevel `json:"traits"`
}

func toJSON(view *domain.CombinationView) combinationJSON {
	return combinationJSON{
		Index:  view.Index,
		Items:  view.Names,
		Size:   view.Size,
		Score:  view.TotalScore,
		Counts: view.Snapshot.RawCounts,
		Traits: view.Snapshot.Active(),
	}
}
