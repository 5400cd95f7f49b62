package domain

import (
	"fmt"
	"time"
)

// MaxCombinationSize is the largest combination size the system enumerates or queries.
const MaxCombinationSize = 9

// RequiredMode selects how required item names constrain a search.
type RequiredMode string

// Available required modes.
const (
	// RequiredAll keeps combinations containing every required name.
	RequiredAll RequiredMode = "and"

	// RequiredAny keeps combinations containing at least one required name.
	RequiredAny RequiredMode = "or"
)

// IsValid returns true if the mode is recognised.
func (m RequiredMode) IsValid() bool {
	return m == RequiredAll || m == RequiredAny
}

// String returns the string representation.
func (m RequiredMode) String() string {
	return string(m)
}

// SearchOptions configures one run of the combination search engine.
type SearchOptions struct {
	// MaxSize bounds the number of members per combination.
	MaxSize int

	// Required names constrain results according to Mode.
	Required []string

	// Mode defaults to RequiredAll when empty.
	Mode RequiredMode

	// Excluded names are removed from the candidates before searching.
	Excluded []string

	// Workers > 1 searches first-level branches in parallel.
	Workers int

	// MaxResults stops the search once this many combinations are held (0 = unlimited).
	MaxResults int

	// Timeout stops the search after this duration (0 = unlimited).
	Timeout time.Duration
}

// Validate checks bounds. Sizes outside [0, MaxCombinationSize] are a range
// violation and are never clamped.
func (o SearchOptions) Validate() error {
	if o.MaxSize < 0 || o.MaxSize > MaxCombinationSize {
		return fmt.Errorf("%w: max size %d outside [0, %d]", ErrRangeViolation, o.MaxSize, MaxCombinationSize)
	}
	if o.Mode != "" && !o.Mode.IsValid() {
		return fmt.Errorf("%w: unknown required mode %q", ErrInvalidInput, o.Mode)
	}
	if o.Workers < 0 || o.MaxResults < 0 || o.Timeout < 0 {
		return fmt.Errorf("%w: workers, max results and timeout must not be negative", ErrInvalidInput)
	}
	return nil
}

// EffectiveMode returns Mode, defaulting to RequiredAll.
func (o SearchOptions) EffectiveMode() RequiredMode {
	if o.Mode == "" {
		return RequiredAll
	}
	return o.Mode
}

// PruneCounts tallies why branches were discarded.
type PruneCounts struct {
	Size      int64 `json:"size"`
	Selection int64 `json:"selection"`
	Duplicate int64 `json:"duplicate"`
	Growth    int64 `json:"growth"`
}

// Add accumulates other into p.
func (p *PruneCounts) Add(other PruneCounts) {
	p.Size += other.Size
	p.Selection += other.Selection
	p.Duplicate += other.Duplicate
	p.Growth += other.Growth
}

// SearchStats describes the work a search performed.
//
// In a parallel search each first-level branch keeps its own visited set, so
// Nodes, Visited and Pruned are sums over branches and may exceed the
// figures of a sequential run over the same catalog. Found is always the
// number of distinct combinations returned.
type SearchStats struct {
	Nodes   int64         `json:"nodes"`
	Visited int           `json:"visited"`
	Found   int           `json:"found"`
	Pruned  PruneCounts   `json:"pruned"`
	Workers int           `json:"workers"`
	Elapsed time.Duration `json:"elapsed"`
}

// SearchResult is the output of one search.
type SearchResult struct {
	// Combinations is duplicate-free, ordered by size, then member bits.
	Combinations []Combination

	// Stats summarises the run.
	Stats SearchStats
}
