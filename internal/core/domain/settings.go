package domain

import "fmt"

// Default settings values.
const (
	DefaultMaxSize        = MaxCombinationSize
	DefaultWorkers        = 1
	DefaultMaxResults     = 0
	DefaultTimeoutSeconds = 0
)

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Catalog CatalogSettings
	Store   StoreSettings
	Search  SearchSettings
}

// CatalogSettings locates the item/trait catalog file.
type CatalogSettings struct {
	// Path to a .toml, .yaml/.yml or .json catalog. Empty means ~/.synergy/catalog.toml.
	Path string
}

// StoreSettings locates the combination store.
type StoreSettings struct {
	// Dir holds combinations.db. Empty means ~/.synergy/data.
	Dir string
}

// SearchSettings configures enumeration runs.
type SearchSettings struct {
	// MaxSize is the combination size bound for full enumeration.
	MaxSize int

	// Workers > 1 enables parallel search of first-level branches.
	Workers int

	// MaxResults aborts a search holding more combinations (0 = unlimited).
	MaxResults int

	// TimeoutSeconds aborts a search running longer (0 = unlimited).
	TimeoutSeconds int
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			MaxSize:        DefaultMaxSize,
			Workers:        DefaultWorkers,
			MaxResults:     DefaultMaxResults,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// Validate checks that settings are usable.
func (s *AppSettings) Validate() error {
	if s.Search.MaxSize < 0 || s.Search.MaxSize > MaxCombinationSize {
		return fmt.Errorf("%w: search.max_size %d outside [0, %d]", ErrRangeViolation, s.Search.MaxSize, MaxCombinationSize)
	}
	if s.Search.Workers < 1 {
		return fmt.Errorf("%w: search.workers must be at least 1", ErrInvalidInput)
	}
	if s.Search.MaxResults < 0 {
		return fmt.Errorf("%w: search.max_results must not be negative", ErrInvalidInput)
	}
	if s.Search.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: search.timeout_seconds must not be negative", ErrInvalidInput)
	}
	return nil
}
