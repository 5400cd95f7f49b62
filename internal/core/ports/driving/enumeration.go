package driving

import (
	"context"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// EnumerationService runs the combination search engine.
type EnumerationService interface {
	// Search runs the engine with the given options without persisting anything.
	Search(ctx context.Context, opts domain.SearchOptions) (*domain.SearchResult, error)

	// RunFullEnumeration searches the whole catalog up to maxSize and bulk-loads
	// the result into the store, replacing any previous run. This can take hours.
	RunFullEnumeration(ctx context.Context, maxSize int) (*domain.EnumerationRun, error)

	// LastRun returns the run currently in the store, or domain.ErrStoreNotBuilt.
	LastRun(ctx context.Context) (*domain.EnumerationRun, error)
}
