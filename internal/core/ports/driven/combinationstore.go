package driven

import (
	"context"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// CombinationStore persists enumerated combinations behind an inverted index:
// one posting list per catalog item plus per-combination size and score.
//
// Load is an exclusive, single-writer phase. Queries against a stable store
// may run concurrently with each other.
type CombinationStore interface {
	// Load destructively replaces the store contents with batch.
	// A failed load leaves the previous contents observable.
	Load(ctx context.Context, batch domain.CombinationBatch) (*domain.LoadResult, error)

	// Query returns stored combinations present in every MustInclude posting
	// list, absent from every MustExclude posting list and within the ranges,
	// ordered by index. An empty MustInclude returns an empty result.
	Query(ctx context.Context, q domain.CombinationQuery) ([]domain.IndexedCombination, error)

	// LastRun returns the run currently loaded, or domain.ErrStoreNotBuilt.
	LastRun(ctx context.Context) (*domain.EnumerationRun, error)

	// Close releases resources.
	Close() error
}
