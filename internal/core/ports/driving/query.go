package driving

import (
	"context"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// QueryService answers membership and range queries over the stored combinations.
type QueryService interface {
	// Query returns matching combinations hydrated with names and synergy.
	// An empty MustInclude returns no results: the store is never fully scanned.
	Query(ctx context.Context, q domain.CombinationQuery) ([]domain.CombinationView, error)

	// Synergy computes the snapshot for the named items.
	Synergy(ctx context.Context, names []string) (*domain.CombinationView, error)

	// Catalog returns the catalog the service was built with.
	Catalog() *domain.Catalog
}
