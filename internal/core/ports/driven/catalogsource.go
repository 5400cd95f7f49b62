package driven

import (
	"context"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// CatalogSource supplies the item/trait catalog.
// A failed load returns an error wrapping domain.ErrCatalogLoad and no catalog.
type CatalogSource interface {
	// Load reads and validates the catalog.
	Load(ctx context.Context) (*domain.Catalog, error)

	// Location describes where the catalog comes from (e.g., a file path).
	Location() string
}

// CatalogChange is emitted when a watched catalog changes on disk.
type CatalogChange struct {
	// Catalog is the reloaded catalog, nil when Err is set.
	Catalog *domain.Catalog

	// Err is the load error for a catalog that no longer validates.
	Err error
}
