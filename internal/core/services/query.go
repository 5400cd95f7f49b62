package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driving"
	"github.com/custodia-labs/synergy-cli/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers queries over the combination store and hydrates hits
// with member names and a re-derived synergy snapshot.
type QueryService struct {
	catalog    *domain.Catalog
	aggregator *SynergyAggregator
	store      driven.CombinationStore
}

// NewQueryService creates a new query service.
// The store may be nil when only Synergy is needed.
func NewQueryService(
	catalog *domain.Catalog,
	aggregator *SynergyAggregator,
	store driven.CombinationStore,
) *QueryService {
	if aggregator == nil {
		aggregator = NewSynergyAggregator(catalog)
	}
	return &QueryService{
		catalog:    catalog,
		aggregator: aggregator,
		store:      store,
	}
}

// Catalog returns the catalog the service was built with.
func (s *QueryService) Catalog() *domain.Catalog {
	return s.catalog
}

// Query validates q, checks every name against the catalog and runs it.
func (s *QueryService) Query(ctx context.Context, q domain.CombinationQuery) ([]domain.CombinationView, error) {
	logger.Section("Combination Query")
	logger.Debug("include %v, exclude %v, size [%d, %d], score [%d, %d]",
		q.MustInclude, q.MustExclude, q.SizeMin, q.SizeMax, q.ScoreMin, q.ScoreMax)

	if err := q.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.catalog.Resolve(q.MustInclude); err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	if _, err := s.catalog.Resolve(q.MustExclude); err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	if len(q.MustInclude) == 0 {
		logger.Debug("No include names, returning no results")
		return []domain.CombinationView{}, nil
	}
	if s.store == nil {
		return nil, domain.ErrStoreNotBuilt
	}

	done := logger.Timed("store query")
	rows, err := s.store.Query(ctx, q)
	done()
	if err != nil {
		return nil, err
	}
	logger.Debug("%d combinations matched", len(rows))

	views := make([]domain.CombinationView, len(rows))
	for i, row := range rows {
		views[i] = s.view(row)
	}
	return views, nil
}

// Synergy scores the named items as one combination. The returned view has
// Index -1 because the combination need not be stored.
func (s *QueryService) Synergy(_ context.Context, names []string) (*domain.CombinationView, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no item names given", domain.ErrInvalidInput)
	}
	members, err := s.catalog.Resolve(names)
	if err != nil {
		return nil, err
	}

	view := s.view(domain.IndexedCombination{
		Index:      -1,
		Members:    members,
		Size:       members.Len(),
		TotalScore: s.aggregator.Score(members),
	})
	return &view, nil
}

func (s *QueryService) view(c domain.IndexedCombination) domain.CombinationView {
	return domain.CombinationView{
		IndexedCombination: c,
		Names:              s.catalog.Names(c.Members),
		Snapshot:           s.aggregator.AggregateCombination(c.Members),
	}
}
