package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	catalog   *domain.Catalog
	views     []domain.CombinationView
	view      *domain.CombinationView
	err       error
	lastQuery domain.CombinationQuery
	lastNames [][]string
}

func (m *mockQueryService) Query(_ context.Context, q domain.CombinationQuery) ([]domain.CombinationView, error) {
	m.lastQuery = q
	return m.views, m.err
}

func (m *mockQueryService) Synergy(_ context.Context, names []string) (*domain.CombinationView, error) {
	m.lastNames = append(m.lastNames, names)
	if m.err != nil {
		return nil, m.err
	}
	if m.view != nil {
		return m.view, nil
	}
	members, err := m.catalog.Resolve(names)
	if err != nil {
		return nil, err
	}
	return &domain.CombinationView{
		IndexedCombination: domain.IndexedCombination{Index: -1, Members: members, Size: members.Len()},
		Names:              names,
		Snapshot:           domain.NewSynergySnapshot(),
	}, nil
}

func (m *mockQueryService) Catalog() *domain.Catalog {
	return m.catalog
}

// mockEnumerationService is a mock implementation of driving.EnumerationService.
type mockEnumerationService struct {
	result   *domain.SearchResult
	run      *domain.EnumerationRun
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockEnumerationService) Search(_ context.Context, opts domain.SearchOptions) (*domain.SearchResult, error) {
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockEnumerationService) RunFullEnumeration(_ context.Context, _ int) (*domain.EnumerationRun, error) {
	return m.run, m.err
}

func (m *mockEnumerationService) LastRun(_ context.Context) (*domain.EnumerationRun, error) {
	return m.run, m.err
}

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	catalog, err := domain.NewCatalog(
		[]domain.Item{
			{ID: 0, Name: "A", Cost: 1, Traits: []string{"X"}},
			{ID: 1, Name: "B", Cost: 1, Traits: []string{"X"}},
			{ID: 2, Name: "C", Cost: 2, Traits: []string{"Y"}},
		},
		[]domain.TraitDefinition{
			{Name: "X", Thresholds: []int{2}},
			{Name: "Y", Thresholds: []int{1}},
		},
	)
	require.NoError(t, err)
	return catalog
}
