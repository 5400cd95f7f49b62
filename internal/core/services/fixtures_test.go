package services

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// threeItemCatalog: A and B share X (level at 2), C alone activates Y.
func threeItemCatalog(t *testing.T) *domain.Catalog {
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

// randomCatalog builds a small deterministic catalog for exhaustive checks.
func randomCatalog(t *testing.T, seed int64, items, traits int) *domain.Catalog {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	defs := make([]domain.TraitDefinition, traits)
	for i := range defs {
		first := 1 + rng.Intn(3)
		defs[i] = domain.TraitDefinition{
			Name:       fmt.Sprintf("T%d", i),
			Thresholds: []int{first, first + 1 + rng.Intn(2)},
		}
	}

	list := make([]domain.Item, items)
	for i := range list {
		var itemTraits []string
		for j := range defs {
			if rng.Intn(3) == 0 {
				itemTraits = append(itemTraits, defs[j].Name)
			}
		}
		list[i] = domain.Item{
			ID:     i,
			Name:   fmt.Sprintf("I%d", i),
			Cost:   1 + rng.Intn(3),
			Traits: itemTraits,
		}
	}

	catalog, err := domain.NewCatalog(list, defs)
	require.NoError(t, err)
	return catalog
}

// names maps a result to member-name lists for readable assertions.
func names(catalog *domain.Catalog, combos []domain.Combination) [][]string {
	out := make([][]string, len(combos))
	for i, c := range combos {
		out[i] = catalog.Names(c)
	}
	return out
}

// bruteForce computes the expected search result by dynamic programming
// over every subset, using the map-based aggregator path.
func bruteForce(
	catalog *domain.Catalog, maxSize int, required domain.Combination, mode domain.RequiredMode,
) []domain.Combination {
	agg := NewSynergyAggregator(catalog)
	n := catalog.Len()
	ids := make([]int, 0, n)
	for _, item := range catalog.Items() {
		ids = append(ids, item.ID)
	}

	selectable := func(s domain.Combination) bool {
		if required.IsEmpty() {
			return true
		}
		if mode == domain.RequiredAny {
			return !s.Intersect(required).IsEmpty()
		}
		return required.Minus(s).Len() <= maxSize-s.Len()
	}
	gate := func(parent, child domain.Combination) bool {
		before := agg.AggregateCombination(parent)
		if before.IsEmpty() {
			return true
		}
		after := agg.AggregateCombination(child)
		if !after.LevelIncreasedFrom(before) {
			return false
		}
		return child.Len() < maxSize || after.TotalScore > before.TotalScore
	}

	reach := map[domain.Combination]bool{0: true}
	var subsets []domain.Combination
	for mask := 1; mask < 1<<n; mask++ {
		var s domain.Combination
		for bit := 0; bit < n; bit++ {
			if mask&(1<<bit) != 0 {
				s = s.With(ids[bit])
			}
		}
		subsets = append(subsets, s)
	}
	for size := 1; size <= maxSize; size++ {
		for _, s := range subsets {
			if s.Len() != size || !selectable(s) {
				continue
			}
			for _, id := range s.IDs() {
				parent := s.Without(id)
				if reach[parent] && gate(parent, s) {
					reach[s] = true
					break
				}
			}
		}
	}

	found := make(map[domain.Combination]struct{})
	for s, ok := range reach {
		if !ok || s.IsEmpty() {
			continue
		}
		if mode != domain.RequiredAny && !s.ContainsAll(required) {
			continue
		}
		score := agg.AggregateCombination(s).TotalScore
		contributes := true
		for _, id := range s.Minus(required).IDs() {
			if agg.AggregateCombination(s.Without(id)).TotalScore >= score {
				contributes = false
				break
			}
		}
		if contributes {
			found[s] = struct{}{}
		}
	}
	return sortCombinations(found)
}
