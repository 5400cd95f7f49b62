package services

import (
	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// traitWeight is one trait an item counts towards, with its multiplicity.
type traitWeight struct {
	trait int
	n     uint16
}

// SynergyAggregator scores combinations against a catalog.
// It holds no mutable state and is safe for concurrent use.
type SynergyAggregator struct {
	catalog *domain.Catalog
	traits  []domain.TraitDefinition

	// weights[id] lists the traits of item id.
	weights [domain.MaxCatalogItems][]traitWeight

	// levels[t][count] is the discrete level of trait t at a raw count.
	levels [][]int
}

// NewSynergyAggregator precomputes per-item trait weights and per-trait level tables.
func NewSynergyAggregator(catalog *domain.Catalog) *SynergyAggregator {
	a := &SynergyAggregator{
		catalog: catalog,
		traits:  catalog.Traits(),
	}

	maxCount := make([]int, len(a.traits))
	for _, item := range catalog.Items() {
		multiplicity := make(map[int]uint16, len(item.Traits))
		var order []int
		for _, name := range item.Traits {
			t, ok := catalog.TraitIndex(name)
			if !ok {
				continue
			}
			if multiplicity[t] == 0 {
				order = append(order, t)
			}
			multiplicity[t]++
		}
		for _, t := range order {
			a.weights[item.ID] = append(a.weights[item.ID], traitWeight{trait: t, n: multiplicity[t]})
			maxCount[t] += int(multiplicity[t])
		}
	}

	a.levels = make([][]int, len(a.traits))
	for t, trait := range a.traits {
		table := make([]int, maxCount[t]+1)
		for count := range table {
			table[count] = trait.Level(count)
		}
		a.levels[t] = table
	}

	return a
}

// Aggregate computes the snapshot of an ordered sequence of items.
// For each item and each of its traits the raw count is incremented; the
// touched traits' levels are then derived from their thresholds. An empty
// sequence yields an all-zero snapshot.
func (a *SynergyAggregator) Aggregate(items []domain.Item) domain.SynergySnapshot {
	snapshot := domain.NewSynergySnapshot()
	for _, item := range items {
		for _, trait := range item.Traits {
			snapshot.RawCounts[trait]++
		}
	}
	for trait, count := range snapshot.RawCounts {
		definition, _ := a.catalog.Trait(trait)
		level := definition.Level(count)
		snapshot.Levels[trait] = level
		snapshot.TotalScore += level
	}
	return snapshot
}

// AggregateCombination computes the snapshot of a combination's members.
func (a *SynergyAggregator) AggregateCombination(c domain.Combination) domain.SynergySnapshot {
	return a.Aggregate(a.catalog.Members(c))
}

// Score returns the total score of a combination without building maps.
func (a *SynergyAggregator) Score(c domain.Combination) int {
	counts := a.newCounts()
	score := 0
	for _, id := range c.IDs() {
		score = a.extend(counts, counts, id, score)
	}
	return score
}

// newCounts returns a zeroed per-trait count vector.
func (a *SynergyAggregator) newCounts() []uint16 {
	return make([]uint16, len(a.traits))
}

// extend writes parent plus item id into child and returns the new score.
// child may alias parent.
func (a *SynergyAggregator) extend(parent, child []uint16, id, score int) int {
	copy(child, parent)
	for _, w := range a.weights[id] {
		table := a.levels[w.trait]
		before := table[child[w.trait]]
		child[w.trait] += w.n
		score += table[child[w.trait]] - before
	}
	return score
}

// counted reports whether any trait has a non-zero raw count.
func (a *SynergyAggregator) counted(counts []uint16) bool {
	for _, c := range counts {
		if c > 0 {
			return true
		}
	}
	return false
}

// contributes reports whether removing item id from counts lowers the score.
func (a *SynergyAggregator) contributes(counts []uint16, id int) bool {
	drop := 0
	for _, w := range a.weights[id] {
		table := a.levels[w.trait]
		c := counts[w.trait]
		drop += table[c] - table[c-w.n]
	}
	return drop > 0
}

// allContribute reports whether every member of c contributes to the score.
func (a *SynergyAggregator) allContribute(counts []uint16, c domain.Combination) bool {
	for _, id := range c.IDs() {
		if !a.contributes(counts, id) {
			return false
		}
	}
	return true
}
