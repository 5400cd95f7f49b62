package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(
		[]Item{
			{ID: 2, Name: "C", Cost: 2, Traits: []string{"Y"}},
			{ID: 1, Name: "B", Cost: 1, Traits: []string{"X"}},
			{ID: 0, Name: "A", Cost: 1, Traits: []string{"X"}},
		},
		[]TraitDefinition{
			{Name: "Y", Thresholds: []int{1}},
			{Name: "X", Thresholds: []int{2}},
		},
	)
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog_OrdersItemsByCostThenName(t *testing.T) {
	catalog := testCatalog(t)

	items := catalog.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "B", items[1].Name)
	assert.Equal(t, "C", items[2].Name)
	assert.Equal(t, 3, catalog.Len())
}

func TestNewCatalog_OrdersTraitsByName(t *testing.T) {
	catalog := testCatalog(t)

	traits := catalog.Traits()
	require.Len(t, traits, 2)
	assert.Equal(t, "X", traits[0].Name)
	assert.Equal(t, "Y", traits[1].Name)

	pos, ok := catalog.TraitIndex("Y")
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestNewCatalog_NormalisesThresholds(t *testing.T) {
	catalog, err := NewCatalog(nil, []TraitDefinition{{Name: "Sorcerer", Thresholds: []int{6, 2, 4, 4}}})
	require.NoError(t, err)

	trait, ok := catalog.Trait("Sorcerer")
	require.True(t, ok)
	assert.Equal(t, []int{2, 4, 6}, trait.Thresholds)
}

func TestNewCatalog_Errors(t *testing.T) {
	tests := []struct {
		name   string
		items  []Item
		traits []TraitDefinition
		reason string
	}{
		{
			name:   "duplicate item name",
			items:  []Item{{ID: 0, Name: "A"}, {ID: 1, Name: "A"}},
			reason: "duplicate item name",
		},
		{
			name:   "duplicate item id",
			items:  []Item{{ID: 0, Name: "A"}, {ID: 0, Name: "B"}},
			reason: "duplicate item id",
		},
		{
			name:   "id out of range",
			items:  []Item{{ID: 64, Name: "A"}},
			reason: "outside [0, 64)",
		},
		{
			name:   "negative id",
			items:  []Item{{ID: -1, Name: "A"}},
			reason: "outside [0, 64)",
		},
		{
			name:   "empty item name",
			items:  []Item{{ID: 0, Name: "  "}},
			reason: "has no name",
		},
		{
			name:   "unknown trait",
			items:  []Item{{ID: 0, Name: "A", Traits: []string{"Missing"}}},
			reason: "unknown trait",
		},
		{
			name:   "duplicate trait",
			traits: []TraitDefinition{{Name: "X", Thresholds: []int{1}}, {Name: "X", Thresholds: []int{2}}},
			reason: "duplicate trait",
		},
		{
			name:   "non-positive threshold",
			traits: []TraitDefinition{{Name: "X", Thresholds: []int{0, 2}}},
			reason: "non-positive threshold",
		},
		{
			name:   "empty trait name",
			traits: []TraitDefinition{{Name: ""}},
			reason: "trait has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := NewCatalog(tt.items, tt.traits)
			require.Error(t, err)
			assert.Nil(t, catalog)
			assert.True(t, errors.Is(err, ErrCatalogLoad))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestNewCatalog_TooManyItems(t *testing.T) {
	items := make([]Item, MaxCatalogItems+1)
	for i := range items {
		items[i] = Item{ID: i % MaxCatalogItems, Name: string(rune('a' + i%26))}
	}

	_, err := NewCatalog(items, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogLoad)
	assert.Contains(t, err.Error(), "exceeds the limit")
}

func TestNewCatalog_Empty(t *testing.T) {
	catalog, err := NewCatalog(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())
	assert.Empty(t, catalog.Items())
}

func TestCatalog_Lookups(t *testing.T) {
	catalog := testCatalog(t)

	item, ok := catalog.Item(2)
	assert.True(t, ok)
	assert.Equal(t, "C", item.Name)

	_, ok = catalog.Item(40)
	assert.False(t, ok)

	item, ok = catalog.ItemByName("B")
	assert.True(t, ok)
	assert.Equal(t, 1, item.ID)

	_, ok = catalog.ItemByName("Z")
	assert.False(t, ok)
}

func TestCatalog_Resolve(t *testing.T) {
	catalog := testCatalog(t)

	combo, err := catalog.Resolve([]string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, NewCombination(0, 2), combo)

	_, err = catalog.Resolve([]string{"A", "Nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "Nope")
}

func TestCatalog_NamesCanonicalOrder(t *testing.T) {
	catalog := testCatalog(t)

	names := catalog.Names(NewCombination(2, 1, 0))
	assert.Equal(t, []string{"A", "B", "C"}, names)

	assert.Empty(t, catalog.Names(0))
}

func TestCatalog_ItemsIsACopy(t *testing.T) {
	catalog := testCatalog(t)

	items := catalog.Items()
	items[0].Name = "mutated"

	assert.Equal(t, "A", catalog.Items()[0].Name)
}

func TestTraitDefinition_Level(t *testing.T) {
	trait := TraitDefinition{Name: "Sorcerer", Thresholds: []int{2, 4, 6}}

	tests := []struct {
		count int
		level int
	}{
		{0, 0},
		{1, 0},
		{2, 2},
		{3, 2},
		{4, 4},
		{5, 4},
		{6, 6},
		{9, 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, trait.Level(tt.count), "count %d", tt.count)
	}
	assert.Equal(t, 6, trait.MaxLevel())
	assert.Equal(t, 0, TraitDefinition{Name: "Empty"}.MaxLevel())
}

func TestCatalog_MaxScore(t *testing.T) {
	assert.Equal(t, 3, testCatalog(t).MaxScore())

	empty, err := NewCatalog(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.MaxScore())
}
