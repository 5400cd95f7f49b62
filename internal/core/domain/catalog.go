package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MaxCatalogItems bounds the catalog so that a Combination fits in one machine word.
const MaxCatalogItems = 64

// Catalog is the immutable set of items and trait definitions.
// It is safe for concurrent use once constructed.
type Catalog struct {
	items     []Item // ordered by cost, then name
	positions map[int]int
	names     map[string]int
	traits    []TraitDefinition // ordered by name
	traitPos  map[string]int
}

// NewCatalog validates and indexes items and traits.
// Trait thresholds are sorted and de-duplicated. Every problem is
// reported as a *CatalogError, which unwraps to ErrCatalogLoad.
func NewCatalog(items []Item, traits []TraitDefinition) (*Catalog, error) {
	if len(items) > MaxCatalogItems {
		return nil, &CatalogError{Reason: fmt.Sprintf("%d items exceeds the limit of %d", len(items), MaxCatalogItems)}
	}

	c := &Catalog{
		items:     make([]Item, 0, len(items)),
		positions: make(map[int]int, len(items)),
		names:     make(map[string]int, len(items)),
		traits:    make([]TraitDefinition, 0, len(traits)),
		traitPos:  make(map[string]int, len(traits)),
	}

	for _, trait := range traits {
		normalised, err := normaliseTrait(trait)
		if err != nil {
			return nil, err
		}
		if _, dup := c.traitPos[normalised.Name]; dup {
			return nil, &CatalogError{Reason: fmt.Sprintf("duplicate trait %q", normalised.Name)}
		}
		c.traitPos[normalised.Name] = -1
		c.traits = append(c.traits, normalised)
	}
	sort.Slice(c.traits, func(i, j int) bool { return c.traits[i].Name < c.traits[j].Name })
	for i, trait := range c.traits {
		c.traitPos[trait.Name] = i
	}

	seenIDs := make(map[int]bool, len(items))
	seenNames := make(map[string]bool, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		switch {
		case item.Name == "":
			return nil, &CatalogError{Reason: fmt.Sprintf("item %d has no name", item.ID)}
		case item.ID < 0 || item.ID >= MaxCatalogItems:
			return nil, &CatalogError{Reason: fmt.Sprintf("item %q has id %d outside [0, %d)", item.Name, item.ID, MaxCatalogItems)}
		case seenIDs[item.ID]:
			return nil, &CatalogError{Reason: fmt.Sprintf("duplicate item id %d", item.ID)}
		case seenNames[item.Name]:
			return nil, &CatalogError{Reason: fmt.Sprintf("duplicate item name %q", item.Name)}
		}
		for _, trait := range item.Traits {
			if _, ok := c.traitPos[trait]; !ok {
				return nil, &CatalogError{Reason: fmt.Sprintf("item %q references unknown trait %q", item.Name, trait)}
			}
		}
		seenIDs[item.ID] = true
		seenNames[item.Name] = true

		item.Traits = append([]string(nil), item.Traits...)
		c.items = append(c.items, item)
	}

	sort.SliceStable(c.items, func(i, j int) bool {
		if c.items[i].Cost != c.items[j].Cost {
			return c.items[i].Cost < c.items[j].Cost
		}
		return c.items[i].Name < c.items[j].Name
	})
	for i, item := range c.items {
		c.positions[item.ID] = i
		c.names[item.Name] = i
	}

	return c, nil
}

func normaliseTrait(trait TraitDefinition) (TraitDefinition, error) {
	name := strings.TrimSpace(trait.Name)
	if name == "" {
		return TraitDefinition{}, &CatalogError{Reason: "trait has no name"}
	}

	thresholds := append([]int(nil), trait.Thresholds...)
	sort.Ints(thresholds)
	deduped := thresholds[:0]
	for i, threshold := range thresholds {
		if threshold <= 0 {
			return TraitDefinition{}, &CatalogError{Reason: fmt.Sprintf("trait %q has non-positive threshold %d", name, threshold)}
		}
		if i > 0 && threshold == thresholds[i-1] {
			continue
		}
		deduped = append(deduped, threshold)
	}

	return TraitDefinition{Name: name, Thresholds: deduped}, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the items ordered by cost, then name.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Item looks up an item by id.
func (c *Catalog) Item(id int) (Item, bool) {
	pos, ok := c.positions[id]
	if !ok {
		return Item{}, false
	}
	return c.items[pos], true
}

// ItemByName looks up an item by name.
func (c *Catalog) ItemByName(name string) (Item, bool) {
	pos, ok := c.names[name]
	if !ok {
		return Item{}, false
	}
	return c.items[pos], true
}

// Traits returns the trait definitions ordered by name.
func (c *Catalog) Traits() []TraitDefinition {
	return append([]TraitDefinition(nil), c.traits...)
}

// Trait looks up a trait definition by name.
func (c *Catalog) Trait(name string) (TraitDefinition, bool) {
	pos, ok := c.traitPos[name]
	if !ok {
		return TraitDefinition{}, false
	}
	return c.traits[pos], true
}

// MaxScore returns an upper bound on the total score of any combination:
// the sum of every trait's highest level.
func (c *Catalog) MaxScore() int {
	total := 0
	for _, trait := range c.traits {
		total += trait.MaxLevel()
	}
	return total
}

// TraitIndex returns the position of a trait in Traits().
func (c *Catalog) TraitIndex(name string) (int, bool) {
	pos, ok := c.traitPos[name]
	return pos, ok
}

// Resolve converts item names to a Combination.
// Unknown names are reported with ErrInvalidInput.
func (c *Catalog) Resolve(names []string) (Combination, error) {
	var combo Combination
	for _, name := range names {
		item, ok := c.ItemByName(name)
		if !ok {
			return 0, fmt.Errorf("%w: unknown item %q", ErrInvalidInput, name)
		}
		combo = combo.With(item.ID)
	}
	return combo, nil
}

// Members returns the items of a combination in canonical order (cost, then name).
// Ids not present in the catalog are skipped.
func (c *Catalog) Members(combo Combination) []Item {
	members := make([]Item, 0, combo.Len())
	for _, item := range c.items {
		if combo.Has(item.ID) {
			members = append(members, item)
		}
	}
	return members
}

// Names returns the member names of a combination in canonical order.
func (c *Catalog) Names(combo Combination) []string {
	members := c.Members(combo)
	names := make([]string, len(members))
	for i, item := range members {
		names[i] = item.Name
	}
	return names
}
