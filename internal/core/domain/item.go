package domain

// Item is a composable catalog entry.
type Item struct {
	// ID is a stable small integer in [0, MaxCatalogItems) used for compact storage.
	ID int

	// Name is the unique, externally visible key.
	Name string

	// Cost orders items for search and display.
	Cost int

	// Traits lists the trait names this item counts towards.
	Traits []string
}

// TraitDefinition describes a trait and the raw counts at which it levels up.
type TraitDefinition struct {
	// Name is the unique trait name.
	Name string

	// Thresholds are ascending, positive and free of duplicates.
	Thresholds []int
}

// Level maps a raw trait count to its discrete level: the largest
// threshold not exceeding count, or 0 if none qualifies.
func (t TraitDefinition) Level(count int) int {
	level := 0
	for _, threshold := range t.Thresholds {
		if count < threshold {
			break
		}
		level = threshold
	}
	return level
}

// MaxLevel returns the highest reachable level for the trait.
func (t TraitDefinition) MaxLevel() int {
	if len(t.Thresholds) == 0 {
		return 0
	}
	return t.Thresholds[len(t.Thresholds)-1]
}
