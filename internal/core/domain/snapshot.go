package domain

import "sort"

// SynergySnapshot is the derived synergy state of a combination.
// It is never stored; recompute it from the members when needed.
type SynergySnapshot struct {
	// RawCounts maps trait name to the number of members carrying it.
	RawCounts map[string]int

	// Levels maps trait name to its discrete level.
	Levels map[string]int

	// TotalScore is the sum of Levels.
	TotalScore int
}

// NewSynergySnapshot returns an empty snapshot.
func NewSynergySnapshot() SynergySnapshot {
	return SynergySnapshot{
		RawCounts: make(map[string]int),
		Levels:    make(map[string]int),
	}
}

// Count returns the raw count for a trait, zero when absent.
func (s SynergySnapshot) Count(trait string) int {
	return s.RawCounts[trait]
}

// Level returns the discrete level for a trait, zero when absent.
func (s SynergySnapshot) Level(trait string) int {
	return s.Levels[trait]
}

// IsEmpty reports whether no trait has been counted.
func (s SynergySnapshot) IsEmpty() bool {
	return len(s.RawCounts) == 0
}

// LevelIncreasedFrom reports whether any trait's level in s is strictly
// higher than in prev.
func (s SynergySnapshot) LevelIncreasedFrom(prev SynergySnapshot) bool {
	for trait, level := range s.Levels {
		if level > prev.Level(trait) {
			return true
		}
	}
	return false
}

// TraitLevel pairs a trait with its count and level for display.
type TraitLevel struct {
	Trait string `json:"trait"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Active returns traits with a non-zero level, highest level first, then by name.
func (s SynergySnapshot) Active() []TraitLevel {
	active := make([]TraitLevel, 0, len(s.Levels))
	for trait, level := range s.Levels {
		if level > 0 {
			active = append(active, TraitLevel{Trait: trait, Count: s.RawCounts[trait], Level: level})
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].Level != active[j].Level {
			return active[i].Level > active[j].Level
		}
		return active[i].Trait < active[j].Trait
	})
	return active
}
