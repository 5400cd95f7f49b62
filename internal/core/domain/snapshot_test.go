package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynergySnapshot_ZeroForAbsentTraits(t *testing.T) {
	s := NewSynergySnapshot()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Count("Missing"))
	assert.Equal(t, 0, s.Level("Missing"))
	assert.Equal(t, 0, s.TotalScore)
}

func TestSynergySnapshot_LevelIncreasedFrom(t *testing.T) {
	prev := SynergySnapshot{
		RawCounts: map[string]int{"X": 1},
		Levels:    map[string]int{"X": 0},
	}

	same := SynergySnapshot{
		RawCounts: map[string]int{"X": 1, "Y": 1},
		Levels:    map[string]int{"X": 0, "Y": 0},
	}
	assert.False(t, same.LevelIncreasedFrom(prev))

	grown := SynergySnapshot{
		RawCounts: map[string]int{"X": 2},
		Levels:    map[string]int{"X": 2},
	}
	assert.True(t, grown.LevelIncreasedFrom(prev))

	newTrait := SynergySnapshot{
		RawCounts: map[string]int{"X": 1, "Y": 1},
		Levels:    map[string]int{"X": 0, "Y": 1},
	}
	assert.True(t, newTrait.LevelIncreasedFrom(prev))
}

func TestSynergySnapshot_Active(t *testing.T) {
	s := SynergySnapshot{
		RawCounts: map[string]int{"A": 3, "B": 1, "C": 2, "D": 2},
		Levels:    map[string]int{"A": 3, "B": 0, "C": 2, "D": 2},
	}

	active := s.Active()
	assert.Equal(t, []TraitLevel{
		{Trait: "A", Count: 3, Level: 3},
		{Trait: "C", Count: 2, Level: 2},
		{Trait: "D", Count: 2, Level: 2},
	}, active)
}
