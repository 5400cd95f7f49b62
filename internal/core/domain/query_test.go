package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCombinationQuery(t *testing.T) {
	q := DefaultCombinationQuery()
	assert.Equal(t, 0, q.SizeMin)
	assert.Equal(t, MaxCombinationSize, q.SizeMax)
	assert.Equal(t, 0, q.ScoreMin)
	assert.Equal(t, DefaultScoreMax, q.ScoreMax)
	assert.NoError(t, q.Validate())
}

func TestCombinationQuery_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CombinationQuery)
		valid  bool
	}{
		{name: "defaults", mutate: func(*CombinationQuery) {}, valid: true},
		{name: "single size", mutate: func(q *CombinationQuery) { q.SizeMin, q.SizeMax = 3, 3 }, valid: true},
		{name: "negative size min", mutate: func(q *CombinationQuery) { q.SizeMin = -1 }},
		{name: "size max too large", mutate: func(q *CombinationQuery) { q.SizeMax = MaxCombinationSize + 1 }},
		{name: "inverted size", mutate: func(q *CombinationQuery) { q.SizeMin, q.SizeMax = 5, 2 }},
		{name: "negative score min", mutate: func(q *CombinationQuery) { q.ScoreMin = -2 }},
		{name: "negative score max", mutate: func(q *CombinationQuery) { q.ScoreMax = -1 }},
		{name: "inverted score", mutate: func(q *CombinationQuery) { q.ScoreMin, q.ScoreMax = 10, 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultCombinationQuery()
			tt.mutate(&q)
			err := q.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrRangeViolation)
			}
		})
	}
}

func TestDefaultCombinationQueryFor(t *testing.T) {
	t.Run("small catalog keeps the default cap", func(t *testing.T) {
		q := DefaultCombinationQueryFor(testCatalog(t))
		assert.Equal(t, DefaultScoreMax, q.ScoreMax)
	})

	t.Run("high scoring catalog widens the cap", func(t *testing.T) {
		catalog, err := NewCatalog(
			[]Item{{ID: 0, Name: "A", Cost: 1, Traits: []string{"X"}}},
			[]TraitDefinition{
				{Name: "X", Thresholds: []int{1, 80}},
				{Name: "Y", Thresholds: []int{70}},
			},
		)
		require.NoError(t, err)

		q := DefaultCombinationQueryFor(catalog)
		assert.Equal(t, 150, q.ScoreMax)
		assert.NoError(t, q.Validate())
	})

	t.Run("nil catalog", func(t *testing.T) {
		assert.Equal(t, DefaultCombinationQuery(), DefaultCombinationQueryFor(nil))
	})
}
