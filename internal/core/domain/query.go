package domain

import "fmt"

// DefaultScoreMax is the default upper score bound of a query.
const DefaultScoreMax = 100

// CombinationQuery selects stored combinations by membership and ranges.
// All ranges are inclusive.
//
// An empty MustInclude returns no rows: the store may hold tens of
// millions of combinations and a full scan is never performed.
type CombinationQuery struct {
	MustInclude []string
	MustExclude []string
	SizeMin     int
	SizeMax     int
	ScoreMin    int
	ScoreMax    int
}

// DefaultCombinationQuery returns a query with the widest default ranges.
func DefaultCombinationQuery() CombinationQuery {
	return CombinationQuery{
		SizeMin:  0,
		SizeMax:  MaxCombinationSize,
		ScoreMin: 0,
		ScoreMax: DefaultScoreMax,
	}
}

// DefaultCombinationQueryFor returns the default query with the score range
// widened to the catalog's MaxScore when that exceeds DefaultScoreMax, so no
// stored combination falls outside the default range.
func DefaultCombinationQueryFor(catalog *Catalog) CombinationQuery {
	q := DefaultCombinationQuery()
	if catalog != nil {
		q.ScoreMax = max(q.ScoreMax, catalog.MaxScore())
	}
	return q
}

// Validate rejects ranges outside [0, MaxCombinationSize], negative scores
// and inverted ranges.
func (q CombinationQuery) Validate() error {
	if q.SizeMin < 0 || q.SizeMax > MaxCombinationSize || q.SizeMax < 0 || q.SizeMin > MaxCombinationSize {
		return fmt.Errorf("%w: size range [%d, %d] outside [0, %d]", ErrRangeViolation, q.SizeMin, q.SizeMax, MaxCombinationSize)
	}
	if q.SizeMin > q.SizeMax {
		return fmt.Errorf("%w: size min %d above max %d", ErrRangeViolation, q.SizeMin, q.SizeMax)
	}
	if q.ScoreMin < 0 || q.ScoreMax < 0 {
		return fmt.Errorf("%w: negative score bound", ErrRangeViolation)
	}
	if q.ScoreMin > q.ScoreMax {
		return fmt.Errorf("%w: score min %d above max %d", ErrRangeViolation, q.ScoreMin, q.ScoreMax)
	}
	return nil
}

// CombinationView is a query hit hydrated for display.
type CombinationView struct {
	IndexedCombination

	// Names lists members in canonical order (cost, then name).
	Names []string

	// Snapshot is re-derived from the members.
	Snapshot SynergySnapshot
}
