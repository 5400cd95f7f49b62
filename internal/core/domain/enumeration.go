package domain

import "time"

// EnumerationRun records one full enumeration loaded into the store.
type EnumerationRun struct {
	ID           string
	MaxSize      int
	CatalogItems int
	Combinations int
	StartedAt    time.Time
	CompletedAt  time.Time
}

// CombinationBatch is everything a store needs for a destructive load.
type CombinationBatch struct {
	Run          EnumerationRun
	Items        []Item
	Combinations []IndexedCombination
}

// LoadResult summarises a completed load.
type LoadResult struct {
	RunID        string
	Combinations int
	Postings     int
	Duration     time.Duration
}
