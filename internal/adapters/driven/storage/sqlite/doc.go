// Package sqlite provides the persisted combination index store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It implements driven.CombinationStore with four tables:
//
//   - enumeration_runs: the run currently loaded (at most one row)
//   - items: catalog items with their posting-list length
//   - combinations: one row per combination keyed by its surrogate index
//   - postings: the inverted index, one row per (item_id, combination_index)
//
// Members are stored as a small versioned blob (see codec.go).
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.synergy/data/combinations.db
//
// # Thread Safety
//
// Load holds an exclusive lock for its single transaction. Queries share a
// read lock and may run concurrently.
package sqlite
