package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalogLoad indicates the item/trait catalog is missing or malformed.
	// No partial catalog is ever used after this error.
	ErrCatalogLoad = errors.New("catalog load failed")

	// ErrRangeViolation indicates a size or score bound outside its allowed range.
	// Bounds are rejected, never clamped.
	ErrRangeViolation = errors.New("range violation")

	// ErrStoreIO indicates the combination store could not be read or written.
	ErrStoreIO = errors.New("combination store I/O failed")

	// ErrStoreNotBuilt indicates no enumeration has been loaded into the store yet.
	ErrStoreNotBuilt = errors.New("combination store not built")

	// ErrResourceExhausted indicates a search exceeded its configured time or result bound.
	ErrResourceExhausted = errors.New("search resources exhausted")
)

// CatalogError describes why a catalog could not be loaded.
type CatalogError struct {
	// Path is the catalog file, empty for in-memory catalogs.
	Path string

	// Reason is a human-readable description of the problem.
	Reason string
}

func (e *CatalogError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("catalog: %s", e.Reason)
	}
	return fmt.Sprintf("catalog %s: %s", e.Path, e.Reason)
}

// Unwrap lets errors.Is match ErrCatalogLoad.
func (e *CatalogError) Unwrap() error {
	return ErrCatalogLoad
}

// Exhaustion reasons reported by SearchExhaustedError.
const (
	ExhaustedTimeout    = "timeout"
	ExhaustedMaxResults = "max results"
	ExhaustedCancelled  = "cancelled"
)

// SearchExhaustedError reports how far a search got before it was stopped.
type SearchExhaustedError struct {
	// Reason is one of the Exhausted* constants.
	Reason string

	// Found is the number of combinations recorded before stopping.
	Found int

	// Nodes is the number of search nodes examined.
	Nodes int64

	// RootsDone and RootsTotal describe progress over first-level candidates.
	RootsDone  int
	RootsTotal int

	// Elapsed is the wall time spent searching.
	Elapsed time.Duration

	// Cause is the underlying context error, if any.
	Cause error
}

func (e *SearchExhaustedError) Error() string {
	return fmt.Sprintf("search stopped (%s) after %s: %d combinations found, %d nodes, %d/%d roots done",
		e.Reason, e.Elapsed.Round(time.Millisecond), e.Found, e.Nodes, e.RootsDone, e.RootsTotal)
}

// Unwrap exposes both ErrResourceExhausted and the context cause.
func (e *SearchExhaustedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrResourceExhausted, e.Cause}
	}
	return []error{ErrResourceExhausted}
}
