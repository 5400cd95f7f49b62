// Package domain defines the core business entities for Synergy.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item, TraitDefinition, Catalog: the fixed set of composable items
//   - Combination: an unordered set of item ids
//   - SynergySnapshot: trait counts, discrete levels and total score of a combination
//   - IndexedCombination: the persisted form of an enumerated combination
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
