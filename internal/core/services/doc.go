// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SynergyAggregator scores combinations, SearchEngine enumerates them, and
// EnumerationService and QueryService sit between the engine, the store and
// the command line.
package services
