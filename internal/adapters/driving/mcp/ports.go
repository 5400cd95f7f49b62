package mcp

import (
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers store queries and scores item sets.
	Query driving.QueryService

	// Enumeration runs ad hoc searches and reports the stored run.
	Enumeration driving.EnumerationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Enumeration is optional; the search tool and status resource need it.
	return nil
}
