// Package mcp provides an MCP (Model Context Protocol) server adapter for synergy.
// It lets AI assistants query stored combinations and score item sets.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
