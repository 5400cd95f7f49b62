package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for synergy resources.
	uriScheme = "synergy://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog",
		Name:        "catalog",
		Description: "Items and trait thresholds of the loaded catalog",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	if s.ports.Enumeration != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "status",
			Name:        "status",
			Description: "The enumeration run currently held by the combination store",
			MIMEType:    "application/json",
		}, s.handleStatusResource)
	}
}

type catalogInfo struct {
	Items  []itemInfo  `json:"items"`
	Traits []traitInfo `json:"traits"`
}

type itemInfo struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Cost   int      `json:"cost"`
	Traits []string `json:"traits"`
}

type traitInfo struct {
	Name       string `json:"name"`
	Thresholds []int  `json:"thresholds"`
}

// handleCatalogResource returns the catalog in canonical order.
func (s *Server) handleCatalogResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	catalog := s.ports.Query.Catalog()
	if catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info := catalogInfo{
		Items:  make([]itemInfo, 0, catalog.Len()),
		Traits: []traitInfo{},
	}
	for _, item := range catalog.Items() {
		info.Items = append(info.Items, itemInfo{
			ID:     item.ID,
			Name:   item.Name,
			Cost:   item.Cost,
			Traits: item.Traits,
		})
	}
	for _, trait := range catalog.Traits() {
		info.Traits = append(info.Traits, traitInfo{Name: trait.Name, Thresholds: trait.Thresholds})
	}

	return jsonResource(req.Params.URI, info)
}

type statusInfo struct {
	Built        bool   `json:"built"`
	RunID        string `json:"run_id,omitempty"`
	MaxSize      int    `json:"max_size,omitempty"`
	CatalogItems int    `json:"catalog_items,omitempty"`
	Combinations int    `json:"combinations,omitempty"`
	StartedAt    string `json:"started_at,omitempty"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

// handleStatusResource describes the stored enumeration run.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Enumeration == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.Enumeration.LastRun(ctx)
	if errors.Is(err, domain.ErrStoreNotBuilt) {
		return jsonResource(req.Params.URI, statusInfo{Built: false})
	}
	if err != nil {
		return nil, fmt.Errorf("reading last run: %w", err)
	}

	return jsonResource(req.Params.URI, statusInfo{
		Built:        true,
		RunID:        run.ID,
		MaxSize:      run.MaxSize,
		CatalogItems: run.CatalogItems,
		Combinations: run.Combinations,
		StartedAt:    run.StartedAt.Format(timeLayout),
		CompletedAt:  run.CompletedAt.Format(timeLayout),
	})
}

const timeLayout = time.RFC3339

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
