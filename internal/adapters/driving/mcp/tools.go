package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

const (
	defaultLimit = 50

	// searchTimeout bounds ad hoc searches started by an agent.
	searchTimeout = 30 * time.Second
)

// QueryInput is the input schema for the query_combinations tool.
type QueryInput struct {
	Include  []string `json:"include" jsonschema:"item names every combination must contain"`
	Exclude  []string `json:"exclude,omitempty" jsonschema:"item names no combination may contain"`
	SizeMin  *int     `json:"size_min,omitempty" jsonschema:"minimum number of members (default 0)"`
	SizeMax  *int     `json:"size_max,omitempty" jsonschema:"maximum number of members (default 9)"`
	ScoreMin *int     `json:"score_min,omitempty" jsonschema:"minimum total score (default 0)"`
	ScoreMax *int     `json:"score_max,omitempty" jsonschema:"maximum total score (default 100 or the catalog maximum, whichever is larger)"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 50)"`
}

// CombinationsOutput is the output schema for tools returning combinations.
type CombinationsOutput struct {
	Combinations []CombinationOutput `json:"combinations"`
	Count        int                 `json:"count"`
	Total        int                 `json:"total"`
}

// CombinationOutput represents a single combination.
type CombinationOutput struct {
	Index  int64               `json:"index"`
	Items  []string            `json:"items"`
	Size   int                 `json:"size"`
	Score  int                 `json:"score"`
	Traits []domain.TraitLevel `json:"traits,omitempty"`
}

// SynergyInput is the input schema for the synergy tool.
type SynergyInput struct {
	Items []string `json:"items" jsonschema:"item names to score as one combination"`
}

// SearchInput is the input schema for the search_combinations tool.
type SearchInput struct {
	Required []string `json:"required,omitempty" jsonschema:"item names constraining the search"`
	Mode     string   `json:"mode,omitempty" jsonschema:"and: every required item present; or: at least one (default and)"`
	Excluded []string `json:"excluded,omitempty" jsonschema:"item names removed before searching"`
	MaxSize  int      `json:"max_size" jsonschema:"maximum number of members per combination (0-9)"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 50)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_combinations",
		Description: "Find stored combinations containing the given items, filtered by size and score",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "synergy",
		Description: "Compute trait counts, levels and total score for a set of items",
	}, s.handleSynergy)

	if s.ports.Enumeration != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_combinations",
			Description: "Search the catalog for combinations around a selection without using the store",
		}, s.handleSearch)
	}
}

// handleQuery handles the query_combinations tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, CombinationsOutput, error) {
	q := domain.DefaultCombinationQueryFor(s.ports.Query.Catalog())
	q.MustInclude = input.Include
	q.MustExclude = input.Exclude
	setIfPresent(&q.SizeMin, input.SizeMin)
	setIfPresent(&q.SizeMax, input.SizeMax)
	setIfPresent(&q.ScoreMin, input.ScoreMin)
	setIfPresent(&q.ScoreMax, input.ScoreMax)

	views, err := s.ports.Query.Query(ctx, q)
	if err != nil {
		return nil, CombinationsOutput{}, err
	}

	limit := limitOrDefault(input.Limit)
	output := CombinationsOutput{
		Combinations: make([]CombinationOutput, 0, min(limit, len(views))),
		Total:        len(views),
	}
	for i := range views {
		if len(output.Combinations) == limit {
			break
		}
		output.Combinations = append(output.Combinations, viewOutput(&views[i]))
	}
	output.Count = len(output.Combinations)

	return nil, output, nil
}

// handleSynergy handles the synergy tool invocation.
func (s *Server) handleSynergy(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SynergyInput,
) (*mcp.CallToolResult, CombinationOutput, error) {
	view, err := s.ports.Query.Synergy(ctx, input.Items)
	if err != nil {
		return nil, CombinationOutput{}, err
	}
	return nil, viewOutput(view), nil
}

// handleSearch handles the search_combinations tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, CombinationsOutput, error) {
	if s.ports.Enumeration == nil {
		return nil, CombinationsOutput{}, errors.New("search is not available")
	}

	opts := domain.SearchOptions{
		MaxSize:  input.MaxSize,
		Required: input.Required,
		Mode:     domain.RequiredMode(input.Mode),
		Excluded: input.Excluded,
		Timeout:  searchTimeout,
	}
	result, err := s.ports.Enumeration.Search(ctx, opts)
	if err != nil {
		return nil, CombinationsOutput{}, err
	}

	catalog := s.ports.Query.Catalog()
	limit := limitOrDefault(input.Limit)
	output := CombinationsOutput{
		Combinations: make([]CombinationOutput, 0, min(limit, len(result.Combinations))),
		Total:        len(result.Combinations),
	}
	for _, combo := range result.Combinations {
		if len(output.Combinations) == limit {
			break
		}
		view, err := s.ports.Query.Synergy(ctx, catalog.Names(combo))
		if err != nil {
			return nil, CombinationsOutput{}, err
		}
		output.Combinations = append(output.Combinations, viewOutput(view))
	}
	output.Count = len(output.Combinations)

	return nil, output, nil
}

func viewOutput(view *domain.CombinationView) CombinationOutput {
	return CombinationOutput{
		Index:  view.Index,
		Items:  view.Names,
		Size:   view.Size,
		Score:  view.TotalScore,
		Traits: view.Snapshot.Active(),
	}
}

func setIfPresent(dst, value *int) {
	if value != nil {
		*dst = *value
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
