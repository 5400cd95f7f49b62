package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleCatalogResource(t *testing.T) {
	server, err := NewServer(&Ports{Query: &mockQueryService{catalog: testCatalog(t)}})
	require.NoError(t, err)

	result, err := server.handleCatalogResource(context.Background(), readRequest("synergy://catalog"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var info catalogInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
	require.Len(t, info.Items, 3)
	assert.Equal(t, "A", info.Items[0].Name)
	assert.Equal(t, "C", info.Items[2].Name)
	assert.Equal(t, []traitInfo{
		{Name: "X", Thresholds: []int{2}},
		{Name: "Y", Thresholds: []int{1}},
	}, info.Traits)
}

func TestServer_handleStatusResource(t *testing.T) {
	ctx := context.Background()
	req := readRequest("synergy://status")

	t.Run("not built", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Query:       &mockQueryService{catalog: testCatalog(t)},
			Enumeration: &mockEnumerationService{err: domain.ErrStoreNotBuilt},
		})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"built": false}`, result.Contents[0].Text)
	})

	t.Run("built", func(t *testing.T) {
		started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		server, err := NewServer(&Ports{
			Query: &mockQueryService{catalog: testCatalog(t)},
			Enumeration: &mockEnumerationService{run: &domain.EnumerationRun{
				ID: "run-1", MaxSize: 3, CatalogItems: 3, Combinations: 3,
				StartedAt: started, CompletedAt: started.Add(time.Second),
			}},
		})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, req)
		require.NoError(t, err)

		var info statusInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
		assert.True(t, info.Built)
		assert.Equal(t, "run-1", info.RunID)
		assert.Equal(t, "2024-01-02T03:04:05Z", info.StartedAt)
	})

	t.Run("store failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Query:       &mockQueryService{catalog: testCatalog(t)},
			Enumeration: &mockEnumerationService{err: errors.New("disk gone")},
		})
		require.NoError(t, err)

		_, err = server.handleStatusResource(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk gone")
	})
}
