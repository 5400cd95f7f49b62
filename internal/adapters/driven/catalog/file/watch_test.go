package file

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Watch_ReportsReload(t *testing.T) {
	source := writeCatalog(t, "catalog.toml", tomlCatalog)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := source.Watch(ctx)
	require.NoError(t, err)

	updated := tomlCatalog + `
[[items]]
name = "Zed"
cost = 5
traits = ["Spirit"]
`
	require.NoError(t, os.WriteFile(source.Location(), []byte(updated), 0600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case change := <-changes:
			// A write may be observed mid-way; wait for the complete file.
			if change.Err != nil || change.Catalog.Len() != 3 {
				continue
			}
			_, ok := change.Catalog.ItemByName("Zed")
			assert.True(t, ok)
			return
		case <-deadline:
			t.Fatal("no catalog change reported")
		}
	}
}

func TestSource_Watch_ReportsInvalidCatalog(t *testing.T) {
	source := writeCatalog(t, "catalog.toml", tomlCatalog)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := source.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.Remove(source.Location()))

	select {
	case change := <-changes:
		assert.Error(t, change.Err)
		assert.Nil(t, change.Catalog)
	case <-time.After(5 * time.Second):
		t.Fatal("no catalog change reported")
	}
}

func TestSource_Watch_ClosesOnCancel(t *testing.T) {
	source := writeCatalog(t, "catalog.toml", tomlCatalog)
	ctx, cancel := context.WithCancel(context.Background())

	changes, err := source.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed")
	}
}
