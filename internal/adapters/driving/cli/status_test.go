package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCmd_NotBuilt(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog: 3 items, 2 traits")
	assert.Contains(t, out, "not built")
}

func TestStatusCmd_Built(t *testing.T) {
	setupTestServices(t)

	_, err := runCommand(t, "enumerate", "--max-size", "3", "--yes")
	require.NoError(t, err)

	out, err := runCommand(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Max size:     3")
	assert.Contains(t, out, "Items:        3")
	assert.Contains(t, out, "Combinations: 3")
	assert.NotContains(t, out, "catalog has changed")
}
