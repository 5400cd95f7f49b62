package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/synergy-cli/internal/logger"
)

func TestRootCmd_Commands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"enumerate", "search", "query", "synergy", "status", "catalog", "settings", "mcp", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	setupTestServices(t)
	defer logger.SetVerbose(false)

	_, err := runCommand(t, "-v", "version")
	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestLimited(t *testing.T) {
	values := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, limited(values, 2))
	assert.Equal(t, values, limited(values, 0))
	assert.Equal(t, values, limited(values, 5))
}
