package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

func TestCacheStatsCmd_PrintsPerRegionStats(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.cache.stats = []driving.CacheRegionStats{
		{Region: "documents", Entries: 4, Bytes: 2048},
		{Region: "comments", Entries: 1, Bytes: 512},
	}

	out, err := executeCommand("cache", "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "documents")
	assert.Contains(t, out, "~2048 bytes")
	assert.Contains(t, out, "Total: 5 entries, ~2560 bytes")
}

func TestCacheStatsCmd_NoRegions(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("cache", "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "No cache regions registered.")
}

func TestCacheClearCmd_ClearsAllRegions(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("cache", "clear")

	require.NoError(t, err)
	assert.True(t, mocks.cache.cleared)
	assert.Contains(t, out, "All cache regions cleared.")
}
