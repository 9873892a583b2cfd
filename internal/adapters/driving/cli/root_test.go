package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "folio", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "comments")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "warm")
	assert.Contains(t, commandNames, "cache")
	assert.Contains(t, commandNames, "sources")
	assert.Contains(t, commandNames, "mcp")
	assert.Contains(t, commandNames, "version")
}

func TestParseReference(t *testing.T) {
	t.Run("coordinate form", func(t *testing.T) {
		ref, err := parseReference("30023:alice:post")

		require.NoError(t, err)
		coordRef, ok := ref.(domain.CoordinateReference)
		require.True(t, ok)
		assert.Equal(t, 30023, coordRef.Coordinate.Kind)
		assert.Equal(t, "alice", coordRef.Coordinate.Author)
		assert.Equal(t, "post", coordRef.Coordinate.Identifier)
	})

	t.Run("identifier containing colons", func(t *testing.T) {
		ref, err := parseReference("30040:alice:book:volume:2")

		require.NoError(t, err)
		coordRef, ok := ref.(domain.CoordinateReference)
		require.True(t, ok)
		assert.Equal(t, "book:volume:2", coordRef.Coordinate.Identifier)
	})

	t.Run("plain ID", func(t *testing.T) {
		ref, err := parseReference("abc123")

		require.NoError(t, err)
		idRef, ok := ref.(domain.IDReference)
		require.True(t, ok)
		assert.Equal(t, "abc123", idRef.ID)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := parseReference("   ")

		assert.ErrorIs(t, err, domain.ErrInvalidReference)
	})

	t.Run("malformed coordinate", func(t *testing.T) {
		_, err := parseReference("abc:def")

		assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
	})
}

func TestCommandsErrorWithoutServices(t *testing.T) {
	prev := Services{
		Content: contentService,
		Warmer:  warmerService,
		Cache:   cacheAdmin,
		Config:  configStore,
	}
	SetServices(Services{})
	defer SetServices(prev)

	_, err := executeCommand("list", "articles")
	assert.ErrorContains(t, err, "content service not configured")

	_, err = executeCommand("warm")
	assert.ErrorContains(t, err, "warmer not configured")

	_, err = executeCommand("cache", "stats")
	assert.ErrorContains(t, err, "cache admin not configured")

	_, err = executeCommand("sources", "list")
	assert.ErrorContains(t, err, "config store not configured")
}
