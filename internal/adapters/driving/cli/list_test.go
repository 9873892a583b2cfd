package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func TestListCmd_HasSubcommands(t *testing.T) {
	commands := listCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "articles")
	assert.Contains(t, commandNames, "publications")
	assert.Contains(t, commandNames, "highlights")
}

func TestListArticlesCmd_PrintsRecords(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.content.records = []domain.Record{
		{
			ID:        "a1",
			Author:    "alicealicealicealice",
			Kind:      domain.KindArticle,
			CreatedAt: testCreated,
			Tags:      [][]string{{"d", "post"}, {"title", "A Post"}},
		},
	}

	out, err := executeCommand("list", "articles")

	require.NoError(t, err)
	assert.Contains(t, out, "A Post")
	assert.Contains(t, out, "alicealiceal…")
	assert.Contains(t, out, "Address: 30023:alicealicealicealice:post")
	assert.Contains(t, out, "Total: 1 records")
}

func TestListHighlightsCmd_PrintsIDForNonReplaceable(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.content.records = []domain.Record{
		{
			ID:        "h1",
			Author:    "bob",
			Kind:      domain.KindHighlight,
			CreatedAt: testCreated,
			Content:   "a highlighted passage",
		},
	}

	out, err := executeCommand("list", "highlights")

	require.NoError(t, err)
	assert.Contains(t, out, "ID:      h1")
	assert.NotContains(t, out, "Address:")
}

func TestListPublicationsCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("list", "publications")

	require.NoError(t, err)
	assert.Contains(t, out, "No records found.")
}

func TestListCmd_LimitFlag(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	defer func() { listLimit = 0 }()

	_, err := executeCommand("list", "articles", "--limit", "3")

	require.NoError(t, err)
	assert.Equal(t, 3, mocks.content.lastOpts.Limit)
}

func TestListCmd_JSONFlag(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	defer func() { listJSON = false }()

	mocks.content.records = []domain.Record{
		{ID: "a1", Author: "alice", Kind: domain.KindArticle, CreatedAt: testCreated},
	}

	out, err := executeCommand("list", "articles", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"a1"`)
}

func TestListCmd_PropagatesServiceError(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.content.err = domain.ErrNoSourceReachable

	_, err := executeCommand("list", "articles")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoSourceReachable)
}
