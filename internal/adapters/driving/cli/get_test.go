package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

func TestGetCmd_Use(t *testing.T) {
	assert.Equal(t, "get [reference]", getCmd.Use)
}

func TestGetCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := executeCommand("get")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestGetCmd_PrintsDocument(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.content.document = &driving.DocumentResult{
		Root: domain.Record{
			ID:        "root-id",
			Author:    "alice",
			Kind:      domain.KindArticle,
			CreatedAt: testCreated,
			Tags:      [][]string{{"d", "post"}, {"title", "A Post"}},
		},
		Content: []domain.Record{
			{ID: "root-id", Content: "the article body"},
		},
	}

	out, err := executeCommand("get", "30023:alice:post")

	require.NoError(t, err)
	assert.Contains(t, out, "A Post")
	assert.Contains(t, out, "Author:  alice")
	assert.Contains(t, out, "the article body")
	assert.NotContains(t, out, "stale")
}

func TestGetCmd_MarksStaleResults(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.content.document = &driving.DocumentResult{
		Root:  domain.Record{ID: "root-id", Author: "alice", CreatedAt: testCreated},
		Stale: true,
	}

	out, err := executeCommand("get", "root-id")

	require.NoError(t, err)
	assert.Contains(t, out, "served from stale cache")
}

func TestGetCmd_OutlineFlag(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	defer func() { getOutline = false }()

	mocks.content.document = &driving.DocumentResult{
		Root: domain.Record{
			ID:        "idx",
			Author:    "alice",
			Kind:      domain.KindPublicationIndex,
			CreatedAt: testCreated,
			Tags:      [][]string{{"d", "book"}, {"title", "The Book"}},
		},
		Tree: []*domain.DocumentNode{
			{
				Record: domain.Record{
					ID:   "ch1",
					Kind: domain.KindPublicationContent,
					Tags: [][]string{{"title", "Chapter One"}},
				},
			},
			{
				Record: domain.Record{
					ID:   "ch1",
					Kind: domain.KindPublicationContent,
					Tags: [][]string{{"title", "Chapter One"}},
				},
				Linked: true,
			},
		},
	}

	out, err := executeCommand("get", "--outline", "30040:alice:book")

	require.NoError(t, err)
	assert.Contains(t, out, "- Chapter One [ch1]")
	assert.Contains(t, out, "(already included)")
}

func TestGetCmd_JSONFlag(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	defer func() { getJSON = false }()

	mocks.content.document = &driving.DocumentResult{
		Root: domain.Record{ID: "root-id", Author: "alice", CreatedAt: testCreated},
	}

	out, err := executeCommand("get", "--json", "root-id")

	require.NoError(t, err)
	assert.Contains(t, out, `"root-id"`)
	assert.Contains(t, out, `"alice"`)
}

func TestGetCmd_RejectsMalformedCoordinate(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("get", "999:")

	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestGetCmd_PropagatesServiceError(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	mocks.content.err = domain.ErrNotFound

	_, err := executeCommand("get", "missing-id")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get document")
}

func TestGetCmd_SourceFlagOverridesSources(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	defer func() { sourcesFlag = nil }()

	mocks.content.document = &driving.DocumentResult{
		Root: domain.Record{ID: "root-id", CreatedAt: testCreated},
	}

	_, err := executeCommand("get", "--source", "https://store.example", "root-id")

	require.NoError(t, err)
	require.Len(t, mocks.content.lastOpts.Sources, 1)
	assert.Equal(t, "https://store.example", mocks.content.lastOpts.Sources[0].Address)
}
