package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

func newTestServer(t *testing.T, content *mockContentService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Content: content})
	require.NoError(t, err)
	return server
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("returns assembled document", func(t *testing.T) {
		root := domain.Record{
			ID:        "root-id",
			Author:    "alice",
			Kind:      domain.KindPublicationIndex,
			CreatedAt: created,
			Tags:      [][]string{{"d", "guide"}, {"title", "Field Guide"}},
		}
		section := domain.Record{
			ID:        "sec-id",
			Author:    "alice",
			Kind:      domain.KindPublicationContent,
			CreatedAt: created,
			Tags:      [][]string{{"d", "guide-1"}},
			Content:   "first section",
		}
		mock := &mockContentService{
			document: &driving.DocumentResult{
				Root:    root,
				Content: []domain.Record{section},
			},
		}
		server := newTestServer(t, mock)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{
			Reference: "30040:alice:guide",
		})

		require.NoError(t, err)
		assert.Equal(t, "Field Guide", output.Title)
		assert.Equal(t, "alice", output.Author)
		assert.Equal(t, domain.KindPublicationIndex, output.Kind)
		assert.False(t, output.Stale)
		require.Len(t, output.Sections, 1)
		assert.Equal(t, "sec-id", output.Sections[0].ID)
		assert.Equal(t, "first section", output.Sections[0].Content)
		assert.Equal(t, "30041:alice:guide-1", output.Sections[0].Address)

		coordRef, ok := mock.lastRef.(domain.CoordinateReference)
		require.True(t, ok)
		assert.Equal(t, "30040:alice:guide", coordRef.Coordinate.String())
	})

	t.Run("plain argument becomes an ID reference", func(t *testing.T) {
		mock := &mockContentService{document: &driving.DocumentResult{}}
		server := newTestServer(t, mock)

		_, _, err := server.handleGetDocument(ctx, nil, GetDocumentInput{
			Reference: "abc123",
		})

		require.NoError(t, err)
		idRef, ok := mock.lastRef.(domain.IDReference)
		require.True(t, ok)
		assert.Equal(t, "abc123", idRef.ID)
	})

	t.Run("marks stale results", func(t *testing.T) {
		mock := &mockContentService{
			document: &driving.DocumentResult{
				Root:  domain.Record{ID: "r", Author: "alice", Kind: domain.KindArticle, CreatedAt: created},
				Stale: true,
			},
		}
		server := newTestServer(t, mock)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{Reference: "r"})

		require.NoError(t, err)
		assert.True(t, output.Stale)
	})

	t.Run("rejects an empty reference", func(t *testing.T) {
		server := newTestServer(t, &mockContentService{})

		_, _, err := server.handleGetDocument(ctx, nil, GetDocumentInput{Reference: "  "})

		assert.ErrorIs(t, err, domain.ErrInvalidReference)
	})

	t.Run("returns error on service failure", func(t *testing.T) {
		mock := &mockContentService{err: domain.ErrNoSourceReachable}
		server := newTestServer(t, mock)

		_, _, err := server.handleGetDocument(ctx, nil, GetDocumentInput{Reference: "abc123"})

		assert.ErrorIs(t, err, domain.ErrNoSourceReachable)
	})
}

func TestServer_handleGetComments(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("returns threaded comments", func(t *testing.T) {
		mock := &mockContentService{
			threads: []*domain.ThreadNode{
				{
					Record: domain.Record{ID: "c1", Author: "bob", CreatedAt: created, Content: "top"},
					Replies: []*domain.ThreadNode{
						{Record: domain.Record{ID: "c2", Author: "carol", CreatedAt: created, Content: "reply"}},
					},
				},
			},
		}
		server := newTestServer(t, mock)

		_, output, err := server.handleGetComments(ctx, nil, GetCommentsInput{
			Coordinate: "30023:alice:post",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Threads, 1)
		assert.Equal(t, "c1", output.Threads[0].ID)
		require.Len(t, output.Threads[0].Replies, 1)
		assert.Equal(t, "c2", output.Threads[0].Replies[0].ID)
		assert.Equal(t, "30023:alice:post", mock.lastCoord.String())
	})

	t.Run("returns empty forest", func(t *testing.T) {
		server := newTestServer(t, &mockContentService{})

		_, output, err := server.handleGetComments(ctx, nil, GetCommentsInput{
			Coordinate: "30023:alice:post",
		})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Empty(t, output.Threads)
	})

	t.Run("rejects a malformed coordinate", func(t *testing.T) {
		server := newTestServer(t, &mockContentService{})

		_, _, err := server.handleGetComments(ctx, nil, GetCommentsInput{Coordinate: "not-a-coordinate"})

		assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
	})

	t.Run("returns error on service failure", func(t *testing.T) {
		mock := &mockContentService{err: errors.New("sources offline")}
		server := newTestServer(t, mock)

		_, _, err := server.handleGetComments(ctx, nil, GetCommentsInput{Coordinate: "30023:alice:post"})

		assert.ErrorContains(t, err, "sources offline")
	})
}

func TestServer_handleListContent(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	records := []domain.Record{
		{
			ID:        "a1",
			Author:    "alice",
			Kind:      domain.KindArticle,
			CreatedAt: created,
			Tags:      [][]string{{"d", "post"}, {"title", "A Post"}},
		},
	}

	t.Run("lists articles", func(t *testing.T) {
		mock := &mockContentService{records: records}
		server := newTestServer(t, mock)

		_, output, err := server.handleListContent(ctx, nil, ListContentInput{Type: "articles", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Records, 1)
		assert.Equal(t, "a1", output.Records[0].ID)
		assert.Equal(t, "A Post", output.Records[0].Title)
		assert.Equal(t, "30023:alice:post", output.Records[0].Address)
		assert.Empty(t, output.Records[0].Content)
		assert.Equal(t, 5, mock.lastOpts.Limit)
	})

	t.Run("content type is case insensitive", func(t *testing.T) {
		mock := &mockContentService{records: records}
		server := newTestServer(t, mock)

		_, output, err := server.handleListContent(ctx, nil, ListContentInput{Type: "Publications"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		mock := &mockContentService{}
		server := newTestServer(t, mock)

		_, _, err := server.handleListContent(ctx, nil, ListContentInput{Type: "highlights"})

		require.NoError(t, err)
		assert.Equal(t, 10, mock.lastOpts.Limit)
	})

	t.Run("rejects an unknown content type", func(t *testing.T) {
		server := newTestServer(t, &mockContentService{})

		_, _, err := server.handleListContent(ctx, nil, ListContentInput{Type: "podcasts"})

		assert.ErrorContains(t, err, `unknown content type "podcasts"`)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		mock := &mockContentService{err: errors.New("store unavailable")}
		server := newTestServer(t, mock)

		_, _, err := server.handleListContent(ctx, nil, ListContentInput{Type: "articles"})

		assert.ErrorContains(t, err, "store unavailable")
	})
}
