package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	archive, err := NewArchive(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func testRecord(id, author string, kind int, createdAt time.Time, tags [][]string) domain.Record {
	return domain.Record{
		ID:        id,
		Author:    author,
		Kind:      kind,
		CreatedAt: createdAt,
		Tags:      tags,
		Content:   "content of " + id,
	}
}

// TestArchive_StoreAndQuery tests the round trip through the records table
func TestArchive_StoreAndQuery(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()
	epoch := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rec := testRecord("rec-1", "alice", domain.KindArticle, epoch,
		[][]string{{"d", "post"}, {"title", "Post"}})
	require.NoError(t, archive.Store(ctx, []domain.Record{rec}))

	records, err := archive.Query(ctx,
		[]domain.Filter{{Kinds: []int{domain.KindArticle}}}, time.Second)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

// TestArchive_StoreIdempotent tests that re-archiving an ID is a no-op
func TestArchive_StoreIdempotent(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()
	epoch := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rec := testRecord("rec-1", "alice", domain.KindArticle, epoch, nil)
	require.NoError(t, archive.Store(ctx, []domain.Record{rec}))
	require.NoError(t, archive.Store(ctx, []domain.Record{rec}))

	count, err := archive.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestArchive_QueryFilters tests the indexed narrowing clauses
func TestArchive_QueryFilters(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()
	epoch := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, archive.Store(ctx, []domain.Record{
		testRecord("a1", "alice", domain.KindArticle, epoch, [][]string{{"d", "one"}}),
		testRecord("a2", "alice", domain.KindArticle, epoch.Add(time.Hour), [][]string{{"d", "two"}}),
		testRecord("b1", "bob", domain.KindArticle, epoch, [][]string{{"d", "three"}}),
		testRecord("h1", "alice", domain.KindHighlight, epoch, nil),
	}))

	tests := []struct {
		name    string
		filter  domain.Filter
		wantIDs []string
	}{
		{
			name:    "by author",
			filter:  domain.Filter{Authors: []string{"bob"}},
			wantIDs: []string{"b1"},
		},
		{
			name:    "by kind newest first",
			filter:  domain.Filter{Kinds: []int{domain.KindArticle}, Authors: []string{"alice"}},
			wantIDs: []string{"a2", "a1"},
		},
		{
			name:    "by identifier",
			filter:  domain.Filter{Identifiers: []string{"two"}},
			wantIDs: []string{"a2"},
		},
		{
			name:    "by id",
			filter:  domain.Filter{IDs: []string{"h1"}},
			wantIDs: []string{"h1"},
		},
		{
			name:    "since",
			filter:  domain.Filter{Since: epoch.Add(time.Minute)},
			wantIDs: []string{"a2"},
		},
		{
			name:    "limit",
			filter:  domain.Filter{Kinds: []int{domain.KindArticle}, Limit: 1},
			wantIDs: []string{"a2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := archive.Query(ctx, []domain.Filter{tt.filter}, time.Second)
			require.NoError(t, err)

			gotIDs := make([]string, 0, len(records))
			for _, rec := range records {
				gotIDs = append(gotIDs, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

// TestArchive_QueryTagFilter tests the post-scan tag constraint
func TestArchive_QueryTagFilter(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()
	epoch := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	coord := "30023:alice:post"
	require.NoError(t, archive.Store(ctx, []domain.Record{
		testRecord("c1", "bob", domain.KindComment, epoch, [][]string{{"a", coord}}),
		testRecord("c2", "carol", domain.KindComment, epoch, [][]string{{"a", "30023:alice:other"}}),
	}))

	records, err := archive.Query(ctx, []domain.Filter{{
		Kinds: []int{domain.KindComment},
		Tags:  map[string][]string{"a": {coord}},
	}}, time.Second)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "c1", records[0].ID)
}

// TestArchive_QueryMultipleFiltersDeduplicates tests the OR merge
func TestArchive_QueryMultipleFiltersDeduplicates(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()
	epoch := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, archive.Store(ctx, []domain.Record{
		testRecord("a1", "alice", domain.KindArticle, epoch, nil),
	}))

	records, err := archive.Query(ctx, []domain.Filter{
		{IDs: []string{"a1"}},
		{Authors: []string{"alice"}},
	}, time.Second)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// TestArchive_Reopen tests that data survives reopening the database
func TestArchive_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.db")
	ctx := context.Background()
	epoch := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	archive, err := NewArchive(path)
	require.NoError(t, err)
	require.NoError(t, archive.Store(ctx, []domain.Record{
		testRecord("a1", "alice", domain.KindArticle, epoch, nil),
	}))
	require.NoError(t, archive.Close())

	reopened, err := NewArchive(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestArchive_Address tests the provenance address form
func TestArchive_Address(t *testing.T) {
	archive := newTestArchive(t)
	assert.Equal(t, AddressPrefix+archive.Path(), archive.Address())
}
