package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// QueryOptions tunes one content call.
type QueryOptions struct {
	// Sources overrides the configured default source set when non-empty.
	Sources []domain.Source

	// Limit caps list results. Zero means the service default.
	Limit int
}

// DocumentResult is a fully resolved document.
type DocumentResult struct {
	// Root is the record the document was resolved from.
	Root domain.Record

	// Tree is the assembled hierarchy below the root, in declared order.
	Tree []*domain.DocumentNode

	// Content is the flattened pre-order sequence of leaf records,
	// each exactly once, suitable for rendering as one document.
	Content []domain.Record

	// Stale is true when the result was served from an expired cache
	// entry because no source was reachable.
	Stale bool

	// FetchedAt is when the underlying data was fetched from sources.
	FetchedAt time.Time
}

// ContentService provides aggregated content to external actors. All
// reads are cache-first; misses fan out to the configured sources.
type ContentService interface {
	// GetDocument resolves a root reference into a document. Returns
	// domain.ErrNotFound when the root does not exist on any reachable
	// source, and domain.ErrNoSourceReachable when every source failed
	// and no stale copy exists.
	GetDocument(ctx context.Context, ref domain.Reference, opts QueryOptions) (*DocumentResult, error)

	// GetComments returns the threaded comment forest for a document
	// coordinate.
	GetComments(ctx context.Context, coord domain.Coordinate, opts QueryOptions) ([]*domain.ThreadNode, error)

	// ListArticles returns the most recent long-form articles.
	ListArticles(ctx context.Context, opts QueryOptions) ([]domain.Record, error)

	// ListPublications returns the most recent publication indexes.
	ListPublications(ctx context.Context, opts QueryOptions) ([]domain.Record, error)

	// ListHighlights returns the most recent highlights.
	ListHighlights(ctx context.Context, opts QueryOptions) ([]domain.Record, error)
}
