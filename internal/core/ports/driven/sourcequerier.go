package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// SourceQuerier is the source query primitive: it runs a filter set
// against one source and returns matching records. Implementations own
// the wire protocol; core only sees this contract.
type SourceQuerier interface {
	// Address returns the source address this querier talks to.
	// Used as the provenance key.
	Address() string

	// Query returns records matching any of the filters. The call must
	// respect ctx and return within the given timeout. Implementations
	// return whatever they found before an error; core treats a failed
	// source as contributing nothing.
	Query(ctx context.Context, filters []domain.Filter, timeout time.Duration) ([]domain.Record, error)

	// Close releases resources.
	Close() error
}

// SourceFactory creates queriers from source configuration.
// Factories may pool queriers per address.
type SourceFactory interface {
	// Create returns a querier for the source.
	Create(ctx context.Context, source domain.Source) (SourceQuerier, error)
}

// RecordArchive is a local, durable store of previously fetched records.
// It doubles as a SourceQuerier so the archive can be consulted like any
// other source. Optional: core tolerates a nil archive.
type RecordArchive interface {
	SourceQuerier

	// Store persists records. Existing IDs are kept as-is; records are
	// immutable so a rewrite would be a no-op.
	Store(ctx context.Context, records []domain.Record) error
}
