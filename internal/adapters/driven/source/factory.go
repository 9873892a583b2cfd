// Package source routes querier creation across source kinds. Remote
// addresses get HTTP queriers; the archive address resolves to the
// local archive, letting the fan-out consult it like any other source.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/archive/sqlite"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/source/httpsource"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure RoutingFactory implements the interface.
var _ driven.SourceFactory = (*RoutingFactory)(nil)

// RoutingFactory dispatches on the address scheme.
type RoutingFactory struct {
	http    *httpsource.Factory
	archive driven.RecordArchive
}

// NewRoutingFactory creates a factory. The archive may be nil, in which
// case archive addresses fail to resolve.
func NewRoutingFactory(archive driven.RecordArchive) *RoutingFactory {
	return &RoutingFactory{
		http:    httpsource.NewFactory(),
		archive: archive,
	}
}

// Create returns a querier for the source.
func (f *RoutingFactory) Create(ctx context.Context, src domain.Source) (driven.SourceQuerier, error) {
	if strings.HasPrefix(src.Address, sqlite.AddressPrefix) {
		if f.archive == nil {
			return nil, fmt.Errorf("%w: no archive configured for %s", domain.ErrInvalidInput, src.Address)
		}
		return nonClosing{f.archive}, nil
	}
	return f.http.Create(ctx, src)
}

// nonClosing shields the shared archive from the engine's querier
// shutdown; the archive's lifecycle belongs to the composition root.
type nonClosing struct {
	driven.SourceQuerier
}

func (nonClosing) Close() error { return nil }
