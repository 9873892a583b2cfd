package mcp

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// mockContentService is a mock implementation of driving.ContentService.
type mockContentService struct {
	document *driving.DocumentResult
	threads  []*domain.ThreadNode
	records  []domain.Record
	err      error

	lastRef   domain.Reference
	lastCoord domain.Coordinate
	lastOpts  driving.QueryOptions
}

func (m *mockContentService) GetDocument(
	_ context.Context, ref domain.Reference, opts driving.QueryOptions,
) (*driving.DocumentResult, error) {
	m.lastRef = ref
	m.lastOpts = opts
	return m.document, m.err
}

func (m *mockContentService) GetComments(
	_ context.Context, coord domain.Coordinate, opts driving.QueryOptions,
) ([]*domain.ThreadNode, error) {
	m.lastCoord = coord
	m.lastOpts = opts
	return m.threads, m.err
}

func (m *mockContentService) ListArticles(
	_ context.Context, opts driving.QueryOptions,
) ([]domain.Record, error) {
	m.lastOpts = opts
	return m.records, m.err
}

func (m *mockContentService) ListPublications(
	_ context.Context, opts driving.QueryOptions,
) ([]domain.Record, error) {
	m.lastOpts = opts
	return m.records, m.err
}

func (m *mockContentService) ListHighlights(
	_ context.Context, opts driving.QueryOptions,
) ([]domain.Record, error) {
	m.lastOpts = opts
	return m.records, m.err
}

// mockWarmer is a mock implementation of driving.Warmer.
type mockWarmer struct {
	outcomes []driving.RegionOutcome
	statuses []driving.RegionStatus
}

func (m *mockWarmer) Start(_ context.Context) error { return nil }

func (m *mockWarmer) Stop() error { return nil }

func (m *mockWarmer) WarmAll(_ context.Context) []driving.RegionOutcome {
	return m.outcomes
}

func (m *mockWarmer) Status() []driving.RegionStatus {
	return m.statuses
}

// mockCacheAdmin is a mock implementation of driving.CacheAdmin.
type mockCacheAdmin struct {
	stats   []driving.CacheRegionStats
	cleared bool
}

func (m *mockCacheAdmin) Stats() []driving.CacheRegionStats {
	return m.stats
}

func (m *mockCacheAdmin) ClearAll() {
	m.cleared = true
}
