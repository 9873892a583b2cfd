package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Fixed timestamp used across command tests.
var testCreated = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// mockContentService is a mock implementation of driving.ContentService.
type mockContentService struct {
	document *driving.DocumentResult
	threads  []*domain.ThreadNode
	records  []domain.Record
	err      error

	lastRef  domain.Reference
	lastOpts driving.QueryOptions
}

func (m *mockContentService) GetDocument(
	_ context.Context, ref domain.Reference, opts driving.QueryOptions,
) (*driving.DocumentResult, error) {
	m.lastRef = ref
	m.lastOpts = opts
	return m.document, m.err
}

func (m *mockContentService) GetComments(
	_ context.Context, _ domain.Coordinate, opts driving.QueryOptions,
) ([]*domain.ThreadNode, error) {
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
	started  bool
	stopped  bool
}

func (m *mockWarmer) Start(_ context.Context) error {
	m.started = true
	return nil
}

func (m *mockWarmer) Stop() error {
	m.stopped = true
	return nil
}

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

// mockConfigStore is a mock implementation of driven.ConfigStore.
type mockConfigStore struct {
	cfg     domain.Config
	loadErr error
	saveErr error
	saved   *domain.Config
}

func (m *mockConfigStore) Load() (domain.Config, error) {
	return m.cfg, m.loadErr
}

func (m *mockConfigStore) Save(cfg domain.Config) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cfg = cfg
	m.saved = &cfg
	return nil
}

func (m *mockConfigStore) Watch(_ context.Context) (<-chan struct{}, error) {
	return make(chan struct{}), nil
}

func (m *mockConfigStore) Path() string {
	return "/tmp/folio/config.toml"
}

// testMocks bundles the mocks installed by setupTestServices.
type testMocks struct {
	content *mockContentService
	warmer  *mockWarmer
	cache   *mockCacheAdmin
	config  *mockConfigStore
}

// setupTestServices swaps the injected services for mocks and returns
// them with a cleanup that restores the previous wiring.
func setupTestServices() (*testMocks, func()) {
	prev := Services{
		Content: contentService,
		Warmer:  warmerService,
		Cache:   cacheAdmin,
		Config:  configStore,
	}

	mocks := &testMocks{
		content: &mockContentService{},
		warmer:  &mockWarmer{},
		cache:   &mockCacheAdmin{},
		config:  &mockConfigStore{cfg: domain.DefaultConfig()},
	}
	SetServices(Services{
		Content: mocks.content,
		Warmer:  mocks.warmer,
		Cache:   mocks.cache,
		Config:  mocks.config,
	})

	return mocks, func() { SetServices(prev) }
}

// executeCommand runs the root command with the given arguments and
// returns the combined output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
