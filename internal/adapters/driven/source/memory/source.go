// Package memory provides an in-memory source querier. It backs tests
// and local composition roots where a real network source is unwanted.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.SourceQuerier = (*Source)(nil)

// Source is an in-memory implementation of driven.SourceQuerier.
// Records are matched with domain.Filter.Matches. Failure and latency
// can be injected to exercise partial-failure paths.
type Source struct {
	mu      sync.RWMutex
	address string
	records []domain.Record
	err     error
	delay   time.Duration
	closed  bool

	// queries counts Query calls, for asserting cache behaviour.
	queries int
}

// New creates an empty in-memory source with the given address.
func New(address string) *Source {
	return &Source{address: address}
}

// Address returns the source address.
func (s *Source) Address() string { return s.address }

// Publish adds records to the source.
func (s *Source) Publish(records ...domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Fail makes every subsequent query return err. Pass nil to heal.
func (s *Source) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SetDelay injects latency before each query answers.
func (s *Source) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// QueryCount returns how many queries this source has served or failed.
func (s *Source) QueryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queries
}

// Query returns records matching any filter, newest first, honouring
// each filter's limit.
func (s *Source) Query(ctx context.Context, filters []domain.Filter, _ time.Duration) ([]domain.Record, error) {
	s.mu.Lock()
	s.queries++
	err := s.err
	delay := s.delay
	closed := s.closed
	records := make([]domain.Record, len(s.records))
	copy(records, s.records)
	s.mu.Unlock()

	if closed {
		return nil, domain.ErrSourceClosed
	}
	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	seen := make(map[string]bool)
	var out []domain.Record
	for _, filter := range filters {
		matched := 0
		for i := range records {
			if filter.Limit > 0 && matched >= filter.Limit {
				break
			}
			if !filter.Matches(&records[i]) {
				continue
			}
			matched++
			if seen[records[i].ID] {
				continue
			}
			seen[records[i].ID] = true
			out = append(out, records[i])
		}
	}
	return out, nil
}

// Close marks the source closed.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Ensure Factory implements the interface.
var _ driven.SourceFactory = (*Factory)(nil)

// Factory hands out pre-registered in-memory sources by address.
type Factory struct {
	mu      sync.RWMutex
	sources map[string]*Source
}

// NewFactory creates a factory over the given sources.
func NewFactory(sources ...*Source) *Factory {
	f := &Factory{sources: make(map[string]*Source)}
	for _, s := range sources {
		f.sources[s.Address()] = s
	}
	return f
}

// Add registers another source.
func (f *Factory) Add(s *Source) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[s.Address()] = s
}

// Create returns the registered source for the address. Unknown
// addresses yield a fresh empty source, mirroring how a real factory
// would dial anything it is asked for.
func (f *Factory) Create(_ context.Context, source domain.Source) (driven.SourceQuerier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sources[source.Address]; ok {
		return s, nil
	}
	s := New(source.Address)
	f.sources[source.Address] = s
	return s, nil
}
