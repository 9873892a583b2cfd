// Package httpsource implements the source querier port over a JSON
// HTTP endpoint. Each source gets its own client and proactive rate
// limiter, so one slow or throttled source never starves the others.
package httpsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ProactiveRate is the proactive per-source throttle (requests/sec).
	ProactiveRate = 4.0

	// ProactiveBurst is the token bucket burst size.
	ProactiveBurst = 2

	// queryPath is the query endpoint relative to the source address.
	queryPath = "/query"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 16 << 20
)

// Ensure Source implements the interface.
var _ driven.SourceQuerier = (*Source)(nil)

// Source queries one HTTP event store. Safe for concurrent use.
type Source struct {
	address string
	client  *http.Client
	bucket  *rate.Limiter

	mu     sync.Mutex
	closed bool
}

// New creates a querier for the given source address.
func New(address string) *Source {
	return &Source{
		address: address,
		client:  &http.Client{Timeout: DefaultTimeout},
		bucket:  rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
}

// Address returns the source address.
func (s *Source) Address() string { return s.address }

// Query POSTs the filters to the source's query endpoint and decodes the
// matching records. The timeout bounds the whole request on top of any
// deadline already on ctx.
func (s *Source) Query(ctx context.Context, filters []domain.Filter, timeout time.Duration) ([]domain.Record, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, domain.ErrSourceClosed
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := s.bucket.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(queryRequest{Filters: filtersToWire(filters)})
	if err != nil {
		return nil, fmt.Errorf("encode filters: %w", err)
	}

	url := strings.TrimRight(s.address, "/") + queryPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("query %s: status %d: %s",
			s.address, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var wire []wireRecord
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := decoder.Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", s.address, err)
	}

	records := make([]domain.Record, 0, len(wire))
	for _, w := range wire {
		records = append(records, w.toDomain())
	}
	return records, nil
}

// Close marks the source closed and drops idle connections.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.client.CloseIdleConnections()
	return nil
}

// Ensure Factory implements the interface.
var _ driven.SourceFactory = (*Factory)(nil)

// Factory creates HTTP queriers.
type Factory struct{}

// NewFactory creates an HTTP source factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns a querier for the source.
func (f *Factory) Create(_ context.Context, source domain.Source) (driven.SourceQuerier, error) {
	if source.Address == "" {
		return nil, fmt.Errorf("%w: empty source address", domain.ErrInvalidInput)
	}
	return New(source.Address), nil
}
