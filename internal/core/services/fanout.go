package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// FanOutEngine issues one logical query against many sources concurrently
// and merges the results into a deduplicated record set with provenance.
type FanOutEngine struct {
	factory driven.SourceFactory
	timeout time.Duration

	// Queriers are pooled per address for the life of the engine.
	mu       sync.Mutex
	queriers map[string]driven.SourceQuerier
}

// NewFanOutEngine creates an engine. timeout bounds each individual
// source call; it is not a bound on the query as a whole.
func NewFanOutEngine(factory driven.SourceFactory, timeout time.Duration) *FanOutEngine {
	return &FanOutEngine{
		factory:  factory,
		timeout:  timeout,
		queriers: make(map[string]driven.SourceQuerier),
	}
}

// sourceResult is what one source contributed to a fan-out round.
type sourceResult struct {
	address string
	records []domain.Record
	err     error
}

// Query runs the filters against every source concurrently and merges the
// results. Records are deduplicated by ID; for replaceable kinds, records
// sharing a coordinate collapse to the one with the greatest creation
// timestamp (ties broken by lexicographically greater ID, keeping the rule
// total and deterministic regardless of arrival order).
//
// A source that errors or times out contributes nothing and is excluded
// from provenance; partial results are always usable. Only when every
// source fails does Query return domain.ErrNoSourceReachable.
func (e *FanOutEngine) Query(
	ctx context.Context, filters []domain.Filter, sources []domain.Source,
) ([]domain.Record, domain.Provenance, error) {
	if len(sources) == 0 {
		return nil, nil, fmt.Errorf("%w: no sources configured", domain.ErrNoSourceReachable)
	}

	trace := uuid.NewString()[:8]
	logger.Debug("[%s] fan-out to %d sources, %d filters", trace, len(sources), len(filters))

	results := make(chan sourceResult, len(sources))
	var wg sync.WaitGroup
	for _, source := range sources {
		wg.Add(1)
		go func(source domain.Source) {
			defer wg.Done()
			records, err := e.querySource(ctx, source, filters)
			results <- sourceResult{address: source.Address, records: records, err: err}
		}(source)
	}
	wg.Wait()
	close(results)

	byID := make(map[string]domain.Record)
	byCoordinate := make(map[string]domain.Record)
	perSource := make(domain.Provenance)
	var failures []error
	failed := 0

	for res := range results {
		if res.err != nil {
			failed++
			failures = append(failures, fmt.Errorf("%s: %w", res.address, res.err))
			logger.Warn("[%s] source %s failed: %v", trace, res.address, res.err)
			continue
		}
		for _, rec := range res.records {
			perSource.Add(rec.ID, res.address)
			if _, seen := byID[rec.ID]; seen {
				continue
			}
			byID[rec.ID] = rec

			if !rec.IsReplaceable() {
				continue
			}
			key := rec.Coordinate().String()
			current, ok := byCoordinate[key]
			if !ok || newerRecord(rec, current) {
				byCoordinate[key] = rec
			}
		}
	}

	if failed == len(sources) {
		err := fmt.Errorf("%w: %w", domain.ErrNoSourceReachable, errors.Join(failures...))
		return nil, nil, err
	}

	merged := make([]domain.Record, 0, len(byID))
	for _, rec := range byID {
		if rec.IsReplaceable() {
			// Only the coordinate winner survives the merge.
			if winner := byCoordinate[rec.Coordinate().String()]; winner.ID != rec.ID {
				continue
			}
		}
		merged = append(merged, rec)
	}

	// Newest first, ties by ID: the merged result is deterministic no
	// matter in which order sources answered.
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID < merged[j].ID
	})

	provenance := make(domain.Provenance)
	for _, rec := range merged {
		for _, addr := range perSource.Sources(rec.ID) {
			provenance.Add(rec.ID, addr)
		}
	}

	logger.Debug("[%s] merged %d records (%d sources failed)", trace, len(merged), failed)
	return merged, provenance, nil
}

// QueryOne runs the filters and returns the single best record: the
// first of the merged result. Returns domain.ErrNotFound when the query
// succeeded but matched nothing.
func (e *FanOutEngine) QueryOne(
	ctx context.Context, filter domain.Filter, sources []domain.Source,
) (*domain.Record, error) {
	records, _, err := e.Query(ctx, []domain.Filter{filter}, sources)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	return &records[0], nil
}

// querySource queries one source with its own deadline. A slow source is
// not aborted early on behalf of its siblings; it simply contributes
// nothing once its own deadline passes.
func (e *FanOutEngine) querySource(
	ctx context.Context, source domain.Source, filters []domain.Filter,
) ([]domain.Record, error) {
	querier, err := e.querier(ctx, source)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	return querier.Query(callCtx, filters, e.timeout)
}

// querier returns the pooled querier for a source, creating it on first use.
func (e *FanOutEngine) querier(ctx context.Context, source domain.Source) (driven.SourceQuerier, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if q, ok := e.queriers[source.Address]; ok {
		return q, nil
	}
	q, err := e.factory.Create(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("create querier: %w", err)
	}
	e.queriers[source.Address] = q
	return q, nil
}

// Close closes every pooled querier.
func (e *FanOutEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	for addr, q := range e.queriers {
		if err := q.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", addr, err))
		}
	}
	e.queriers = make(map[string]driven.SourceQuerier)
	return errors.Join(errs...)
}

// newerRecord reports whether a should replace b under last-write-wins.
func newerRecord(a, b domain.Record) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
