package driving

import (
	"context"
	"time"
)

// RegionOutcome is the per-region result of one warm pass.
type RegionOutcome struct {
	// Region names the warmed cache region.
	Region string

	// RunID identifies the warm run for log correlation.
	RunID string

	// Skipped is true when the region was not touched (cooldown, fresh
	// cache, or another pass in progress).
	Skipped bool

	// Reason explains a skip.
	Reason string

	// Warmed counts the cache entries populated.
	Warmed int

	// Err holds the recorded failure, empty on success. Failures are
	// swallowed, never propagated to other regions or the caller.
	Err string
}

// RegionStatus is the diagnostic view of one warmable region.
type RegionStatus struct {
	// Region names the warmable region.
	Region string

	// InProgress is true while a warm pass runs.
	InProgress bool

	// LastWarmedAt is when the region last completed a warm.
	LastWarmedAt time.Time

	// LastError is the last recorded failure, empty if none.
	LastError string
}

// Warmer proactively populates cache regions ahead of user demand.
type Warmer interface {
	// Start runs the periodic warming loop until ctx is cancelled or
	// Stop is called. Blocks; long-running callers run it in a
	// goroutine. Returns immediately when warming is disabled.
	Start(ctx context.Context) error

	// Stop ends a running Start loop.
	Stop() error

	// WarmAll runs one warm pass over every region, respecting
	// per-region cooldowns and in-progress flags. Never returns an
	// error: per-region failures are recorded in the outcomes.
	WarmAll(ctx context.Context) []RegionOutcome

	// Status returns the current per-region warming state.
	Status() []RegionStatus
}
