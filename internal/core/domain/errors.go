package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoSourceReachable indicates every source for a query failed or
	// timed out. Retryable: partial failures never produce this error.
	ErrNoSourceReachable = errors.New("no source reachable")

	// ErrNotFound indicates a query succeeded but nothing matched.
	// Surfaced distinctly from ErrNoSourceReachable so callers can fall
	// back to stale cached data before giving up.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCoordinate indicates a malformed coordinate string.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidReference indicates a reference tag that cannot be decoded.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWarmInProgress indicates a warm pass is already running for a region.
	ErrWarmInProgress = errors.New("warm already in progress")

	// ErrSourceClosed indicates the source querier has been closed.
	ErrSourceClosed = errors.New("source closed")
)
