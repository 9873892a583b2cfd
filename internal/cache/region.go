// Package cache implements the bounded, TTL-checked in-memory cache
// regions backing Folio's read paths. Eviction is FIFO by insertion
// order, deliberately not LRU: callers (the warmer's freshness check in
// particular) rely on the simpler semantics.
package cache

import (
	"encoding/json"
	"sync"
	"time"
)

// entry is a full cache entry. Entries are never mutated in place: a
// refresh replaces the whole entry.
type entry[V any] struct {
	value    V
	storedAt time.Time
	bytes    int
}

// Region is one named cache region mapping string keys to values of one
// type. A Region is safe for concurrent use.
type Region[V any] struct {
	mu      sync.RWMutex
	name    string
	ttl     time.Duration
	cap     int
	entries map[string]entry[V]
	order   []string // insertion order, oldest first

	// now is swapped out in tests to pin the clock.
	now func() time.Time
}

// NewRegion creates a region with the given TTL and entry cap.
// A cap of zero or less means unbounded.
func NewRegion[V any](name string, ttl time.Duration, cap int) *Region[V] {
	return &Region[V]{
		name:    name,
		ttl:     ttl,
		cap:     cap,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Name returns the region name.
func (r *Region[V]) Name() string { return r.name }

// Get returns the cached value for key if present and no older than the
// region TTL. A stale entry is not deleted here: it stays until
// overwritten or evicted, so GetStale can still serve it as a degraded
// source of truth.
func (r *Region[V]) Get(key string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok || r.now().Sub(e.storedAt) > r.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetStale returns the cached value for key regardless of age, together
// with its stored-at time. Used as a fallback when no source is reachable.
func (r *Region[V]) GetStale(key string) (V, time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok {
		var zero V
		return zero, time.Time{}, false
	}
	return e.value, e.storedAt, true
}

// Fresh reports whether key is present and within TTL, without reading
// the value. Used by the warmer to skip redundant network work.
func (r *Region[V]) Fresh(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	return ok && r.now().Sub(e.storedAt) <= r.ttl
}

// Set stores a value under key, replacing any previous entry and
// restamping it. Overwriting counts as re-insertion for eviction order.
// When the entry count exceeds the cap, the oldest-inserted entry is
// removed, regardless of how recently it was read.
func (r *Region[V]) Set(key string, value V) {
	size := 0
	if encoded, err := json.Marshal(value); err == nil {
		size = len(encoded)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		r.removeFromOrder(key)
	}
	r.entries[key] = entry[V]{value: value, storedAt: r.now(), bytes: size}
	r.order = append(r.order, key)

	for r.cap > 0 && len(r.entries) > r.cap {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.entries, oldest)
	}
}

// Len returns the number of entries, stale ones included.
func (r *Region[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes every entry.
func (r *Region[V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]entry[V])
	r.order = nil
}

// ByteEstimate returns the rough total size of cached values, based on
// their JSON encoding at insertion time.
func (r *Region[V]) ByteEstimate() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, e := range r.entries {
		total += e.bytes
	}
	return total
}

// removeFromOrder drops one occurrence of key from the insertion order.
// Caller holds the write lock.
func (r *Region[V]) removeFromOrder(key string) {
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
