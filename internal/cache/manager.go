package cache

import "sync"

// RegionStats describes one region for diagnostics.
type RegionStats struct {
	// Name is the region name.
	Name string

	// Entries is the current entry count, stale entries included.
	Entries int

	// Bytes is a rough estimate of cached value size.
	Bytes int
}

// region is the type-erased view of a Region the manager needs.
type region interface {
	Name() string
	Len() int
	Clear()
	ByteEstimate() int
}

// Manager tracks every named region for the process-wide clear-all and
// stats operations.
type Manager struct {
	mu      sync.RWMutex
	regions []region
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a region to the manager. Regions register once at
// construction; registration order is reporting order.
func (m *Manager) Register(r region) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regions = append(m.regions, r)
}

// ClearAll empties every registered region. Operator-triggered invalidation.
func (m *Manager) ClearAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.regions {
		r.Clear()
	}
}

// Stats returns per-region entry counts and byte estimates.
func (m *Manager) Stats() []RegionStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := make([]RegionStats, 0, len(m.regions))
	for _, r := range m.regions {
		stats = append(stats, RegionStats{
			Name:    r.Name(),
			Entries: r.Len(),
			Bytes:   r.ByteEstimate(),
		})
	}
	return stats
}
