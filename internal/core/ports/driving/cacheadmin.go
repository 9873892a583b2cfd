package driving

// CacheRegionStats describes one cache region for diagnostics.
type CacheRegionStats struct {
	// Region is the region name.
	Region string

	// Entries is the current entry count, stale entries included.
	Entries int

	// Bytes is a rough estimate of the cached value sizes.
	Bytes int
}

// CacheAdmin exposes operator-facing cache controls.
type CacheAdmin interface {
	// Stats returns per-region entry counts and byte estimates.
	Stats() []CacheRegionStats

	// ClearAll empties every cache region.
	ClearAll()
}
