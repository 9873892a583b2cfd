package services

import (
	"github.com/custodia-labs/folio-cli/internal/cache"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure CacheAdminService implements the interface.
var _ driving.CacheAdmin = (*CacheAdminService)(nil)

// CacheAdminService exposes the cache manager through the driving port.
type CacheAdminService struct {
	caches *cache.Manager
}

// NewCacheAdminService creates the cache admin service.
func NewCacheAdminService(caches *cache.Manager) *CacheAdminService {
	return &CacheAdminService{caches: caches}
}

// Stats returns per-region entry counts and byte estimates.
func (s *CacheAdminService) Stats() []driving.CacheRegionStats {
	raw := s.caches.Stats()
	stats := make([]driving.CacheRegionStats, 0, len(raw))
	for _, r := range raw {
		stats = append(stats, driving.CacheRegionStats{
			Region:  r.Name,
			Entries: r.Entries,
			Bytes:   r.Bytes,
		})
	}
	return stats
}

// ClearAll empties every cache region.
func (s *CacheAdminService) ClearAll() {
	s.caches.ClearAll()
	logger.Info("all cache regions cleared")
}
