package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/folio-cli/internal/cache"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// defaultListLimit caps list queries when the caller does not.
const defaultListLimit = 50

// ContentService orchestrates the cache-first read paths: documents,
// comment threads and list views. Misses fan out to the configured
// sources; when every source is down, an expired cache entry is served
// as a degraded source of truth rather than failing outright.
type ContentService struct {
	engine    *FanOutEngine
	assembler *Assembler

	// archive is the optional local write-through archive. May be nil.
	archive driven.RecordArchive

	mu      sync.RWMutex
	sources []domain.Source

	documents *cache.Region[driving.DocumentResult]
	comments  *cache.Region[[]*domain.ThreadNode]
	lists     *cache.Region[[]domain.Record]
}

// NewContentService creates the service and registers its cache regions
// with the manager. The archive may be nil.
func NewContentService(
	engine *FanOutEngine,
	assembler *Assembler,
	archive driven.RecordArchive,
	sources []domain.Source,
	cfg domain.CacheConfig,
	caches *cache.Manager,
) *ContentService {
	s := &ContentService{
		engine:    engine,
		assembler: assembler,
		archive:   archive,
		sources:   sources,
		documents: cache.NewRegion[driving.DocumentResult]("documents", cfg.DocumentTTL, cfg.DocumentCap),
		comments:  cache.NewRegion[[]*domain.ThreadNode]("comments", cfg.CommentTTL, cfg.CommentCap),
		lists:     cache.NewRegion[[]domain.Record]("lists", cfg.ListTTL, cfg.ListCap),
	}
	caches.Register(s.lists)
	caches.Register(s.documents)
	caches.Register(s.comments)
	return s
}

// SetSources replaces the default source set. Used on config reload.
func (s *ContentService) SetSources(sources []domain.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = sources
}

// GetDocument resolves ref into a document: root record, assembled tree
// and flattened leaf content.
func (s *ContentService) GetDocument(
	ctx context.Context, ref domain.Reference, opts driving.QueryOptions,
) (*driving.DocumentResult, error) {
	key := ref.Key()
	if cached, ok := s.documents.Get(key); ok {
		logger.Debug("document cache hit: %s", key)
		return &cached, nil
	}

	sources := s.resolveSources(opts)
	root, err := s.assembler.Resolve(ctx, ref, sources)
	if err != nil {
		if errors.Is(err, domain.ErrNoSourceReachable) {
			if stale, storedAt, ok := s.documents.GetStale(key); ok {
				logger.Warn("no source reachable, serving stale document %s from %s", key, storedAt)
				stale.Stale = true
				return &stale, nil
			}
		}
		return nil, fmt.Errorf("resolve document %s: %w", key, err)
	}

	visited := map[string]bool{root.ID: true}
	tree, err := s.assembler.Assemble(ctx, root, visited, sources)
	if err != nil {
		return nil, fmt.Errorf("assemble document %s: %w", key, err)
	}

	result := driving.DocumentResult{
		Root:      *root,
		Tree:      tree,
		Content:   Flatten(tree),
		FetchedAt: time.Now(),
	}
	s.archiveDocument(ctx, root, tree)
	s.documents.Set(key, result)
	return &result, nil
}

// GetComments fetches and threads the comment pool for a document
// coordinate. An empty pool is a valid result, not an error.
func (s *ContentService) GetComments(
	ctx context.Context, coord domain.Coordinate, opts driving.QueryOptions,
) ([]*domain.ThreadNode, error) {
	key := "comments:" + coord.String()
	if cached, ok := s.comments.Get(key); ok {
		logger.Debug("comment cache hit: %s", key)
		return cached, nil
	}

	filter := domain.Filter{
		Kinds: []int{domain.KindComment},
		Tags:  map[string][]string{"a": {coord.String()}},
	}
	records, _, err := s.engine.Query(ctx, []domain.Filter{filter}, s.resolveSources(opts))
	if err != nil {
		if errors.Is(err, domain.ErrNoSourceReachable) {
			if stale, storedAt, ok := s.comments.GetStale(key); ok {
				logger.Warn("no source reachable, serving stale comments %s from %s", key, storedAt)
				return stale, nil
			}
		}
		return nil, fmt.Errorf("fetch comments %s: %w", coord, err)
	}

	threads := BuildThreads(records)
	s.archiveRecords(ctx, records)
	s.comments.Set(key, threads)
	return threads, nil
}

// ListArticles returns the most recent long-form articles.
func (s *ContentService) ListArticles(
	ctx context.Context, opts driving.QueryOptions,
) ([]domain.Record, error) {
	return s.list(ctx, "articles", domain.KindArticle, opts)
}

// ListPublications returns the most recent publication indexes.
func (s *ContentService) ListPublications(
	ctx context.Context, opts driving.QueryOptions,
) ([]domain.Record, error) {
	return s.list(ctx, "publications", domain.KindPublicationIndex, opts)
}

// ListHighlights returns the most recent highlights.
func (s *ContentService) ListHighlights(
	ctx context.Context, opts driving.QueryOptions,
) ([]domain.Record, error) {
	return s.list(ctx, "highlights", domain.KindHighlight, opts)
}

// list is the shared list-view read path.
func (s *ContentService) list(
	ctx context.Context, name string, kind int, opts driving.QueryOptions,
) ([]domain.Record, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	key := fmt.Sprintf("%s:%d", name, limit)
	if cached, ok := s.lists.Get(key); ok {
		logger.Debug("list cache hit: %s", key)
		return cached, nil
	}

	filter := domain.Filter{Kinds: []int{kind}, Limit: limit}
	records, _, err := s.engine.Query(ctx, []domain.Filter{filter}, s.resolveSources(opts))
	if err != nil {
		if errors.Is(err, domain.ErrNoSourceReachable) {
			if stale, storedAt, ok := s.lists.GetStale(key); ok {
				logger.Warn("no source reachable, serving stale list %s from %s", key, storedAt)
				return stale, nil
			}
		}
		return nil, fmt.Errorf("list %s: %w", name, err)
	}

	// Sources each honour the limit but the merge may exceed it.
	if len(records) > limit {
		records = records[:limit]
	}

	s.archiveRecords(ctx, records)
	s.lists.Set(key, records)
	return records, nil
}

// listFresh reports whether a list region entry is still fresh.
// Used by the warmer to avoid redundant network use.
func (s *ContentService) listFresh(name string, limit int) bool {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.lists.Fresh(fmt.Sprintf("%s:%d", name, limit))
}

// resolveSources picks the per-call source set.
func (s *ContentService) resolveSources(opts driving.QueryOptions) []domain.Source {
	if len(opts.Sources) > 0 {
		return opts.Sources
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources
}

// archiveDocument persists an assembled document's records.
func (s *ContentService) archiveDocument(ctx context.Context, root *domain.Record, tree []*domain.DocumentNode) {
	if s.archive == nil {
		return
	}
	records := []domain.Record{*root}
	var collect func(nodes []*domain.DocumentNode)
	collect = func(nodes []*domain.DocumentNode) {
		for _, node := range nodes {
			if node.Linked {
				continue
			}
			records = append(records, node.Record)
			collect(node.Children)
		}
	}
	collect(tree)
	s.archiveRecords(ctx, records)
}

// archiveRecords is best-effort: archive failures never fail a read.
func (s *ContentService) archiveRecords(ctx context.Context, records []domain.Record) {
	if s.archive == nil || len(records) == 0 {
		return
	}
	if err := s.archive.Store(ctx, records); err != nil {
		logger.Warn("archive store failed: %v", err)
	}
}
