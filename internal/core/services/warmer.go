package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure Warmer implements the interface.
var _ driving.Warmer = (*Warmer)(nil)

// regionState tracks warming for one region.
type regionState struct {
	inProgress   bool
	startedAt    time.Time
	lastWarmedAt time.Time
	lastError    string
}

// WarmerState holds the per-region warming status. It is injected into
// the Warmer at construction rather than living in a package-level
// singleton, so tests can instantiate independent warmers. Created once
// at startup, mutated only by the Warmer, read by diagnostics.
type WarmerState struct {
	mu      sync.Mutex
	regions map[string]*regionState
}

// NewWarmerState creates empty warming state.
func NewWarmerState() *WarmerState {
	return &WarmerState{regions: make(map[string]*regionState)}
}

// begin attempts to claim a region for warming. The in-progress flag and
// cooldown are checked and the flag set in one critical section, so two
// overlapping WarmAll calls cannot both claim the same region. An
// in-progress flag older than staleTimeout is reclaimed: a crash between
// setting the flag and the deferred cleanup must not wedge the region
// forever.
func (s *WarmerState) begin(region string, cooldown, staleTimeout time.Duration, now time.Time) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.regions[region]
	if !ok {
		st = &regionState{}
		s.regions[region] = st
	}
	if st.inProgress {
		if now.Sub(st.startedAt) <= staleTimeout {
			return false, domain.ErrWarmInProgress.Error()
		}
		logger.Warn("reclaiming stale in-progress flag for %s (started %s)", region, st.startedAt)
		// The owning pass is gone; drop its claim even if the
		// cooldown check below declines this one.
		st.inProgress = false
	}
	if !st.lastWarmedAt.IsZero() && now.Sub(st.lastWarmedAt) < cooldown {
		return false, "within cooldown"
	}
	st.inProgress = true
	st.startedAt = now
	return true, ""
}

// finish releases a region after a warm attempt. lastWarmedAt is only
// stamped when work actually completed, so a fresh-cache skip does not
// push the next real warm further out.
func (s *WarmerState) finish(region string, completed bool, warmErr error, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.regions[region]
	if !ok {
		return
	}
	st.inProgress = false
	if warmErr != nil {
		st.lastError = warmErr.Error()
		return
	}
	st.lastError = ""
	if completed {
		st.lastWarmedAt = now
	}
}

// Status returns the per-region state, sorted by region name.
func (s *WarmerState) Status() []driving.RegionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]driving.RegionStatus, 0, len(s.regions))
	for name, st := range s.regions {
		statuses = append(statuses, driving.RegionStatus{
			Region:       name,
			InProgress:   st.inProgress,
			LastWarmedAt: st.lastWarmedAt,
			LastError:    st.lastError,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Region < statuses[j].Region })
	return statuses
}

// warmRegion describes one warmable list region.
type warmRegion struct {
	name string
	list func(context.Context, *ContentService, driving.QueryOptions) ([]domain.Record, error)
}

// warmRegions are the list regions the warmer populates. Each freshly
// warmed list triggers a dependent pass over the comment pools of its
// most recent items.
var warmRegions = []warmRegion{
	{"publications", func(ctx context.Context, c *ContentService, o driving.QueryOptions) ([]domain.Record, error) {
		return c.ListPublications(ctx, o)
	}},
	{"articles", func(ctx context.Context, c *ContentService, o driving.QueryOptions) ([]domain.Record, error) {
		return c.ListArticles(ctx, o)
	}},
	{"highlights", func(ctx context.Context, c *ContentService, o driving.QueryOptions) ([]domain.Record, error) {
		return c.ListHighlights(ctx, o)
	}},
}

// Warmer proactively populates the most valuable cache regions in the
// background, running the same read paths interactive requests use.
type Warmer struct {
	content *ContentService
	state   *WarmerState
	cfg     domain.WarmConfig

	// now is swapped out in tests to pin the clock.
	now func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewWarmer creates a warmer over the content service. state is injected
// so callers own its lifetime.
func NewWarmer(content *ContentService, state *WarmerState, cfg domain.WarmConfig) *Warmer {
	return &Warmer{
		content: content,
		state:   state,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Start runs the warming loop: one pass straight away, then one per
// configured interval, until ctx is cancelled or Stop is called. The
// per-region cooldown inside each pass does the throttling; the
// interval only sets how often a pass is attempted. Blocks until
// stopped, so long-running callers run it in a goroutine. Returns
// immediately when warming is disabled in config.
func (w *Warmer) Start(ctx context.Context) error {
	if !w.cfg.Enabled {
		logger.Info("background warming disabled")
		return nil
	}

	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	w.WarmAll(ctx)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.WarmAll(ctx)
		}
	}
}

// Stop ends a running Start loop. Safe to call when the loop never ran.
func (w *Warmer) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopCh)
	return nil
}

// WarmAll warms every list region concurrently and independently. A
// region's failure is recorded in its outcome and swallowed: it never
// aborts the other regions or propagates to the caller.
func (w *Warmer) WarmAll(ctx context.Context) []driving.RegionOutcome {
	outcomes := make([]driving.RegionOutcome, len(warmRegions))

	var wg sync.WaitGroup
	for i, region := range warmRegions {
		wg.Add(1)
		go func(i int, region warmRegion) {
			defer wg.Done()
			outcomes[i] = w.warmOne(ctx, region)
		}(i, region)
	}
	wg.Wait()

	return outcomes
}

// Status returns the current per-region warming state.
func (w *Warmer) Status() []driving.RegionStatus {
	return w.state.Status()
}

// warmOne warms a single list region and then its dependent comment
// pools. The dependent pass runs strictly after the list is warm; the
// passes of different regions run concurrently because each region has
// its own goroutine.
func (w *Warmer) warmOne(ctx context.Context, region warmRegion) driving.RegionOutcome {
	outcome := driving.RegionOutcome{Region: region.name, RunID: uuid.NewString()[:8]}

	ok, reason := w.state.begin(region.name, w.cfg.Cooldown, w.cfg.StaleTimeout, w.now())
	if !ok {
		outcome.Skipped = true
		outcome.Reason = reason
		logger.Debug("[%s] skip %s: %s", outcome.RunID, region.name, reason)
		return outcome
	}

	var warmErr error
	completed := false
	defer func() {
		// Guaranteed cleanup: the in-progress flag must not survive
		// this call, whatever happened above.
		w.state.finish(region.name, completed, warmErr, w.now())
	}()

	if w.content.listFresh(region.name, 0) {
		outcome.Skipped = true
		outcome.Reason = "cache fresh"
		logger.Debug("[%s] skip %s: cache fresh", outcome.RunID, region.name)
		return outcome
	}

	logger.Info("[%s] warming %s", outcome.RunID, region.name)
	records, err := region.list(ctx, w.content, driving.QueryOptions{})
	if err != nil {
		warmErr = err
		outcome.Err = err.Error()
		logger.Error("[%s] warm %s failed: %v", outcome.RunID, region.name, err)
		return outcome
	}
	outcome.Warmed++

	// Dependent pass: comment pools for the freshest list items. A pool
	// failure is logged and skipped; it does not fail the region.
	for _, coord := range commentTargets(records, w.cfg.TopN) {
		if _, err := w.content.GetComments(ctx, coord, driving.QueryOptions{}); err != nil {
			logger.Warn("[%s] warm comments %s failed: %v", outcome.RunID, coord, err)
			continue
		}
		outcome.Warmed++
	}

	completed = true
	logger.Info("[%s] warmed %s: %d entries", outcome.RunID, region.name, outcome.Warmed)
	return outcome
}

// commentTargets picks the coordinates whose comment pools get warmed
// for a list. Replaceable records use their own coordinate; highlights
// and other plain records fall back to the document their "a" tag quotes.
func commentTargets(records []domain.Record, topN int) []domain.Coordinate {
	seen := make(map[string]bool)
	var targets []domain.Coordinate
	for i := range records {
		if len(targets) >= topN {
			break
		}
		rec := &records[i]

		var coord domain.Coordinate
		if rec.IsReplaceable() {
			coord = rec.Coordinate()
		} else if parsed, err := domain.ParseCoordinate(rec.TagValue("a")); err == nil {
			coord = parsed
		} else {
			continue
		}

		key := coord.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		targets = append(targets, coord)
	}
	return targets
}
