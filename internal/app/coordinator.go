// Package service provides the refresh coordinator that owns the
// canonical ranked dataset and the derived view consumed by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/techSaswata/mentiby-admin/internal/adapters/notify"
	"github.com/techSaswata/mentiby-admin/internal/adapters/recompute"
	"github.com/techSaswata/mentiby-admin/internal/adapters/store"
	"github.com/techSaswata/mentiby-admin/internal/domain/model"
	"github.com/techSaswata/mentiby-admin/internal/domain/ranking"
	"github.com/techSaswata/mentiby-admin/internal/domain/view"
	"github.com/techSaswata/mentiby-admin/pkg/logger"
	"github.com/techSaswata/mentiby-admin/pkg/metrics"
)

// Coordinator states exposed to callers.
const (
	StateIdle     = "idle"
	StateFetching = "fetching"
	StateUpdating = "updating"
	StateError    = "error"
)

// Trigger sources for a refresh.
const (
	triggerManual    = "manual"
	triggerNotify    = "notify"
	triggerStaleness = "staleness"
	triggerUpdate    = "update"
)

// Default coordinator timing constants.
const (
	defaultDebounceInterval   = 2 * time.Second
	defaultStalenessDelay     = 3 * time.Second
	defaultStalenessThreshold = 24 * time.Hour
	defaultTriggerTimeout     = 30 * time.Second
)

// fetchGen is one fetch generation. Callers coalesced onto an in-flight
// fetch wait on done and read err afterwards.
type fetchGen struct {
	done chan struct{}
	err  error
}

// Coordinator serializes refresh triggers, maintains the canonical
// ranked dataset and recomputes the derived view after every mutation.
//
// The canonical dataset is only ever replaced wholesale: a fetch that
// fails leaves it untouched. The mutex is the sole mutual-exclusion
// mechanism; the fetching flag is checked and set under it with no
// suspension point in between, so two interleaved triggers can never
// start two fetches.
type Coordinator struct {
	mu sync.Mutex

	// Collaborators
	store  store.Fetcher
	stream notify.Stream
	job    recompute.Runner

	// Configuration
	debounceInterval   time.Duration
	stalenessDelay     time.Duration
	stalenessThreshold time.Duration
	triggerTimeout     time.Duration
	now                func() time.Time

	// State, guarded by mu
	canonical []model.RankedEntry
	criteria  view.Criteria
	visible   []model.RankedEntry
	fetching  bool
	updating  bool
	inflight  *fetchGen
	lastErr   error
	lastFetch time.Time
	debounce  *time.Timer
	staleness *time.Timer
	closed    bool

	// Lifecycle
	started     bool
	loopStarted bool
	stopCh      chan struct{}
	loopDone    chan struct{}
	closeOnce   sync.Once

	// Logging
	logger logger.Logger
}

// New constructs a Coordinator. The stream may be nil, in which case no
// change notifications are consumed; the job may be nil, in which case
// TriggerUpdate returns an error.
func New(fetcher store.Fetcher, stream notify.Stream, job recompute.Runner, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:              fetcher,
		stream:             stream,
		job:                job,
		debounceInterval:   defaultDebounceInterval,
		stalenessDelay:     defaultStalenessDelay,
		stalenessThreshold: defaultStalenessThreshold,
		triggerTimeout:     defaultTriggerTimeout,
		now:                time.Now,
		stopCh:             make(chan struct{}),
		loopDone:           make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start begins consuming change notifications. Idempotent.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.started {
		return nil
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("coordinator")
	}

	if c.stream != nil {
		c.loopStarted = true
		go c.notifyLoop(ctx)
	}

	c.started = true
	c.logger.Info(ctx, "refresh coordinator started",
		logger.Duration("debounce", c.debounceInterval),
		logger.Duration("stalenessDelay", c.stalenessDelay),
		logger.Duration("stalenessThreshold", c.stalenessThreshold),
	)
	return nil
}

// Close tears the coordinator down: the pending debounce and staleness
// timers are canceled, the notification stream is closed, and any
// in-flight fetch completion stops scheduling further work. Idempotent.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		if c.debounce != nil {
			c.debounce.Stop()
		}
		if c.staleness != nil {
			c.staleness.Stop()
		}
		loopStarted := c.loopStarted
		c.mu.Unlock()

		close(c.stopCh)
		if c.stream != nil {
			if err := c.stream.Close(); err != nil && c.logger != nil {
				c.logger.Warn(context.Background(), "closing notification stream", logger.Error(err))
			}
		}
		if loopStarted {
			<-c.loopDone
		}
		if c.logger != nil {
			c.logger.Info(context.Background(), "refresh coordinator stopped")
		}
	})
}

// Refresh fetches the canonical dataset now. A call arriving while a
// fetch is in flight does not start a second one; it is serviced by the
// in-flight fetch's result.
func (c *Coordinator) Refresh(ctx context.Context) error {
	return c.refresh(ctx, triggerManual)
}

func (c *Coordinator) refresh(ctx context.Context, trigger string) error {
	c.mu.Lock()
	c.ensureLoggerLocked()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.fetching {
		gen := c.inflight
		c.mu.Unlock()
		metrics.RecordRefreshCoalesced()
		select {
		case <-gen.done:
			return gen.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	// Check-and-set with no suspension point in between.
	c.fetching = true
	gen := &fetchGen{done: make(chan struct{})}
	c.inflight = gen
	c.mu.Unlock()

	metrics.RecordRefresh(trigger)
	c.logger.Debug(ctx, "fetching canonical dataset", logger.String("trigger", trigger))

	start := time.Now()
	records, err := c.store.FetchAll(ctx)
	metrics.RecordFetchDuration(float64(time.Since(start).Milliseconds()))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetching = false
	c.inflight = nil

	if err != nil {
		gen.err = fmt.Errorf("%w: %v", ErrFetch, err)
		close(gen.done)
		c.lastErr = gen.err
		metrics.RecordFetchFailure()
		c.logger.Error(ctx, "canonical fetch failed",
			logger.String("trigger", trigger),
			logger.Error(err),
		)
		return gen.err
	}

	wasEmpty := len(c.canonical) == 0
	c.canonical = ranking.Rank(model.Normalize(records))
	c.lastErr = nil
	c.lastFetch = c.now()
	c.recomputeViewLocked()
	metrics.UpdateLastFetchTime(float64(c.lastFetch.Unix()))
	close(gen.done)

	c.logger.Info(ctx, "canonical dataset refreshed",
		logger.String("trigger", trigger),
		logger.Int("entries", len(c.canonical)),
		logger.Int("visible", len(c.visible)),
	)

	if !c.closed && wasEmpty && len(c.canonical) > 0 {
		c.armStalenessProbeLocked()
	}

	return nil
}

// TriggerUpdate invokes the external XP recomputation job and, on
// success, forces a refetch. The updating state is always cleared on
// the exit path.
func (c *Coordinator) TriggerUpdate(ctx context.Context) error {
	if c.job == nil {
		return ErrNoUpdateJob
	}

	c.mu.Lock()
	c.ensureLoggerLocked()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.updating {
		c.mu.Unlock()
		return ErrUpdateInFlight
	}
	c.updating = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.updating = false
		c.mu.Unlock()
	}()

	c.logger.Info(ctx, "triggering XP recomputation")

	start := time.Now()
	err := c.job.Run(ctx)
	metrics.RecordUpdateJobDuration(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordUpdateJob("failure")
		wrapped := fmt.Errorf("%w: %v", ErrUpdateJob, err)
		c.mu.Lock()
		c.lastErr = wrapped
		c.mu.Unlock()
		c.logger.Error(ctx, "XP recomputation failed", logger.Error(err))
		return wrapped
	}

	metrics.RecordUpdateJob("success")
	c.logger.Info(ctx, "XP recomputation finished, refetching")

	return c.refresh(ctx, triggerUpdate)
}

// SetCriteria replaces the active filter criteria and synchronously
// recomputes the derived view, which is returned.
func (c *Coordinator) SetCriteria(criteria view.Criteria) []model.RankedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.criteria = criteria
	c.recomputeViewLocked()
	return copyEntries(c.visible)
}

// Criteria returns the active filter criteria.
func (c *Coordinator) Criteria() view.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// View returns the current derived view.
func (c *Coordinator) View() []model.RankedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyEntries(c.visible)
}

// Snapshot returns the full canonical ranked sequence.
func (c *Coordinator) Snapshot() []model.RankedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyEntries(c.canonical)
}

// Status reports the coordinator state for the presentation layer.
func (c *Coordinator) Status() model.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := model.Status{
		State:          StateIdle,
		LastFetchAt:    c.lastFetch,
		TotalEntries:   len(c.canonical),
		VisibleEntries: len(c.visible),
	}
	switch {
	case c.updating:
		s.State = StateUpdating
	case c.fetching:
		s.State = StateFetching
	case c.lastErr != nil:
		s.State = StateError
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}

// notifyLoop consumes change signals and maintains the single-slot
// debounce timer. It exits on teardown, context cancellation, or the
// stream closing.
func (c *Coordinator) notifyLoop(ctx context.Context) {
	defer close(c.loopDone)

	events := c.stream.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			metrics.RecordNotifySignal()
			c.bumpDebounce()
		}
	}
}

// bumpDebounce (re)starts the debounce timer. A burst of signals keeps
// replacing the pending timer, so only the quiet period after the last
// one fires a refetch.
func (c *Coordinator) bumpDebounce() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.debounceInterval, c.debounceFire)
}

// debounceFire runs when the debounce window elapses with no further
// signals. The refetch is skipped while another fetch is in flight; the
// in-flight fetch already reads post-change data or a fresh
// notification will re-arm the timer.
func (c *Coordinator) debounceFire() {
	c.mu.Lock()
	if c.closed || c.fetching {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	metrics.RecordNotifyFire()

	ctx, cancel := context.WithTimeout(context.Background(), c.triggerTimeout)
	defer cancel()
	if err := c.refresh(ctx, triggerNotify); err != nil {
		c.logger.Warn(ctx, "debounced refetch failed", logger.Error(err))
	}
}

// armStalenessProbeLocked schedules the one-shot staleness probe. It is
// armed only on the empty-to-non-empty transition of the canonical
// dataset; refreshes of an already populated dataset do not re-arm it.
func (c *Coordinator) armStalenessProbeLocked() {
	if c.staleness != nil {
		c.staleness.Stop()
	}
	c.staleness = time.AfterFunc(c.stalenessDelay, c.stalenessProbe)
}

// stalenessProbe checks the age of the most recent score change and
// forces a recomputation cycle when it exceeds the threshold.
func (c *Coordinator) stalenessProbe() {
	metrics.RecordStalenessProbe()

	c.mu.Lock()
	if c.closed || len(c.canonical) == 0 {
		c.mu.Unlock()
		return
	}
	newest := c.canonical[0].UpdatedAt
	for _, e := range c.canonical[1:] {
		if e.UpdatedAt.After(newest) {
			newest = e.UpdatedAt
		}
	}
	age := c.now().Sub(newest)
	threshold := c.stalenessThreshold
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.triggerTimeout)
	defer cancel()

	if age < threshold {
		c.logger.Debug(ctx, "dataset fresh enough, no recomputation",
			logger.Duration("age", age),
			logger.Duration("threshold", threshold),
		)
		return
	}

	metrics.RecordStalenessTrigger()
	c.logger.Info(ctx, "dataset stale, forcing recomputation",
		logger.Duration("age", age),
		logger.Duration("threshold", threshold),
	)
	if err := c.TriggerUpdate(ctx); err != nil {
		c.logger.Warn(ctx, "staleness-triggered update failed", logger.Error(err))
	}
}

// recomputeViewLocked re-derives the visible subsequence. Callers hold mu.
func (c *Coordinator) recomputeViewLocked() {
	c.visible = view.Apply(c.canonical, c.criteria)
	metrics.UpdateLeaderboardSize(len(c.canonical))
	metrics.UpdateViewSize(len(c.visible))
}

// ensureLoggerLocked lazily initializes the logger for coordinators
// used without Start (direct refreshes in tests and tooling).
func (c *Coordinator) ensureLoggerLocked() {
	if c.logger == nil {
		c.logger = logger.Get().Named("coordinator")
	}
}

func copyEntries(entries []model.RankedEntry) []model.RankedEntry {
	out := make([]model.RankedEntry, len(entries))
	copy(out, entries)
	return out
}
