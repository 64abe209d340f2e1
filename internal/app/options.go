package service

import (
	"time"

	"github.com/techSaswata/mentiby-admin/pkg/logger"
)

// Option applies a configuration option to the Coordinator.
type Option func(*Coordinator)

// WithLogger sets a custom logger for the coordinator.
func WithLogger(l logger.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDebounceInterval sets the quiet period required after the last
// change notification before a refetch fires.
func WithDebounceInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.debounceInterval = d
		}
	}
}

// WithStalenessDelay sets how long after the dataset first becomes
// non-empty the one-shot staleness probe runs.
func WithStalenessDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.stalenessDelay = d
		}
	}
}

// WithStalenessThreshold sets the data age that forces a recomputation.
func WithStalenessThreshold(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.stalenessThreshold = d
		}
	}
}

// WithTriggerTimeout bounds refreshes the coordinator schedules itself
// (debounce fires and staleness probes).
func WithTriggerTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.triggerTimeout = d
		}
	}
}

// WithNowFunc replaces the clock used for staleness arithmetic. Test hook.
func WithNowFunc(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}
