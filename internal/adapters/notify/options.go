package notify

import (
	"time"

	"github.com/techSaswata/mentiby-admin/pkg/logger"
)

// Option applies a configuration option to the PGListener.
type Option func(*PGListener)

// WithReconnectIntervals bounds the listener's reconnect backoff.
func WithReconnectIntervals(min, max time.Duration) Option {
	return func(s *PGListener) {
		if min > 0 && max >= min {
			s.minReconnect = min
			s.maxReconnect = max
		}
	}
}

// WithLogger sets a custom logger for the listener.
func WithLogger(l logger.Logger) Option {
	return func(s *PGListener) {
		if l != nil {
			s.logger = l
		}
	}
}
