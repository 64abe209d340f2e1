package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/techSaswata/mentiby-admin/pkg/logger"
)

const (
	defaultMinReconnect = 10 * time.Second
	defaultMaxReconnect = time.Minute
)

// PGListener implements Stream on top of Postgres LISTEN/NOTIFY.
type PGListener struct {
	channel      string
	minReconnect time.Duration
	maxReconnect time.Duration
	logger       logger.Logger

	listener *pq.Listener
	events   chan struct{}
	stopCh   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewPGListener subscribes to a Postgres notification channel.
func NewPGListener(dsn, channel string, opts ...Option) (*PGListener, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrInvalidDSN
	}
	if strings.TrimSpace(channel) == "" {
		return nil, ErrInvalidChannel
	}

	s := &PGListener{
		channel:      channel,
		minReconnect: defaultMinReconnect,
		maxReconnect: defaultMaxReconnect,
		logger:       logger.Get().Named("notify"),
		events:       make(chan struct{}, 1),
		stopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.listener = pq.NewListener(dsn, s.minReconnect, s.maxReconnect, s.listenerEvent)
	if err := s.listener.Listen(channel); err != nil {
		_ = s.listener.Close()
		return nil, fmt.Errorf("%w: %v", ErrListen, err)
	}

	go s.forward()

	return s, nil
}

// Events returns the change signal channel.
func (s *PGListener) Events() <-chan struct{} {
	return s.events
}

// Close unsubscribes and closes the events channel. Idempotent.
func (s *PGListener) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopCh)
		s.closeErr = s.listener.Close()
	})
	return s.closeErr
}

// forward turns pq notifications into bare signals. A nil notification
// means the connection was re-established; rows may have changed while
// it was down, so that counts as a signal too.
func (s *PGListener) forward() {
	defer close(s.events)
	for {
		select {
		case <-s.stopCh:
			return
		case n, ok := <-s.listener.Notify:
			if !ok {
				return
			}
			if n != nil && n.Channel != s.channel {
				continue
			}
			// Non-blocking send: the buffer already carries the only
			// information a signal has, that something changed.
			select {
			case s.events <- struct{}{}:
			default:
			}
		}
	}
}

func (s *PGListener) listenerEvent(ev pq.ListenerEventType, err error) {
	if err != nil {
		s.logger.Warn(context.Background(), "listener connection event",
			logger.Int("event", int(ev)),
			logger.Error(err),
		)
	}
}
