// Package notify delivers row-change signals from the canonical store.
//
// Payload content is deliberately ignored: a signal only means
// "something changed" and the refresh coordinator decides what to do
// about it. Implementations must make Close idempotent and must close
// the events channel on teardown.
package notify

// Stream is a push channel of change signals.
type Stream interface {
	// Events returns the signal channel. It is closed on Close.
	Events() <-chan struct{}

	// Close tears the subscription down. Safe to call more than once.
	Close() error
}
