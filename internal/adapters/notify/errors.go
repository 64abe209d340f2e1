package notify

import "errors"

// Sentinel kinds for notification stream errors.
var (
	ErrInvalidDSN     = errors.New("invalid dsn")
	ErrInvalidChannel = errors.New("invalid notification channel")
	ErrListen         = errors.New("listen failed")
)
