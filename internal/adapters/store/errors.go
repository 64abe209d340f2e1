package store

import "errors"

// Sentinel kinds for store errors.
var (
	ErrInvalidDSN = errors.New("invalid dsn")
	ErrConnect    = errors.New("store connect failed")
	ErrQuery      = errors.New("store query failed")
)
