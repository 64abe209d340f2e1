package service

import "errors"

// Sentinel kinds for coordinator errors.
var (
	ErrClosed         = errors.New("coordinator closed")
	ErrFetch          = errors.New("leaderboard fetch failed")
	ErrUpdateJob      = errors.New("xp update failed")
	ErrUpdateInFlight = errors.New("xp update already running")
	ErrNoUpdateJob    = errors.New("no update job configured")
)
