package recompute

import "errors"

// Sentinel kinds for recompute job errors.
var (
	ErrInvalidEndpoint = errors.New("invalid job endpoint")
	ErrRequest         = errors.New("job request failed")
	ErrJobFailed       = errors.New("recomputation job failed")
)
