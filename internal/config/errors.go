package config

import (
	"errors"
)

// Sentinel kinds for configuration errors. ErrLoadConfig wraps
// failures reading the MENTIBY_CONFIG file or the MENTIBY_* environment;
// ErrInvalidConfig wraps values that loaded but fail validation.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
