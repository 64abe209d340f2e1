// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment sources on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabaseURL is the Postgres DSN holding the onboarding table.
	DatabaseURL string `koanf:"database_url"`

	// NotifyChannel is the Postgres LISTEN channel carrying row-change
	// notifications for the onboarding table.
	NotifyChannel string `koanf:"notify_channel"`

	// RecomputeURL is the endpoint of the external XP recomputation job.
	RecomputeURL string `koanf:"recompute_url"`

	// RecomputeTimeoutMS bounds one recomputation job invocation.
	RecomputeTimeoutMS int `koanf:"recompute_timeout_ms"`

	// FetchTimeoutMS bounds one canonical dataset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// DebounceMS is the quiet period required after the last change
	// notification before a refetch fires.
	DebounceMS int `koanf:"debounce_ms"`

	// StalenessDelayMS is how long after the dataset first becomes
	// non-empty the one-shot staleness probe runs.
	StalenessDelayMS int `koanf:"staleness_delay_ms"`

	// StalenessThresholdHours is the data age at which the staleness
	// probe forces a recomputation cycle.
	StalenessThresholdHours int `koanf:"staleness_threshold_hours"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9090",
		DatabaseURL:             "",
		NotifyChannel:           "onboarding_changes",
		RecomputeURL:            "http://localhost:3000/api/update-xp",
		RecomputeTimeoutMS:      120_000,
		FetchTimeoutMS:          10_000,
		DebounceMS:              2_000,
		StalenessDelayMS:        3_000,
		StalenessThresholdHours: 24,
	}
}
