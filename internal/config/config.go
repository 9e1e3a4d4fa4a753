// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig; provider failures wrap ErrLoadConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// LeagueID is the classic league queried when a request does not name one.
	LeagueID string `koanf:"league_id"`

	// TimeZone is the league's home zone; quarter boundaries are midnights there.
	TimeZone string `koanf:"time_zone"`

	// FPLBaseURL is the root of the upstream fantasy API.
	FPLBaseURL string `koanf:"fpl_base_url"`

	// UserAgent is sent on every upstream request.
	UserAgent string `koanf:"user_agent"`

	// RequestTimeoutMS bounds one full aggregation pass, fan-out included.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// HTTPTimeoutMS bounds a single upstream HTTP call.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// HistoryWorkers caps concurrent per-participant history reads.
	HistoryWorkers int `koanf:"history_workers"`

	// ProviderRatePerSec and ProviderBurst throttle upstream calls (token bucket).
	ProviderRatePerSec float64 `koanf:"provider_rate_per_sec"`
	ProviderBurst      int     `koanf:"provider_burst"`

	// TopN is the size of the per-quarter podium in the summary view.
	TopN int `koanf:"top_n"`

	// MaxTopN caps GET /quarters/{id}/top?n.
	MaxTopN int `koanf:"max_top_n"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		LeagueID:           "831753",
		TimeZone:           "Europe/Warsaw",
		FPLBaseURL:         "https://fantasy.premierleague.com/api",
		UserAgent:          "Mozilla/5.0 (X11; Linux x86_64) quarterly/1.0",
		RequestTimeoutMS:   20_000,
		HTTPTimeoutMS:      8_000,
		HistoryWorkers:     6,
		ProviderRatePerSec: 10,
		ProviderBurst:      5,
		TopN:               3,
		MaxTopN:            100,
	}
}

// Location resolves TimeZone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: time_zone %q: %v", ErrInvalidConfig, c.TimeZone, err)
	}
	return loc, nil
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// HTTPTimeout returns HTTPTimeoutMS as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.LeagueID) == "":
		return fmt.Errorf("%w: league_id must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.FPLBaseURL) == "":
		return fmt.Errorf("%w: fpl_base_url must not be empty", ErrInvalidConfig)
	case c.HistoryWorkers < 1:
		return fmt.Errorf("%w: history_workers must be positive", ErrInvalidConfig)
	case c.RequestTimeoutMS < 1 || c.HTTPTimeoutMS < 1:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	case c.ProviderRatePerSec <= 0 || c.ProviderBurst < 1:
		return fmt.Errorf("%w: provider rate and burst must be positive", ErrInvalidConfig)
	case c.TopN < 1 || c.MaxTopN < c.TopN:
		return fmt.Errorf("%w: top_n must be positive and not exceed max_top_n", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
