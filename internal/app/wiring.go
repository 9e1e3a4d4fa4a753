package service

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/okian/quarterly/internal/adapters/fpl"
	"github.com/okian/quarterly/internal/config"
	"github.com/okian/quarterly/pkg/logger"
)

// FromConfig builds a Service backed by the fantasy API client described by
// cfg. Extra options are applied last.
func FromConfig(cfg *config.Config, l logger.Logger, opts ...Option) (*Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	client := fpl.NewClient(cfg.FPLBaseURL,
		fpl.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		fpl.WithLimiter(rate.NewLimiter(rate.Limit(cfg.ProviderRatePerSec), cfg.ProviderBurst)),
		fpl.WithUserAgent(cfg.UserAgent),
		fpl.WithLogger(l),
	)

	base := []Option{
		WithLogger(l),
		WithLeagueID(cfg.LeagueID),
		WithLocation(loc),
		WithTopN(cfg.TopN),
		WithWorkerCount(cfg.HistoryWorkers),
		WithRequestTimeout(cfg.RequestTimeout()),
		WithStandingsProvider(client),
		WithHistoryProvider(client),
	}
	return New(append(base, opts...)...), nil
}
