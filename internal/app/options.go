package service

import (
	"strings"
	"time"

	"github.com/okian/quarterly/internal/domain/calendar"
	"github.com/okian/quarterly/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLeagueID sets the league used when a query does not name one.
func WithLeagueID(id string) Option {
	return func(s *Service) {
		if id = strings.TrimSpace(id); id != "" {
			s.leagueID = id
		}
	}
}

// WithTopN sets the default length of quarter top lists.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithRequestTimeout bounds the whole provider fan-out of one query.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithWorkerCount sets the number of concurrent history fetches.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithClock replaces time.Now, mostly useful in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithStandingsProvider sets the source of league tables.
func WithStandingsProvider(p StandingsProvider) Option {
	return func(s *Service) {
		s.standings = p
	}
}

// WithHistoryProvider sets the source of per-round history.
func WithHistoryProvider(p HistoryProvider) Option {
	return func(s *Service) {
		s.history = p
	}
}

// WithLocation sets the league's home zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithTable replaces the built-in round calendar.
func WithTable(t *calendar.Table) Option {
	return func(s *Service) {
		s.table = t
	}
}
