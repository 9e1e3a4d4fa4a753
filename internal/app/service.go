// Package service runs the quarter trophy pipeline behind the HTTP API:
// fetch the league, resolve the roster, fan out history fetches, fold the
// totals and crown the winners.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	workerpool "github.com/okian/quarterly/internal/adapters/mq/worker"
	"github.com/okian/quarterly/internal/domain/aggregate"
	"github.com/okian/quarterly/internal/domain/calendar"
	"github.com/okian/quarterly/internal/domain/model"
	"github.com/okian/quarterly/internal/domain/roster"
	"github.com/okian/quarterly/pkg/logger"
	"github.com/okian/quarterly/pkg/metrics"
)

// Defaults.
const (
	DefaultLeagueID = "831753"
	DefaultTimeZone = "Europe/Warsaw"

	defaultTopN           = 3
	defaultWorkers        = 6
	defaultRequestTimeout = 20 * time.Second
)

// StandingsProvider returns a league's table and pre-season registrants.
type StandingsProvider interface {
	FetchStandings(ctx context.Context, leagueID string) (model.League, error)
}

// HistoryProvider returns one participant's per-round points.
type HistoryProvider = workerpool.Fetcher

// Service answers quarter and trophy queries. Every query builds its own
// snapshot; nothing is cached between calls.
type Service struct {
	mu sync.RWMutex

	standings StandingsProvider
	history   HistoryProvider
	pool      *workerpool.Pool

	table    *calendar.Table
	quarters []calendar.Quarter
	loc      *time.Location

	leagueID       string
	topN           int
	workerCount    int
	requestTimeout time.Duration
	clock          func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		leagueID:       DefaultLeagueID,
		topN:           defaultTopN,
		workerCount:    defaultWorkers,
		requestTimeout: defaultRequestTimeout,
		clock:          time.Now,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the configuration and builds the quarter calendar. A bad
// calendar is fatal; the service does not start.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.standings == nil || s.history == nil {
		return fmt.Errorf("%w: %w", calendar.ErrConfiguration, ErrMissingProvider)
	}

	if s.table == nil {
		if s.loc == nil {
			loc, err := time.LoadLocation(DefaultTimeZone)
			if err != nil {
				return fmt.Errorf("%w: load %s: %w", calendar.ErrConfiguration, DefaultTimeZone, err)
			}
			s.loc = loc
		}
		table, err := calendar.DefaultTable(s.loc)
		if err != nil {
			return err
		}
		s.table = table
	}
	s.loc = s.table.Location()
	s.quarters = s.table.BuildQuarters()

	s.pool = workerpool.NewPool(s.history,
		workerpool.WithWorkers(s.workerCount),
		workerpool.WithLogger(s.logger),
	)

	s.started = true
	s.logger.Info(ctx, "quarter service started",
		logger.String("league_id", s.leagueID),
		logger.String("time_zone", s.loc.String()),
		logger.Int("workers", s.workerCount),
		logger.Duration("request_timeout", s.requestTimeout),
	)
	return nil
}

// Stop marks the service stopped. In-flight queries finish on their own.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "quarter service stopped")
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.clock() }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":          s.started,
		"leagueId":         s.leagueID,
		"workerCount":      s.workerCount,
		"topN":             s.topN,
		"requestTimeoutMs": s.requestTimeout.Milliseconds(),
	}
	if s.started {
		stats["timeZone"] = s.loc.String()
		stats["quarters"] = len(s.quarters)
		stats["seasonEnd"] = s.table.SeasonEnd().String()
	}
	return stats
}

// view is the frozen state a query needs, taken under the read lock.
type view struct {
	quarters []calendar.Quarter
	loc      *time.Location
	pool     *workerpool.Pool
	league   string
}

func (s *Service) view(leagueID string) (view, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return view{}, ErrNotStarted
	}
	if leagueID == "" {
		leagueID = s.leagueID
	}
	return view{quarters: s.quarters, loc: s.loc, pool: s.pool, league: leagueID}, nil
}

func (s *Service) at(now time.Time) time.Time {
	if now.IsZero() {
		return s.clock()
	}
	return now
}

// snapshot is everything one trophy query derives from the providers.
type snapshot struct {
	view
	now    time.Time
	totals *aggregate.Totals
	cls    calendar.Classification
}

// collect runs the provider pipeline once under the request timeout.
func (s *Service) collect(ctx context.Context, v view, now time.Time) (*snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	cls, err := calendar.Classify(now, v.quarters)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	league, err := s.standings.FetchStandings(ctx, v.league)
	if err != nil {
		s.logger.Error(ctx, "standings unavailable", logger.String("league_id", v.league), logger.Error(err))
		return nil, providerErr("fetch standings", err)
	}

	participants := roster.Resolve(league.Confirmed(), league.Placeholders)
	metrics.UpdateParticipants(len(participants))

	results := v.pool.Collect(ctx, participants)
	inputs := make([]aggregate.Input, len(results))
	for i, r := range results {
		inputs[i] = aggregate.Input{Participant: r.Participant, History: r.History, Err: r.Err}
	}
	totals := aggregate.Fold(inputs, v.quarters)
	metrics.RecordAggregationDuration(float64(time.Since(start).Milliseconds()))

	if totals.Partial() {
		s.logger.Warn(ctx, "partial history",
			logger.String("league_id", v.league),
			logger.Int("participants", len(participants)),
			logger.Int("failed", len(totals.Failures())))
	}
	s.logger.Debug(ctx, "snapshot collected",
		logger.String("league_id", v.league),
		logger.Int("participants", len(participants)),
		logger.Duration("elapsed", time.Since(start)))

	return &snapshot{view: v, now: now, totals: totals, cls: cls}, nil
}
