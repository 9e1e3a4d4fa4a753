// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/quarterly/internal/domain/calendar"
	"github.com/okian/quarterly/internal/domain/model"
	"github.com/okian/quarterly/internal/domain/types"
)

const defaultMaxTopN = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Quarters(ctx context.Context, now time.Time) (types.QuartersView, error)
	Summary(ctx context.Context, leagueID string, now time.Time) (types.Summary, error)
	Top(ctx context.Context, leagueID, quarterID string, n int, now time.Time) (types.TopView, error)
	League(ctx context.Context, leagueID string) (types.LeagueView, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	quartersHandler *QuartersHandler
	trophiesHandler *TrophiesHandler
	leagueHandler   *LeagueHandler
}

// Option applies a configuration option to the Server.
type Option func(*options)

type options struct {
	maxTopN int
}

// WithMaxTopN caps the n parameter of top lists.
func WithMaxTopN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTopN = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{maxTopN: defaultMaxTopN}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		quartersHandler: NewQuartersHandler(deps, o.maxTopN),
		trophiesHandler: NewTrophiesHandler(deps),
		leagueHandler:   NewLeagueHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /quarters", MetricsMiddleware(s.quartersHandler.HandleGetQuarters, "quarters"))
	mux.HandleFunc("GET /quarters/{id}/top", MetricsMiddleware(s.quartersHandler.HandleGetTop, "quarter_top"))
	mux.HandleFunc("GET /quarter-wins", MetricsMiddleware(s.trophiesHandler.HandleGetTrophies, "quarter_wins"))
	mux.HandleFunc("GET /league", MetricsMiddleware(s.leagueHandler.HandleGetLeague, "league"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps query failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, calendar.ErrUnknownQuarter):
		writeError(w, http.StatusNotFound, "unknown_quarter", Wrap(op, err))
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "provider_timeout", Wrap(op, err))
	case errors.Is(err, model.ErrProviderUnavailable):
		writeError(w, http.StatusBadGateway, "provider_unavailable", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// markPartial flags responses built from incomplete history.
func markPartial(w http.ResponseWriter, failures []types.Failure) {
	if len(failures) > 0 {
		w.Header().Set("X-Partial-Result", "true")
	}
}
