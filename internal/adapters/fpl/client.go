// Package fpl reads league standings and entry histories from the Fantasy
// Premier League public API.
package fpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/okian/quarterly/internal/domain/model"
	"github.com/okian/quarterly/pkg/logger"
	"github.com/okian/quarterly/pkg/metrics"
)

// Client defaults.
const (
	DefaultBaseURL   = "https://fantasy.premierleague.com/api"
	DefaultUserAgent = "Mozilla/5.0 (compatible; quarterly/1.0)"
	referer          = "https://fantasy.premierleague.com/"

	defaultHTTPTimeout = 8 * time.Second
	defaultRetries     = 2
	maxStandingsPages  = 50
	maxBodyBytes       = 8 << 20

	endpointStandings = "standings"
	endpointHistory   = "history"
)

var (
	// ErrUnexpectedStatus is returned for non-retryable HTTP statuses.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrNotFound is returned when the API does not know the requested resource.
	ErrNotFound = errors.New("not found")
)

// Client talks to the fantasy API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	retries   int
	logger    logger.Logger
}

// NewClient creates a client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: defaultHTTPTimeout},
		userAgent: DefaultUserAgent,
		retries:   defaultRetries,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("fpl")
	return c
}

// FetchStandings reads every page of a classic league: the ranked table and
// the entries that joined before the first round was played.
func (c *Client) FetchStandings(ctx context.Context, leagueID string) (model.League, error) {
	league := model.League{ID: leagueID}
	path := "/leagues-classic/" + url.PathEscape(leagueID) + "/standings/"

	for page := 1; ; page++ {
		if page > maxStandingsPages {
			return model.League{}, &ProviderError{Op: "standings", LeagueID: leagueID, Err: ErrTooManyPages}
		}

		q := url.Values{}
		q.Set("page_standings", strconv.Itoa(page))
		q.Set("page_new_entries", strconv.Itoa(page))

		var body standingsPage
		status, err := c.get(ctx, endpointStandings, path, q, &body)
		if err != nil {
			return model.League{}, &ProviderError{Op: "standings", LeagueID: leagueID, StatusCode: status, Err: err}
		}

		for _, r := range body.Standings.Results {
			if r.Entry > 0 {
				league.Standings = append(league.Standings, r.toModel())
			}
		}
		for _, e := range body.NewEntries.Results {
			if e.Entry > 0 {
				league.Placeholders = append(league.Placeholders, e.toModel())
			}
		}

		if !body.Standings.HasNext && !body.NewEntries.HasNext {
			break
		}
	}

	c.logger.Debug(ctx, "standings fetched",
		logger.String("league_id", leagueID),
		logger.Int("standings", len(league.Standings)),
		logger.Int("placeholders", len(league.Placeholders)))
	return league, nil
}

// FetchHistory reads the per-round points of one entry. A missing entry is a
// provider failure; only an empty "current" list means no rounds were played.
func (c *Client) FetchHistory(ctx context.Context, participantID int) ([]model.RoundScore, error) {
	path := "/entry/" + strconv.Itoa(participantID) + "/history/"

	var body entryHistory
	status, err := c.get(ctx, endpointHistory, path, nil, &body)
	if err != nil {
		return nil, &ProviderError{Op: "history", ParticipantID: participantID, StatusCode: status, Err: err}
	}
	return body.toModel(participantID), nil
}

// get performs a throttled GET with bounded retries on transient failures and
// decodes the JSON body into out. It returns the last HTTP status seen.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) (int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var status int
	op := func() error {
		status = 0
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Referer", referer)
		req.Header.Set("X-Request-ID", uuid.NewString())

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		status = resp.StatusCode
		switch {
		case status == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
			return fmt.Errorf("%w %d", ErrUnexpectedStatus, status)
		case status < 200 || status >= 300:
			return backoff.Permanent(fmt.Errorf("%w %d", ErrUnexpectedStatus, status))
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s: %w", endpoint, err))
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn(ctx, "retrying provider request",
			logger.String("endpoint", endpoint),
			logger.String("path", path),
			logger.Duration("wait", wait),
			logger.Error(err))
	}

	start := time.Now()
	err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(newBackOff(), uint64(c.retries)), ctx), notify)
	latency := float64(time.Since(start).Milliseconds())

	switch {
	case err == nil:
		metrics.RecordProviderRequest(endpoint, "ok", latency)
	case errors.Is(err, ErrNotFound):
		metrics.RecordProviderRequest(endpoint, "not_found", latency)
	default:
		metrics.RecordProviderRequest(endpoint, "error", latency)
	}
	return status, err
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
