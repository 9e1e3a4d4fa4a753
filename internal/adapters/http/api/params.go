package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Query parameter names.
const (
	paramAt       = "at"
	paramLeagueID = "leagueId"
	paramN        = "n"
)

// parseAt reads the optional RFC3339 evaluation instant. Absent means now.
func parseAt(op string, r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(paramAt))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, NewKind(op, ErrBadRequest, "invalid at; must be RFC3339")
	}
	return t, nil
}

// parseLeagueID reads the optional numeric league id. Absent means the
// configured league.
func parseLeagueID(op string, r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(paramLeagueID))
	if raw == "" {
		return "", nil
	}
	if id, err := strconv.Atoi(raw); err != nil || id <= 0 {
		return "", NewKind(op, ErrBadRequest, "invalid leagueId; must be a positive integer")
	}
	return raw, nil
}

// parseN reads the optional top list length in [1, limit]. Absent means 0,
// which selects the service default.
func parseN(op string, r *http.Request, limit int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(paramN))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, NewKind(op, ErrBadRequest, "invalid n; must be a positive integer")
	}
	if n > limit {
		return 0, NewKind(op, ErrBadRequest, "n exceeds limit "+strconv.Itoa(limit))
	}
	return n, nil
}
