package api

import (
	"net/http"
)

// LeagueHandler serves the provider's raw season table.
type LeagueHandler struct {
	deps Dependencies
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(deps Dependencies) *LeagueHandler {
	return &LeagueHandler{deps: deps}
}

// HandleGetLeague handles GET /league?leagueId=.
func (h *LeagueHandler) HandleGetLeague(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_league"
	leagueID, err := parseLeagueID(op, r)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	view, err := h.deps.League(r.Context(), leagueID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
