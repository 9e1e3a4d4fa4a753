package api

import (
	"net/http"
)

// TrophiesHandler serves the quarter winners and trophy tally.
type TrophiesHandler struct {
	deps Dependencies
}

// NewTrophiesHandler creates a new trophies handler.
func NewTrophiesHandler(deps Dependencies) *TrophiesHandler {
	return &TrophiesHandler{deps: deps}
}

// HandleGetTrophies handles GET /quarter-wins?leagueId=&at=.
func (h *TrophiesHandler) HandleGetTrophies(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_quarter_wins"
	at, err := parseAt(op, r)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	leagueID, err := parseLeagueID(op, r)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	summary, err := h.deps.Summary(r.Context(), leagueID, at)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	markPartial(w, summary.Partial)
	writeJSON(w, http.StatusOK, summary)
}
