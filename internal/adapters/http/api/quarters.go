package api

import (
	"net/http"
)

// QuartersHandler serves the calendar and per-quarter top lists.
type QuartersHandler struct {
	deps    Dependencies
	maxTopN int
}

// NewQuartersHandler creates a new quarters handler.
func NewQuartersHandler(deps Dependencies, maxTopN int) *QuartersHandler {
	return &QuartersHandler{deps: deps, maxTopN: maxTopN}
}

// HandleGetQuarters handles GET /quarters?at=.
func (h *QuartersHandler) HandleGetQuarters(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_quarters"
	at, err := parseAt(op, r)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	view, err := h.deps.Quarters(r.Context(), at)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleGetTop handles GET /quarters/{id}/top?n=&leagueId=&at=.
func (h *QuartersHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_quarter_top"
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
	n, err := parseN(op, r, h.maxTopN)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	view, err := h.deps.Top(r.Context(), leagueID, r.PathValue("id"), n, at)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	markPartial(w, view.Partial)
	writeJSON(w, http.StatusOK, view)
}
