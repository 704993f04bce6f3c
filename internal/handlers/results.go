package handlers

import (
	"net/http"
)

// handleResultsPage serves the leaderboard page
func (h *Handlers) handleResultsPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Results.Execute(w, nil)
}

// handleGetResults returns the current leaderboard, recomputed from the
// complete vote set
func (h *Handlers) handleGetResults(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Results.Refresh(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, LeaderboardResponse{Rows: rows})
}

// handleHealth reports service and database liveness
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Database = err.Error()
			respondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	respondOK(w, resp)
}
