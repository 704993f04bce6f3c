package handlers

import (
	"net/http"
	"strings"

	"github.com/sairajesh711/premier-top6/internal/models"
	"github.com/sairajesh711/premier-top6/internal/services"
)

// clientIP derives the submitting client's origin from the forwarding header
// chain. The first comma-separated entry is the original client in a proxy
// chain; "unknown" when the header is absent.
func clientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return "unknown"
	}
	first, _, _ := strings.Cut(forwarded, ",")
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return "unknown"
}

// handleVotePage serves the voting page
func (h *Handlers) handleVotePage(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Clubs":    models.Clubs,
		"MaxPicks": models.MaxPicks,
	}
	h.templates.Vote.Execute(w, data)
}

// handleCheckPick classifies a ranked ballot without writing it
func (h *Handlers) handleCheckPick(w http.ResponseWriter, r *http.Request) {
	var req CheckPickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	verdict, err := h.Voting.CheckPicks(r.Context(), req.Picks, clientIP(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, CheckPickResponse{Verdict: verdict.Verdict, Reason: verdict.Reason})
}

// handleSubmitVote handles ballot submissions
func (h *Handlers) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req VoteSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Voting.Submit(r.Context(), req.Picks, clientIP(r), req.Override)
	if err != nil {
		respondError(w, err)
		return
	}

	if result.Status == services.StatusAccepted {
		respondCreated(w, result)
		return
	}
	respondOK(w, result)
}

// handleAutofix force-ranks Liverpool first and writes the corrected ballot
func (h *Handlers) handleAutofix(w http.ResponseWriter, r *http.Request) {
	var req VoteSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Voting.Autofix(r.Context(), req.Picks, clientIP(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, result)
}
