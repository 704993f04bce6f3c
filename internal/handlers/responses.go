package handlers

import "github.com/sairajesh711/premier-top6/internal/models"

// CheckPickResponse is the JSON response for the check-pick endpoint.
// Mirrors the classifier contract: a verdict plus a one-sentence reason.
type CheckPickResponse struct {
	Verdict string `json:"verdict"`
	Reason  string `json:"reason"`
}

// LeaderboardResponse is the response for the results endpoint
type LeaderboardResponse struct {
	Rows []models.LeaderboardRow `json:"rows"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
