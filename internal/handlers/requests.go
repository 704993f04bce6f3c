package handlers

// VoteSubmitRequest represents a request to submit a ranked ballot
type VoteSubmitRequest struct {
	Picks    []string `json:"picks"`
	Override bool     `json:"override,omitempty"`
}

// CheckPickRequest represents a request to classify a ranked ballot
type CheckPickRequest struct {
	Picks []string `json:"picks"`
}
