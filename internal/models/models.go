package models

import (
	"strings"
)

// Clubs is the fixed set of clubs that can be ranked, in canonical display
// order. The set is static for a deployment; votes are stored as one integer
// column per club keyed by Key(name).
var Clubs = []string{
	"Liverpool",
	"Arsenal",
	"Manchester City",
	"Manchester United",
	"Chelsea",
	"Tottenham",
	"Aston Villa",
	"Newcastle",
	"Brighton",
	"Nottingham Forest",
	"Bournemouth",
}

// MaxPicks is the maximum number of clubs a single ballot may rank.
const MaxPicks = 6

// SentinelRank is recorded for every club the voter did not rank, so every
// persisted row carries the full column set.
const SentinelRank = 8

// Key normalizes a club display name to its storage key: lowercase with
// whitespace runs collapsed to a single underscore.
func Key(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// DisplayName converts a storage key back to a human-readable club name
// (underscores to spaces, each word title-cased).
func DisplayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ClubKeys returns the storage keys for all clubs in canonical order.
func ClubKeys() []string {
	keys := make([]string, len(Clubs))
	for i, c := range Clubs {
		keys[i] = Key(c)
	}
	return keys
}

// IsClub reports whether name matches a known club (case-insensitive).
func IsClub(name string) bool {
	return CanonicalName(name) != ""
}

// CanonicalName returns the canonical display name for a club given any
// casing/spacing variant, or "" if the club is unknown.
func CanonicalName(name string) string {
	k := Key(name)
	for _, c := range Clubs {
		if Key(c) == k {
			return c
		}
	}
	return ""
}

// RankRecord maps every club key to an integer rank: 1..N for ranked clubs
// and SentinelRank for the rest. Immutable once built; persisted as one row.
type RankRecord map[string]int

// Verdict is the outcome of classifying a ballot.
type Verdict struct {
	Verdict string `json:"verdict"` // "reasonable" or "troll"
	Reason  string `json:"reason,omitempty"`
}

// Verdict values.
const (
	VerdictReasonable = "reasonable"
	VerdictTroll      = "troll"
)

// IsTroll reports whether the verdict flags the ballot.
func (v Verdict) IsTroll() bool {
	return v.Verdict == VerdictTroll
}

// TrollLogRecord is an append-only audit entry for a blocked ballot.
type TrollLogRecord struct {
	Picks  []string `json:"picks"`
	Reason string   `json:"reason"`
	IP     string   `json:"ip"`
}

// LeaderboardRow is one club's aggregate standing. Average is nil while no
// votes exist (the mean is undefined, rendered as a dash).
type LeaderboardRow struct {
	Club    string   `json:"club"`
	Average *float64 `json:"average"`
	Votes   int      `json:"votes"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
