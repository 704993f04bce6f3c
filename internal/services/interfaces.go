package services

import (
	"context"

	"github.com/sairajesh711/premier-top6/internal/models"
)

// VotingServicer defines the interface for ballot submission operations
type VotingServicer interface {
	Submit(ctx context.Context, picks []string, ip string, override bool) (*SubmitResult, error)
	Autofix(ctx context.Context, picks []string, ip string) (*SubmitResult, error)
	CheckPicks(ctx context.Context, picks []string, ip string) (models.Verdict, error)
}

// ResultsServicer defines the interface for leaderboard operations
type ResultsServicer interface {
	Refresh(ctx context.Context) ([]models.LeaderboardRow, error)
	Snapshot() []models.LeaderboardRow
}

// Ensure concrete types implement interfaces
var (
	_ VotingServicer  = (*VotingService)(nil)
	_ ResultsServicer = (*ResultsService)(nil)
)
