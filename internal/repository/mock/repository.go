package mock

import (
	"context"

	"github.com/sairajesh711/premier-top6/internal/models"
	"github.com/sairajesh711/premier-top6/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database
// manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.InsertVoteError = errors.New("database error")
//	svc := services.NewVotingService(log, mockRepo, checker)
//	_, err := svc.Submit(ctx, picks, false)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	InsertVoteError     error
	ListVotesError      error
	CountVotesError     error
	InsertTrollLogError error
	ListTrollLogsError  error

	// InsertVoteCalls counts write attempts, including failed ones.
	InsertVoteCalls int
	// InsertTrollLogCalls counts troll log write attempts.
	InsertTrollLogCalls int
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{FullRepository: real}
}

func (m *Repository) InsertVote(ctx context.Context, record models.RankRecord) error {
	m.InsertVoteCalls++
	if m.InsertVoteError != nil {
		return m.InsertVoteError
	}
	return m.FullRepository.InsertVote(ctx, record)
}

func (m *Repository) ListVotes(ctx context.Context) ([]models.RankRecord, error) {
	if m.ListVotesError != nil {
		return nil, m.ListVotesError
	}
	return m.FullRepository.ListVotes(ctx)
}

func (m *Repository) CountVotes(ctx context.Context) (int, error) {
	if m.CountVotesError != nil {
		return 0, m.CountVotesError
	}
	return m.FullRepository.CountVotes(ctx)
}

func (m *Repository) InsertTrollLog(ctx context.Context, record models.TrollLogRecord) error {
	m.InsertTrollLogCalls++
	if m.InsertTrollLogError != nil {
		return m.InsertTrollLogError
	}
	return m.FullRepository.InsertTrollLog(ctx, record)
}

func (m *Repository) ListTrollLogs(ctx context.Context) ([]models.TrollLogRecord, error) {
	if m.ListTrollLogsError != nil {
		return nil, m.ListTrollLogsError
	}
	return m.FullRepository.ListTrollLogs(ctx)
}
