package repository

import (
	"context"

	"github.com/sairajesh711/premier-top6/internal/models"
)

// VoteRepository defines ballot persistence operations
type VoteRepository interface {
	InsertVote(ctx context.Context, record models.RankRecord) error
	ListVotes(ctx context.Context) ([]models.RankRecord, error)
	CountVotes(ctx context.Context) (int, error)
}

// TrollLogRepository defines append-only troll audit log operations
type TrollLogRepository interface {
	InsertTrollLog(ctx context.Context, record models.TrollLogRecord) error
	ListTrollLogs(ctx context.Context) ([]models.TrollLogRecord, error)
}

// ChangeNotifier lets callers observe row-level changes on a table.
// Callbacks run synchronously on the writer's goroutine after the write
// commits, so they must be goroutine-safe and quick.
type ChangeNotifier interface {
	Subscribe(table string, mask Event, fn func(Change)) (*Subscription, error)
	Unsubscribe(sub *Subscription)
}

// FullRepository combines all repository interfaces
type FullRepository interface {
	VoteRepository
	TrollLogRepository
	ChangeNotifier
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
