package services

import (
	"context"
	"sort"
	"sync"

	"github.com/sairajesh711/premier-top6/internal/logger"
	"github.com/sairajesh711/premier-top6/internal/models"
	"github.com/sairajesh711/premier-top6/internal/repository"
)

// Broadcaster pushes a freshly computed leaderboard to live viewers.
type Broadcaster interface {
	BroadcastLeaderboard(rows []models.LeaderboardRow)
}

// ResultsServiceRepository defines the repository methods needed by ResultsService
type ResultsServiceRepository interface {
	repository.VoteRepository
	repository.ChangeNotifier
}

// ResultsService recomputes the leaderboard from the full vote set. Every
// refresh is a complete recompute, re-triggered by row-level change
// notifications; ballot volume is expected to stay small relative to the
// recompute cost.
//
// Refreshes may overlap. Each one takes a monotonic sequence token before
// reading, and a completion older than the last published one is discarded,
// so an out-of-order completion can never roll the snapshot backwards.
type ResultsService struct {
	log         logger.Logger
	repo        ResultsServiceRepository
	broadcaster Broadcaster

	mu        sync.Mutex
	seq       uint64
	published uint64
	snapshot  []models.LeaderboardRow
	sub       *repository.Subscription
}

// NewResultsService creates a new ResultsService
func NewResultsService(log logger.Logger, repo ResultsServiceRepository) *ResultsService {
	return &ResultsService{log: log, repo: repo}
}

// SetBroadcaster wires the live push channel; may be nil in tests.
func (s *ResultsService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcaster = b
}

// Start subscribes to vote inserts so every accepted ballot refreshes the
// leaderboard. Call Stop to release the subscription.
func (s *ResultsService) Start() error {
	sub, err := s.repo.Subscribe(repository.TableVotes, repository.EventAll, func(repository.Change) {
		if _, err := s.Refresh(context.Background()); err != nil {
			s.log.Error("Leaderboard refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()
	return nil
}

// Stop releases the change subscription. Safe to call more than once.
func (s *ResultsService) Stop() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()
	s.repo.Unsubscribe(sub)
}

// Refresh recomputes the leaderboard from all persisted ballots, publishes
// it as the current snapshot unless a newer refresh already did, and pushes
// it to live viewers.
func (s *ResultsService) Refresh(ctx context.Context) ([]models.LeaderboardRow, error) {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.mu.Unlock()

	records, err := s.repo.ListVotes(ctx)
	if err != nil {
		return nil, err
	}
	rows := Aggregate(records)

	s.mu.Lock()
	stale := token <= s.published
	if !stale {
		s.published = token
		s.snapshot = rows
	}
	b := s.broadcaster
	s.mu.Unlock()

	if !stale && b != nil {
		b.BroadcastLeaderboard(rows)
	}

	return rows, nil
}

// Snapshot returns the last published leaderboard without touching the
// store. Nil until the first refresh completes.
func (s *ResultsService) Snapshot() []models.LeaderboardRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Aggregate converts raw ballots into sorted leaderboard rows: one row per
// club, arithmetic mean of its rank across all ballots, ascending by mean.
// With zero ballots every mean is undefined and left nil. The sort is
// stable, so clubs with equal means keep their canonical display order.
func Aggregate(records []models.RankRecord) []models.LeaderboardRow {
	rows := make([]models.LeaderboardRow, 0, len(models.Clubs))
	for _, club := range models.Clubs {
		key := models.Key(club)
		row := models.LeaderboardRow{Club: club, Votes: len(records)}
		if len(records) > 0 {
			sum := 0
			for _, record := range records {
				sum += record[key]
			}
			avg := float64(sum) / float64(len(records))
			row.Average = &avg
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Average == nil || rows[j].Average == nil {
			return false
		}
		return *rows[i].Average < *rows[j].Average
	})
	return rows
}
