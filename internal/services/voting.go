package services

import (
	"context"

	"github.com/sairajesh711/premier-top6/internal/logger"
	"github.com/sairajesh711/premier-top6/internal/models"
	"github.com/sairajesh711/premier-top6/internal/repository"
	"github.com/sairajesh711/premier-top6/internal/selection"
)

// autofixClub is force-ranked first by the autofix action.
const autofixClub = "Liverpool"

// TrollChecker is the classification collaborator consumed by VotingService.
type TrollChecker interface {
	Check(ctx context.Context, picks []string, ip string) (models.Verdict, error)
}

// VotingService handles ballot submission: validation, the classification
// gate, and the persistence write. Exactly one write happens per accepted
// user action; nothing is retried automatically.
type VotingService struct {
	log            logger.Logger
	repo           repository.VoteRepository
	checker        TrollChecker
	autofixEnabled bool
}

// NewVotingService creates a new VotingService
func NewVotingService(log logger.Logger, repo repository.VoteRepository, checker TrollChecker, autofixEnabled bool) *VotingService {
	return &VotingService{
		log:            log,
		repo:           repo,
		checker:        checker,
		autofixEnabled: autofixEnabled,
	}
}

// Submission statuses.
const (
	StatusAccepted = "accepted"
	StatusBlocked  = "blocked"
)

// SubmitResult contains the result of a ballot submission
type SubmitResult struct {
	Status     string         `json:"status"`
	Verdict    models.Verdict `json:"verdict"`
	Picks      []string       `json:"picks"`
	CanAutofix bool           `json:"can_autofix,omitempty"`
}

// Submit processes a ballot. With override set the classification gate is
// skipped and the picks are written as-is (the voter insisting on a blocked
// ballot). The classification always completes before the write; a blocked
// ballot without override writes nothing.
func (s *VotingService) Submit(ctx context.Context, picks []string, ip string, override bool) (*SubmitResult, error) {
	if len(picks) == 0 {
		return nil, ErrEmptyPicks
	}

	state, err := selection.FromPicks(picks)
	if err != nil {
		return nil, err
	}

	if !override {
		verdict, err := s.checker.Check(ctx, picks, ip)
		if err != nil {
			return nil, err
		}
		if verdict.IsTroll() {
			s.log.Info("Ballot blocked", "reason", verdict.Reason, "first_pick", picks[0])
			return &SubmitResult{
				Status:     StatusBlocked,
				Verdict:    verdict,
				Picks:      state.Picks(),
				CanAutofix: s.autofixEnabled,
			}, nil
		}
	}

	if err := s.repo.InsertVote(ctx, state.Payload()); err != nil {
		return nil, err
	}

	s.log.Info("Vote recorded", "picks", len(picks), "override", override)
	return &SubmitResult{
		Status:  StatusAccepted,
		Verdict: models.Verdict{Verdict: models.VerdictReasonable},
		Picks:   state.Picks(),
	}, nil
}

// Autofix force-ranks Liverpool first, truncates to the pick cap, and writes
// without re-classifying. Only available when enabled in configuration.
func (s *VotingService) Autofix(ctx context.Context, picks []string, ip string) (*SubmitResult, error) {
	if !s.autofixEnabled {
		return nil, ErrAutofixDisabled
	}
	if len(picks) == 0 {
		return nil, ErrEmptyPicks
	}

	fixed := []string{autofixClub}
	for _, club := range picks {
		if models.Key(club) == models.Key(autofixClub) {
			continue
		}
		fixed = append(fixed, club)
	}
	if len(fixed) > models.MaxPicks {
		fixed = fixed[:models.MaxPicks]
	}

	state, err := selection.FromPicks(fixed)
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertVote(ctx, state.Payload()); err != nil {
		return nil, err
	}

	s.log.Info("Vote recorded after autofix", "picks", len(fixed))
	return &SubmitResult{
		Status:  StatusAccepted,
		Verdict: models.Verdict{Verdict: models.VerdictReasonable},
		Picks:   state.Picks(),
	}, nil
}

// CheckPicks runs only the classification, without writing a ballot. Backs
// the check-pick endpoint consumed by the vote page.
func (s *VotingService) CheckPicks(ctx context.Context, picks []string, ip string) (models.Verdict, error) {
	return s.checker.Check(ctx, picks, ip)
}
