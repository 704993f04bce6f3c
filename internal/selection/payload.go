package selection

import (
	"github.com/sairajesh711/premier-top6/internal/errors"
	"github.com/sairajesh711/premier-top6/internal/models"
)

// FromPicks rebuilds a State from a submitted ranked list by replaying the
// pool-to-picks move for each club in order. It rejects ballots the gesture
// model could never have produced: unknown clubs, duplicates, or more than
// six picks.
func FromPicks(picks []string) (*State, error) {
	if len(picks) > models.MaxPicks {
		return nil, errors.Validationf("too many picks: %d (max %d)", len(picks), models.MaxPicks)
	}
	s := NewState()
	for _, club := range picks {
		if !models.IsClub(club) {
			return nil, errors.Validationf("unknown club: %q", club)
		}
		idx := indexOf(s.pool, club)
		if idx < 0 {
			return nil, errors.Validationf("duplicate pick: %q", club)
		}
		s.MoveToPicks(idx, len(s.picks))
	}
	return s, nil
}

// BuildPayload converts a ballot into its persisted shape: rank 1..N for each
// picked club, the sentinel for everything left in the pool. Pure; the input
// state is untouched.
func BuildPayload(picks, pool []string) models.RankRecord {
	record := make(models.RankRecord, len(picks)+len(pool))
	for i, club := range picks {
		record[models.Key(club)] = i + 1
	}
	for _, club := range pool {
		key := models.Key(club)
		if _, ranked := record[key]; !ranked {
			record[key] = models.SentinelRank
		}
	}
	return record
}

// Payload is shorthand for BuildPayload over a State's current sequences.
func (s *State) Payload() models.RankRecord {
	return BuildPayload(s.picks, s.pool)
}
