// Package selection models the ordered-pick ballot: an ordered ranked list of
// up to six clubs plus the pool of everything not yet picked. The three move
// operations mirror drag-and-drop gestures; a gesture that is out of bounds,
// over the cap, or dropped outside a valid zone mutates nothing.
package selection

import (
	"github.com/sairajesh711/premier-top6/internal/models"
)

// State holds the two disjoint sequences of a ballot in progress. Picks are
// ordered by rank; pool order only affects display. State is not safe for
// concurrent use; mutations happen one gesture at a time.
type State struct {
	picks []string
	pool  []string
}

// NewState returns a State with an empty pick list and every club in the pool.
func NewState() *State {
	pool := make([]string, len(models.Clubs))
	copy(pool, models.Clubs)
	return &State{pool: pool}
}

// Picks returns a copy of the ranked clubs, rank 1 first.
func (s *State) Picks() []string {
	out := make([]string, len(s.picks))
	copy(out, s.picks)
	return out
}

// Pool returns a copy of the unpicked clubs.
func (s *State) Pool() []string {
	out := make([]string, len(s.pool))
	copy(out, s.pool)
	return out
}

// MoveToPicks moves the club at fromIndex in the pool to toIndex in the
// picks. Rejected silently when the picks are full or an index is out of
// bounds.
func (s *State) MoveToPicks(fromIndex, toIndex int) {
	if len(s.picks) >= models.MaxPicks {
		return
	}
	if fromIndex < 0 || fromIndex >= len(s.pool) {
		return
	}
	if toIndex < 0 || toIndex > len(s.picks) {
		return
	}
	club := s.pool[fromIndex]
	s.pool = append(s.pool[:fromIndex], s.pool[fromIndex+1:]...)
	s.picks = insert(s.picks, toIndex, club)
}

// ReorderPicks moves a club from one rank to another within the picks.
func (s *State) ReorderPicks(fromIndex, toIndex int) {
	if fromIndex < 0 || fromIndex >= len(s.picks) {
		return
	}
	if toIndex < 0 || toIndex >= len(s.picks) {
		return
	}
	club := s.picks[fromIndex]
	rest := append(s.picks[:fromIndex], s.picks[fromIndex+1:]...)
	s.picks = insert(rest, toIndex, club)
}

// MoveToPool moves the club at fromIndex in the picks back into the pool at
// toIndex. The pool is unbounded, so this is only rejected for bad indices.
func (s *State) MoveToPool(fromIndex, toIndex int) {
	if fromIndex < 0 || fromIndex >= len(s.picks) {
		return
	}
	if toIndex < 0 || toIndex > len(s.pool) {
		return
	}
	club := s.picks[fromIndex]
	s.picks = append(s.picks[:fromIndex], s.picks[fromIndex+1:]...)
	s.pool = insert(s.pool, toIndex, club)
}

func insert(seq []string, at int, v string) []string {
	seq = append(seq, "")
	copy(seq[at+1:], seq[at:])
	seq[at] = v
	return seq
}

// indexOf returns the position of club in seq matched by normalized key,
// or -1 when absent.
func indexOf(seq []string, club string) int {
	k := models.Key(club)
	for i, c := range seq {
		if models.Key(c) == k {
			return i
		}
	}
	return -1
}
