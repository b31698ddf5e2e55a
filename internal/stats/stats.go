// internal/stats/stats.go
//
// Running totals across finished sessions.
// Totals only grow; the current streak is the one field that resets (on a loss).
// Record must run exactly once per finished session: the service layer owns
// that guarantee, Record itself does not deduplicate.

package stats

import (
	"time"

	"github.com/robalobadob/wordle/apps/cli/internal/game"
)

// Stats holds the aggregate of every finished session.
type Stats struct {
	TotalGames    int
	Wins          int
	CurrentStreak int
	BestStreak    int
	TotalAttempts int
	TotalScore    int
	Distribution  map[int]int // wins keyed by attempts used
	UpdatedAt     time.Time
}

// New returns empty statistics.
func New() *Stats {
	return &Stats{Distribution: map[int]int{}}
}

// Record folds one finished session into the totals.
func (st *Stats) Record(s *game.Session) {
	st.TotalGames++
	st.TotalAttempts += len(s.Guesses)
	st.TotalScore += s.Score

	if s.Won {
		st.Wins++
		st.CurrentStreak++
		st.BestStreak = max(st.BestStreak, st.CurrentStreak)
		if st.Distribution == nil {
			st.Distribution = map[int]int{}
		}
		st.Distribution[len(s.Guesses)]++
	} else {
		st.CurrentStreak = 0
	}
	st.UpdatedAt = time.Now().UTC()
}

// AverageAttempts is total attempts per game, 0 before any game.
func (st *Stats) AverageAttempts() float64 {
	if st.TotalGames == 0 {
		return 0
	}
	return float64(st.TotalAttempts) / float64(st.TotalGames)
}

// AverageScore is total score per game, 0 before any game.
func (st *Stats) AverageScore() float64 {
	if st.TotalGames == 0 {
		return 0
	}
	return float64(st.TotalScore) / float64(st.TotalGames)
}

// WinRate is the fraction of games won, 0 before any game.
func (st *Stats) WinRate() float64 {
	if st.TotalGames == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.TotalGames)
}

// Clone returns a deep copy, safe to hand to a store or a renderer.
func (st *Stats) Clone() *Stats {
	c := *st
	c.Distribution = make(map[int]int, len(st.Distribution))
	for k, v := range st.Distribution {
		c.Distribution[k] = v
	}
	return &c
}
