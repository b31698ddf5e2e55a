// internal/store/store.go
//
// Persistence interface for statistics and finished-game history.
// Implementations:
//   - memory (memory.go): process-lifetime only, used for tests and --store=memory.
//   - sqlite (sqlite.go): durable, single file.
//
// Statistics follow a load-or-create lifecycle: LoadStats returns stored totals,
// or creates and saves an empty record the first time.

package store

import (
	"context"
	"time"

	"github.com/robalobadob/wordle/apps/cli/internal/game"
	"github.com/robalobadob/wordle/apps/cli/internal/stats"
)

// GameRecord is one finished session as kept in the history.
type GameRecord struct {
	ID         string
	Target     string
	WordLength int
	Mode       game.Mode
	Status     string // "won" | "lost" | "timeout"
	Guesses    int
	Score      int
	ElapsedMs  int64
	DailyDate  string // "YYYY-MM-DD" for daily games, empty otherwise
	StartedAt  time.Time
	FinishedAt time.Time
}

// RecordFromSession builds the history row for a finished session.
func RecordFromSession(s *game.Session, dailyDate string) GameRecord {
	return GameRecord{
		ID:         s.ID,
		Target:     s.Target,
		WordLength: s.WordLength,
		Mode:       s.Mode,
		Status:     s.State(),
		Guesses:    len(s.Guesses),
		Score:      s.Score,
		ElapsedMs:  s.Elapsed().Milliseconds(),
		DailyDate:  dailyDate,
		StartedAt:  s.StartTime.UTC(),
		FinishedAt: time.Now().UTC(),
	}
}

// Store defines the persistence interface.
type Store interface {
	// LoadStats returns the stored totals, creating an empty record if none exists.
	LoadStats(ctx context.Context) (*stats.Stats, error)

	// SaveStats replaces the stored totals.
	SaveStats(ctx context.Context, st *stats.Stats) error

	// SaveGame appends a finished game to the history.
	SaveGame(ctx context.Context, r GameRecord) error

	// RecentGames returns up to limit games, newest first.
	RecentGames(ctx context.Context, limit int) ([]GameRecord, error)

	// DailyPlayed reports whether a daily game was already finished for date.
	DailyPlayed(ctx context.Context, date string) (bool, error)

	Close() error
}

const defaultRecentLimit = 20
