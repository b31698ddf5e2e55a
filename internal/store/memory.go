// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Characteristics:
//   - Keeps one stats record and an append-only history slice.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits.
//   - Values are copied in and out so callers never share maps with the store.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/wordle/apps/cli/internal/stats"
)

// memory is an in-memory Store implementation.
type memory struct {
	mu    sync.RWMutex // guards everything below
	stats *stats.Stats
	games []GameRecord // insertion order
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

// LoadStats returns a copy of the stored totals, creating them on first use.
func (m *memory) LoadStats(ctx context.Context) (*stats.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		m.stats = stats.New()
	}
	return m.stats.Clone(), nil
}

// SaveStats stores a copy of st.
func (m *memory) SaveStats(ctx context.Context, st *stats.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = st.Clone()
	return nil
}

// SaveGame appends r to the history.
func (m *memory) SaveGame(ctx context.Context, r GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, r)
	return nil
}

// RecentGames returns the newest games first.
func (m *memory) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]GameRecord, 0, min(limit, len(m.games)))
	for i := len(m.games) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.games[i])
	}
	return out, nil
}

// DailyPlayed scans the history for a daily game on date.
func (m *memory) DailyPlayed(ctx context.Context, date string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.games {
		if g.DailyDate != "" && g.DailyDate == date {
			return true, nil
		}
	}
	return false, nil
}

func (m *memory) Close() error { return nil }
