package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/cli/internal/game"
	"github.com/robalobadob/wordle/apps/cli/internal/stats"
	"github.com/robalobadob/wordle/apps/cli/internal/store"
	"github.com/robalobadob/wordle/apps/cli/internal/words"
)

// failingStore accepts loads but refuses every write.
type failingStore struct{ store.Store }

func (failingStore) SaveStats(context.Context, *stats.Stats) error {
	return errors.New("disk full")
}

func newService(t *testing.T, st store.Store, opts ...Option) *Service {
	t.Helper()
	dict := words.New([]string{"apple", "alert", "crane", "level", "cat"})
	svc, err := New(context.Background(), dict, st, opts...)
	require.NoError(t, err)
	return svc
}

func TestStartNewGame(t *testing.T) {
	svc := newService(t, store.NewMemoryStore())

	sess, err := svc.StartNewGame(3, game.ModePractice)
	require.NoError(t, err)
	assert.Equal(t, "CAT", sess.Target)
	assert.Equal(t, 3, sess.WordLength)
	assert.Equal(t, game.ModePractice, sess.Mode)
	assert.Equal(t, 10, sess.RemainingAttempts)

	_, err = svc.StartNewGame(9, game.ModeStandard)
	assert.ErrorIs(t, err, words.ErrNoWordOfLength)
}

func TestMinMaxWordLength(t *testing.T) {
	svc := newService(t, store.NewMemoryStore())

	lo, err := svc.MinWordLength()
	require.NoError(t, err)
	hi, err := svc.MaxWordLength()
	require.NoError(t, err)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 5, hi)

	empty, err := New(context.Background(), words.New(nil), store.NewMemoryStore())
	require.NoError(t, err)
	_, err = empty.MinWordLength()
	assert.ErrorIs(t, err, words.ErrEmptyDictionary)
}

func TestCheckGuessWinRecordsOnce(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(t, st)
	sess := game.NewSession("APPLE", game.ModeStandard)

	fb, err := svc.CheckGuess(ctx, sess, "alert")
	require.NoError(t, err)
	assert.Equal(t, "[X][O][O][_][_]", fb.String())
	assert.Zero(t, svc.Stats().TotalGames)

	fb, err = svc.CheckGuess(ctx, sess, "APPLE")
	require.NoError(t, err)
	assert.Equal(t, "[X][X][X][X][X]", fb.String())
	assert.True(t, sess.Won)
	assert.Equal(t, 900, sess.Score)

	_, err = svc.CheckGuess(ctx, sess, "APPLE")
	assert.ErrorIs(t, err, game.ErrGameOver)

	agg := svc.Stats()
	assert.Equal(t, 1, agg.TotalGames)
	assert.Equal(t, 1, agg.Wins)
	assert.Equal(t, 2, agg.TotalAttempts)
	assert.Equal(t, 900, agg.TotalScore)

	saved, err := st.LoadStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.TotalGames)

	games, err := svc.RecentGames(ctx, 10)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, sess.ID, games[0].ID)
	assert.Equal(t, "won", games[0].Status)
	assert.Empty(t, games[0].DailyDate)
}

func TestCheckGuessLossResetsStreak(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemoryStore())

	win := game.NewSession("APPLE", game.ModeStandard)
	_, err := svc.CheckGuess(ctx, win, "APPLE")
	require.NoError(t, err)

	loss := game.NewSession("APPLE", game.ModeStandard)
	loss.RemainingAttempts = 1
	_, err = svc.CheckGuess(ctx, loss, "CRANE")
	require.NoError(t, err)
	assert.True(t, loss.GameOver)
	assert.False(t, loss.Won)

	agg := svc.Stats()
	assert.Equal(t, 2, agg.TotalGames)
	assert.Equal(t, 1, agg.Wins)
	assert.Equal(t, 0, agg.CurrentStreak)
	assert.Equal(t, 1, agg.BestStreak)
}

func TestCheckGuessInvalidDoesNotRecord(t *testing.T) {
	svc := newService(t, store.NewMemoryStore())
	sess := game.NewSession("APPLE", game.ModeStandard)

	_, err := svc.CheckGuess(context.Background(), sess, "APP")
	assert.ErrorIs(t, err, game.ErrInvalidGuess)
	assert.Equal(t, 6, sess.RemainingAttempts)
	assert.Zero(t, svc.Stats().TotalGames)
}

func TestCheckGuessTimeExpiredRecordsLoss(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := newService(t, st)

	sess := game.NewSession("APPLE", game.ModeTimed)
	sess.StartTime = time.Now().Add(-2 * time.Minute)

	fb, err := svc.CheckGuess(ctx, sess, "ALERT")
	assert.Nil(t, fb)
	assert.ErrorIs(t, err, game.ErrTimeExpired)
	assert.True(t, sess.GameOver)
	assert.Zero(t, sess.Score)

	agg := svc.Stats()
	assert.Equal(t, 1, agg.TotalGames)
	assert.Zero(t, agg.Wins)
	assert.Zero(t, agg.TotalAttempts)

	games, err := st.RecentGames(ctx, 1)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "timeout", games[0].Status)

	_, err = svc.CheckGuess(ctx, sess, "ALERT")
	assert.ErrorIs(t, err, game.ErrGameOver)
	assert.Equal(t, 1, svc.Stats().TotalGames)
}

func TestStrictMode(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemoryStore(), WithStrict(true))
	sess := game.NewSession("APPLE", game.ModeStandard)

	_, err := svc.CheckGuess(ctx, sess, "ZZZZZ")
	assert.ErrorIs(t, err, ErrNotInWordList)
	assert.Equal(t, 6, sess.RemainingAttempts)

	// Malformed guesses still report the length problem first.
	_, err = svc.CheckGuess(ctx, sess, "ZZ")
	assert.ErrorIs(t, err, game.ErrInvalidGuess)

	fb, err := svc.CheckGuess(ctx, sess, "crane")
	require.NoError(t, err)
	assert.Len(t, fb, 5)
	assert.Equal(t, 5, sess.RemainingAttempts)
}

func TestStrictModeOffAcceptsAnyLetters(t *testing.T) {
	svc := newService(t, store.NewMemoryStore())
	sess := game.NewSession("APPLE", game.ModeStandard)

	fb, err := svc.CheckGuess(context.Background(), sess, "ZZZZZ")
	require.NoError(t, err)
	assert.Equal(t, "[_][_][_][_][_]", fb.String())
}

func TestStartDailyOncePerDate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemoryStore(), WithDailySalt("pepper"))
	day := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	sess, err := svc.StartDaily(ctx, 5, game.ModeStandard, day)
	require.NoError(t, err)
	assert.Contains(t, []string{"APPLE", "ALERT", "CRANE", "LEVEL"}, sess.Target)

	// Starting again before finishing gives the same word.
	again, err := svc.StartDaily(ctx, 5, game.ModeStandard, day)
	require.NoError(t, err)
	assert.Equal(t, sess.Target, again.Target)

	_, err = svc.CheckGuess(ctx, sess, sess.Target)
	require.NoError(t, err)

	_, err = svc.StartDaily(ctx, 5, game.ModeStandard, day)
	assert.ErrorIs(t, err, ErrDailyPlayed)

	games, err := svc.RecentGames(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", games[0].DailyDate)

	_, err = svc.StartDaily(ctx, 5, game.ModeStandard, day.AddDate(0, 0, 1))
	assert.NoError(t, err)
}

func TestStartDailyNoWordOfLength(t *testing.T) {
	svc := newService(t, store.NewMemoryStore())

	_, err := svc.StartDaily(context.Background(), 8, game.ModeStandard, time.Now())
	assert.ErrorIs(t, err, words.ErrNoWordOfLength)
}

func TestPersistFailureKeepsFeedback(t *testing.T) {
	svc := newService(t, failingStore{store.NewMemoryStore()})
	sess := game.NewSession("APPLE", game.ModeStandard)

	fb, err := svc.CheckGuess(context.Background(), sess, "APPLE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, fb.Solved())
	assert.Equal(t, 1, svc.Stats().TotalGames)
}

func TestStatsSnapshotIsCopy(t *testing.T) {
	svc := newService(t, store.NewMemoryStore())
	snap := svc.Stats()
	snap.TotalGames = 99
	assert.Zero(t, svc.Stats().TotalGames)
}
