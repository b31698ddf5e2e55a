// internal/service/service.go
//
// Game service used by the console loop.
// Responsibilities:
//   - Start sessions (random or daily word) from the dictionary.
//   - Run guesses through the engine, with optional dictionary-only guesses.
//   - On the terminal transition, fold the session into the stats once and
//     persist both the stats and a history row.
//
// The service owns the statistics for the lifetime of the process: they are
// loaded (or created) by New and saved after every finished session.

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cli/internal/daily"
	"github.com/robalobadob/wordle/apps/cli/internal/game"
	"github.com/robalobadob/wordle/apps/cli/internal/stats"
	"github.com/robalobadob/wordle/apps/cli/internal/store"
	"github.com/robalobadob/wordle/apps/cli/internal/words"
)

var (
	// ErrNotInWordList is returned in strict mode for well-formed guesses
	// missing from the dictionary. No attempt is used.
	ErrNotInWordList = errors.New("not in word list")
	// ErrDailyPlayed is returned when today's daily game is already finished.
	ErrDailyPlayed = errors.New("daily challenge already played today")
)

// Service bundles the dictionary, the store and the running statistics.
type Service struct {
	dict   *words.Dictionary
	store  store.Store
	stats  *stats.Stats
	strict bool
	salt   string
	daily  map[string]string // session ID → daily date key
}

// Option configures a Service.
type Option func(*Service)

// WithStrict rejects guesses that are not dictionary words.
func WithStrict(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// WithDailySalt sets the salt for the daily word.
func WithDailySalt(salt string) Option {
	return func(s *Service) {
		if salt != "" {
			s.salt = salt
		}
	}
}

// New loads (or creates) the stored statistics and returns a ready service.
func New(ctx context.Context, dict *words.Dictionary, st store.Store, opts ...Option) (*Service, error) {
	agg, err := st.LoadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	s := &Service{
		dict:  dict,
		store: st,
		stats: agg,
		salt:  daily.DefaultSalt,
		daily: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MinWordLength is the shortest word length in the dictionary.
func (s *Service) MinWordLength() (int, error) { return s.dict.MinLength() }

// MaxWordLength is the longest word length in the dictionary.
func (s *Service) MaxWordLength() (int, error) { return s.dict.MaxLength() }

// StartNewGame opens a session with a random word of the given length.
func (s *Service) StartNewGame(length int, mode game.Mode) (*game.Session, error) {
	sess, err := game.Start(s.dict, length, mode)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("session", sess.ID).Int("length", length).Str("mode", mode.Name()).Msg("new game")
	return sess, nil
}

// StartDaily opens today's daily session. The word depends only on the UTC
// date, the salt and the dictionary, and each date can be finished once.
func (s *Service) StartDaily(ctx context.Context, length int, mode game.Mode, now time.Time) (*game.Session, error) {
	date := daily.DateKey(now)
	played, err := s.store.DailyPlayed(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check daily: %w", err)
	}
	if played {
		return nil, fmt.Errorf("%w (%s)", ErrDailyPlayed, date)
	}
	word := daily.Pick(s.dict.WordsOfLength(length), now, s.salt)
	if word == "" {
		return nil, fmt.Errorf("%w: %d", words.ErrNoWordOfLength, length)
	}
	sess := game.NewSession(word, mode)
	s.daily[sess.ID] = date
	log.Debug().Str("session", sess.ID).Str("date", date).Int("length", length).Msg("new daily game")
	return sess, nil
}

// CheckGuess evaluates a guess against sess.
//
// Errors from the engine are returned unchanged (see game.Session.Evaluate).
// A time-expired session is recorded as a loss with score 0 before
// game.ErrTimeExpired is returned. Any other terminal transition is recorded
// before the feedback is returned. A persistence failure is returned
// alongside the feedback; the in-memory stats are already updated.
func (s *Service) CheckGuess(ctx context.Context, sess *game.Session, guess string) (game.Feedback, error) {
	if s.strict && !sess.GameOver && !sess.TimeUp() && sess.Validate(guess) == nil && !s.dict.Contains(guess) {
		return nil, fmt.Errorf("%w: %s", ErrNotInWordList, words.Normalize(guess))
	}

	fb, err := sess.Evaluate(guess)
	if errors.Is(err, game.ErrTimeExpired) {
		if ferr := s.finish(ctx, sess); ferr != nil {
			return nil, errors.Join(err, ferr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if sess.GameOver {
		if ferr := s.finish(ctx, sess); ferr != nil {
			return fb, ferr
		}
	}
	return fb, nil
}

// finish folds a terminal session into the stats and persists it.
func (s *Service) finish(ctx context.Context, sess *game.Session) error {
	s.stats.Record(sess)
	date := s.daily[sess.ID]
	delete(s.daily, sess.ID)

	log.Info().
		Str("session", sess.ID).
		Str("state", sess.State()).
		Int("guesses", len(sess.Guesses)).
		Int("score", sess.Score).
		Msg("game finished")

	if err := s.store.SaveStats(ctx, s.stats); err != nil {
		log.Warn().Err(err).Msg("save stats")
		return fmt.Errorf("save stats: %w", err)
	}
	if err := s.store.SaveGame(ctx, store.RecordFromSession(sess, date)); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("save game")
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// Stats returns a snapshot of the running statistics.
func (s *Service) Stats() *stats.Stats { return s.stats.Clone() }

// RecentGames returns the newest finished games from the store.
func (s *Service) RecentGames(ctx context.Context, limit int) ([]store.GameRecord, error) {
	return s.store.RecentGames(ctx, limit)
}
