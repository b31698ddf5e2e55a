// internal/game/engine.go
//
// Core game engine for a single round.
// Responsibilities:
//   - Create sessions from a word source, configured per mode.
//   - Validate and apply guesses (length, letters, time limit).
//   - Score guesses using the two-pass algorithm.
//   - Track state transitions: playing → won/lost/timeout.
//
// Notes:
//   - Words come from the words package (or anything implementing WordPicker).
//   - A finished session rejects further guesses, so the terminal transition
//     (and the score computed with it) happens exactly once.

package game

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/cli/internal/words"
)

var (
	// ErrInvalidGuess matches every *InvalidGuessError.
	ErrInvalidGuess = errors.New("invalid guess")
	// ErrTimeExpired is returned when a timed session runs out of time.
	// The session is terminal when this is returned.
	ErrTimeExpired = errors.New("time is up")
	// ErrGameOver is returned for guesses against a finished session.
	ErrGameOver = errors.New("game finished")
)

// InvalidGuessError reports a guess of the wrong length or with non-letters.
type InvalidGuessError struct {
	Length int // required number of letters
}

func (e *InvalidGuessError) Error() string {
	return fmt.Sprintf("invalid guess (must be %d letters)", e.Length)
}

// Is lets errors.Is(err, ErrInvalidGuess) match.
func (e *InvalidGuessError) Is(target error) bool { return target == ErrInvalidGuess }

// WordPicker supplies target words; *words.Dictionary implements it.
type WordPicker interface {
	PickRandom(length int) (string, error)
}

// Start picks a random word of the given length and opens a session.
// Errors from the picker (words.ErrNoWordOfLength) are returned unchanged.
func Start(p WordPicker, length int, mode Mode) (*Session, error) {
	target, err := p.PickRandom(length)
	if err != nil {
		return nil, err
	}
	return NewSession(target, mode), nil
}

// NewSession opens a session around a known target word.
func NewSession(target string, mode Mode) *Session {
	target = words.Normalize(target)
	attempts, limit := mode.Config()
	return &Session{
		ID:                uuid.NewString(),
		Target:            target,
		WordLength:        utf8.RuneCountInString(target),
		Mode:              mode,
		RemainingAttempts: attempts,
		TimeLimit:         limit,
		StartTime:         time.Now(),
		Guesses:           []string{},
	}
}

// Validate checks a raw guess without touching the session.
func (s *Session) Validate(raw string) error {
	w := words.Compose(raw)
	if utf8.RuneCountInString(w) != s.WordLength || !words.IsLetters(w) {
		return &InvalidGuessError{Length: s.WordLength}
	}
	return nil
}

// Evaluate validates and scores a guess, mutating the session.
//
// Order of checks:
//   - Finished session → ErrGameOver, nothing changes.
//   - Wrong length or non-letter → *InvalidGuessError, no attempt used.
//   - Timed session past its limit → session ends, ErrTimeExpired, no attempt used.
//
// State transitions after a valid guess:
//   - All marks hit → GameOver, Won.
//   - Else remaining attempts reach 0 → GameOver (loss).
//
// The score is computed on the terminal transition.
func (s *Session) Evaluate(raw string) (Feedback, error) {
	if s.GameOver || s.RemainingAttempts <= 0 {
		return nil, ErrGameOver
	}
	if err := s.Validate(raw); err != nil {
		return nil, err
	}
	if s.TimeUp() {
		s.GameOver, s.TimedOut = true, true
		s.Score = 0
		return nil, ErrTimeExpired
	}

	guess := words.Normalize(raw)
	marks := scoreGuess(s.Target, guess)

	s.Guesses = append(s.Guesses, guess)
	s.RemainingAttempts--

	if marks.Solved() {
		s.GameOver, s.Won = true, true
	} else if s.RemainingAttempts == 0 {
		s.GameOver = true
	}
	if s.GameOver {
		s.UpdateScore()
	}
	return marks, nil
}

// scoreGuess implements the two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count the target letters left over at non-hit positions.
//
// Pass 2:
//   - For each non-hit guess letter: if a leftover count remains for it,
//     mark Present and decrement; otherwise mark Miss.
//
// Pass 1 must finish first so a later exact match is never spent on an
// earlier Present mark.
func scoreGuess(target, guess string) Feedback {
	targetRunes := []rune(target)
	guessRunes := []rune(guess)
	n := len(guessRunes)
	res := make(Feedback, n)

	counts := make(map[rune]int, n)

	for i := 0; i < n; i++ {
		if guessRunes[i] == targetRunes[i] {
			res[i] = MarkHit
		} else {
			counts[targetRunes[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		r := guessRunes[i]
		if counts[r] > 0 {
			res[i] = MarkPresent
			counts[r]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}
