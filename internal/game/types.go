// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Feedback: the ordered marks for one guess.
//   - Mode: play mode and its attempt/time configuration.
//   - Session: state for a single in-progress or finished round.

package game

import (
	"strings"
	"time"
)

// Mark represents the evaluation result for a single letter in a guess.
// The value is the token shown to the player:
//   - "[X]": letter is correct and in the correct position.
//   - "[O]": letter exists in the target but in a different position.
//   - "[_]": letter is not in the target (or all its occurrences are used up).
type Mark string

const (
	MarkHit     Mark = "[X]"
	MarkPresent Mark = "[O]"
	MarkMiss    Mark = "[_]"
)

// Feedback is the per-position result of one guess, in guess order.
type Feedback []Mark

// String concatenates the tokens with no separator, e.g. "[X][O][_]".
func (f Feedback) String() string {
	var b strings.Builder
	b.Grow(len(f) * 3)
	for _, m := range f {
		b.WriteString(string(m))
	}
	return b.String()
}

// Solved reports whether every mark is a hit.
func (f Feedback) Solved() bool {
	if len(f) == 0 {
		return false
	}
	for _, m := range f {
		if m != MarkHit {
			return false
		}
	}
	return true
}

// Mode selects the attempt budget and time limit of a session.
// Values other than the named ones play exactly like ModeStandard.
type Mode int

const (
	ModeStandard Mode = 1
	ModeTimed    Mode = 2
	ModePractice Mode = 3
)

const (
	defaultAttempts  = 6
	practiceAttempts = 10
	timedLimitSecs   = 60
)

// Config returns the starting attempts and time limit (seconds, 0 = none).
func (m Mode) Config() (attempts, timeLimit int) {
	switch m {
	case ModeTimed:
		return defaultAttempts, timedLimitSecs
	case ModePractice:
		return practiceAttempts, 0
	default:
		return defaultAttempts, 0
	}
}

// Name is the display name of the mode.
func (m Mode) Name() string {
	switch m {
	case ModeStandard:
		return "Standard"
	case ModeTimed:
		return "Timed"
	case ModePractice:
		return "Practice"
	default:
		return "Unknown"
	}
}

// Session holds the state of a single round.
type Session struct {
	ID                string    // Unique session identifier (UUID v4).
	Target            string    // The hidden word (uppercase, immutable).
	WordLength        int       // Letters per word (runes in Target).
	Mode              Mode      // Play mode as chosen by the player.
	RemainingAttempts int       // Guesses left; never negative.
	TimeLimit         int       // Seconds allowed, 0 means unlimited.
	StartTime         time.Time // Captured at creation.
	Guesses           []string  // Normalized guesses in submission order.
	GameOver          bool      // True once the round is terminal.
	Won               bool      // True if the round ended with a solve.
	TimedOut          bool      // True if the round ended on the time limit.
	Score             int       // 0 until the round ends.

	clock func() time.Time
}

// State reports a coarse string representation of the session state.
func (s *Session) State() string {
	switch {
	case s.Won:
		return "won"
	case s.TimedOut:
		return "timeout"
	case s.GameOver:
		return "lost"
	default:
		return "playing"
	}
}

func (s *Session) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}

// Elapsed returns the time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.StartTime)
}

// ElapsedSeconds returns whole seconds since the session started.
func (s *Session) ElapsedSeconds() int {
	return int(s.Elapsed() / time.Second)
}

// TimeUp reports whether a timed session has reached its limit.
func (s *Session) TimeUp() bool {
	if s.TimeLimit <= 0 {
		return false
	}
	return s.ElapsedSeconds() >= s.TimeLimit
}

// AttemptsUsed is the number of evaluated guesses.
func (s *Session) AttemptsUsed() int { return len(s.Guesses) }
