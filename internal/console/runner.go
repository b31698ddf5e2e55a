// internal/console/runner.go
//
// Interactive loop for one game.
// Flow:
//   1. Ask for a word length within the dictionary's range (unless preset).
//   2. Ask for a mode 1/2/3 (unless preset).
//   3. Read guesses and print feedback until the session ends.
//   4. Reveal the word on a loss or time-out, then print score and stats.
//
// Input errors re-prompt; only EOF or context cancellation stop early, and
// cancellation is honoured even while waiting for a line.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cli/internal/game"
	"github.com/robalobadob/wordle/apps/cli/internal/service"
)

// ErrInputClosed is returned when input ends before the game does.
var ErrInputClosed = errors.New("input closed")

// Options preset choices that would otherwise be prompted for.
type Options struct {
	Length int       // 0 = ask
	Mode   game.Mode // 0 = ask
	Daily  bool
	Plain  bool             // no colors, bare [X][O][_] feedback
	Now    func() time.Time // daily date source, time.Now when nil
}

// Runner plays one game over In/Out.
type Runner struct {
	In      io.Reader
	Out     io.Writer
	Service *service.Service
	Options Options

	lines  <-chan inputLine
	styles styles
}

// inputLine is one line read from In, or the read error that ended input.
type inputLine struct {
	text string
	err  error
}

// Run plays a full game. It returns nil once the game is over and the
// statistics are printed.
func (r *Runner) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	r.lines = readLines(r.In, done)
	r.styles = newStyles(r.Out, r.Options.Plain)

	minLen, err := r.Service.MinWordLength()
	if err != nil {
		return err
	}
	maxLen, err := r.Service.MaxWordLength()
	if err != nil {
		return err
	}

	length := r.Options.Length
	if length != 0 && (length < minLen || length > maxLen) {
		r.printf("Invalid length. Enter a whole number between %d and %d.\n", minLen, maxLen)
		length = 0
	}
	if length == 0 {
		if length, err = r.askLength(ctx, minLen, maxLen); err != nil {
			return err
		}
	}

	mode := r.Options.Mode
	if mode == 0 {
		if mode, err = r.askMode(ctx); err != nil {
			return err
		}
	}

	sess, err := r.start(ctx, length, mode)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("Mode: %s, word length: %d", mode.Name(), length)
	if r.Options.Daily {
		header += " (daily)"
	}
	r.println(r.styles.heading(header))

	if err := r.play(ctx, sess); err != nil {
		return err
	}

	r.printf("Score: %d\n", sess.Score)
	r.println("")
	RenderStats(r.Out, r.Service.Stats(), r.Options.Plain)
	return nil
}

func (r *Runner) start(ctx context.Context, length int, mode game.Mode) (*game.Session, error) {
	if !r.Options.Daily {
		return r.Service.StartNewGame(length, mode)
	}
	now := time.Now
	if r.Options.Now != nil {
		now = r.Options.Now
	}
	return r.Service.StartDaily(ctx, length, mode, now())
}

func (r *Runner) play(ctx context.Context, sess *game.Session) error {
	for !sess.GameOver {
		r.printf("Attempts left: %d. Enter a word (%d letters): ", sess.RemainingAttempts, sess.WordLength)
		guess, err := r.readLine(ctx)
		if err != nil {
			return err
		}

		fb, err := r.Service.CheckGuess(ctx, sess, guess)
		switch {
		case errors.Is(err, game.ErrTimeExpired):
			r.println(r.styles.warn("Time is up!"))
			r.printf("The word was: %s\n", sess.Target)
			if err != game.ErrTimeExpired {
				r.persistWarning(err)
			}
			return nil
		case errors.Is(err, game.ErrInvalidGuess), errors.Is(err, service.ErrNotInWordList):
			r.println(r.styles.warn(err.Error()))
			continue
		case errors.Is(err, game.ErrGameOver):
			return nil
		case err != nil && fb == nil:
			return err
		}

		r.println(r.styles.feedback(sess.Guesses[len(sess.Guesses)-1], fb))
		r.persistWarning(err)

		switch {
		case sess.Won:
			r.printf("You won! The word was: %s\n", sess.Target)
		case sess.GameOver:
			r.printf("You lost! The word was: %s\n", sess.Target)
		}
	}
	return nil
}

// persistWarning reports a failed save without ending the game.
func (r *Runner) persistWarning(err error) {
	if err == nil {
		return
	}
	log.Warn().Err(err).Msg("could not save results")
	r.println(r.styles.warn("Warning: results could not be saved."))
}

func (r *Runner) askLength(ctx context.Context, minLen, maxLen int) (int, error) {
	for {
		r.printf("Choose the word length (between %d and %d): ", minLen, maxLen)
		line, err := r.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			r.println("Invalid input. Please enter a whole number.")
			continue
		}
		if n < minLen || n > maxLen {
			r.printf("Invalid length. Enter a whole number between %d and %d.\n", minLen, maxLen)
			continue
		}
		return n, nil
	}
}

func (r *Runner) askMode(ctx context.Context) (game.Mode, error) {
	for {
		r.println("Choose a game mode:")
		r.println("1 - Standard (6 attempts)")
		r.println("2 - Timed (60s)")
		r.println("3 - Practice (10 attempts)")
		line, err := r.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			r.println("Invalid input. Please enter 1, 2 or 3.")
			continue
		}
		if n < 1 || n > 3 {
			r.println("Invalid choice. Please choose 1, 2 or 3.")
			continue
		}
		return game.Mode(n), nil
	}
}

// readLines scans in on its own goroutine so a blocked read never delays
// cancellation. The channel closes at EOF; a read error is sent first.
// The goroutine stops sending once done is closed.
func readLines(in io.Reader, done <-chan struct{}) <-chan inputLine {
	ch := make(chan inputLine)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- inputLine{text: sc.Text()}:
			case <-done:
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case ch <- inputLine{err: err}:
			case <-done:
			}
		}
	}()
	return ch
}

// readLine returns the next trimmed line, ErrInputClosed at EOF, or the
// context error as soon as ctx is cancelled.
func (r *Runner) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		r.println("")
		return "", ctx.Err()
	case l, ok := <-r.lines:
		if !ok {
			r.println("")
			return "", ErrInputClosed
		}
		if l.err != nil {
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}

func (r *Runner) printf(format string, args ...any) { fmt.Fprintf(r.Out, format, args...) }

func (r *Runner) println(s string) { fmt.Fprintln(r.Out, s) }
