// internal/words/words.go
//
// Provides the dictionary the game draws target words from.
//
// Responsibilities:
//   - Load a word list from any reader, a file (WORDS_FILE) or the embedded default.
//   - Normalize every entry once at load time (NFC, then uppercase).
//   - Answer length queries: exact-length filtering, min/max length.
//   - Pick a uniformly random word of a given length.
//
// Word list format:
//   - One word per line; surrounding whitespace is trimmed.
//   - Blank lines and lines starting with '#' are skipped.
//
// Lengths are counted in runes so accented Latin letters count as one letter.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/wordle/apps/cli/assets"
)

var (
	// ErrLoad is returned when the word source cannot be read.
	ErrLoad = errors.New("words: cannot load word list")
	// ErrEmptyDictionary is returned by length queries on an empty dictionary.
	ErrEmptyDictionary = errors.New("words: dictionary is empty")
	// ErrNoWordOfLength is returned when no entry has the requested length.
	ErrNoWordOfLength = errors.New("words: no word of requested length")
)

// Dictionary is an ordered, read-only list of uppercase candidate words.
type Dictionary struct {
	words []string
	set   map[string]struct{}
}

// New builds a dictionary from already loaded lines, normalizing each entry.
// Blank entries are dropped, as are entries with anything but letters
// ("porte-clé", "l'île"): no guess could ever match them. Order is preserved.
func New(list []string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	skipped := 0
	for _, w := range list {
		w = Normalize(w)
		if w == "" {
			continue
		}
		if !IsLetters(w) {
			skipped++
			continue
		}
		d.words = append(d.words, w)
		d.set[w] = struct{}{}
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Int("kept", len(d.words)).Msg("dropped word list entries with non-letters")
	}
	return d
}

// IsLetters reports whether s is non-empty and made only of ASCII letters or
// Latin-1 accented letters (À-Ö, Ø-ö, ø-ÿ, plus Ÿ, the uppercase of ÿ).
// Guesses and dictionary entries are checked with the same alphabet, so
// every dictionary word is a valid guess in both cases.
func IsLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= 'À' && r <= 'Ö', r >= 'Ø' && r <= 'ö', r >= 'ø' && r <= 'ÿ':
		case r == 'Ÿ':
		default:
			return false
		}
	}
	return true
}

// Load reads one word per line from r.
func Load(r io.Reader) (*Dictionary, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return New(lines), nil
}

// LoadFile loads a dictionary from a file on disk.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return Load(f)
}

// Default loads the dictionary embedded in the binary.
func Default() (*Dictionary, error) {
	f, err := assets.OpenWords()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return Load(f)
}

// Compose trims w and composes accents (NFC), so "é" is a single rune
// whether the source used the precomposed or the combining form.
func Compose(w string) string {
	return norm.NFC.String(strings.TrimSpace(w))
}

// Normalize composes and uppercases a word.
func Normalize(w string) string {
	return strings.ToUpper(Compose(w))
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.words) }

// Words returns a copy of all entries in load order.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.words...)
}

// WordsOfLength returns the entries whose rune length is exactly n,
// in dictionary order. The result is empty, not nil-error, when none match.
func (d *Dictionary) WordsOfLength(n int) []string {
	return lo.Filter(d.words, func(w string, _ int) bool {
		return utf8.RuneCountInString(w) == n
	})
}

// MinLength returns the shortest word length.
func (d *Dictionary) MinLength() (int, error) {
	if len(d.words) == 0 {
		return 0, ErrEmptyDictionary
	}
	return lo.Min(d.lengths()), nil
}

// MaxLength returns the longest word length.
func (d *Dictionary) MaxLength() (int, error) {
	if len(d.words) == 0 {
		return 0, ErrEmptyDictionary
	}
	return lo.Max(d.lengths()), nil
}

// Lengths returns the distinct word lengths present, ascending.
func (d *Dictionary) Lengths() []int {
	out := lo.Uniq(d.lengths())
	slices.Sort(out)
	return out
}

func (d *Dictionary) lengths() []int {
	return lo.Map(d.words, func(w string, _ int) int {
		return utf8.RuneCountInString(w)
	})
}

// PickRandom returns a uniformly random word of length n.
func (d *Dictionary) PickRandom(n int) (string, error) {
	matches := d.WordsOfLength(n)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %d", ErrNoWordOfLength, n)
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(matches))))
	if err != nil {
		return "", fmt.Errorf("words: random pick: %w", err)
	}
	return matches[nBig.Int64()], nil
}

// Contains reports whether w (in any case or composition) is an entry.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[Normalize(w)]
	return ok
}
