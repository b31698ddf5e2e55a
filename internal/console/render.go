// internal/console/render.go
//
// Terminal output: feedback tiles, the statistics block and the history table.
// Colors go through a lipgloss renderer bound to the output writer, so
// non-terminal writers (pipes, tests) get plain text automatically.

package console

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/cli/internal/game"
	"github.com/robalobadob/wordle/apps/cli/internal/stats"
	"github.com/robalobadob/wordle/apps/cli/internal/store"
)

var (
	colorHit     = lipgloss.Color("#538D4E")
	colorPresent = lipgloss.Color("#C9B458")
	colorMiss    = lipgloss.Color("#3A3A3C")
	colorAccent  = lipgloss.Color("#20B9B4")
	colorMuted   = lipgloss.Color("#787C7E")
	colorError   = lipgloss.Color("#E74C3C")
)

const barWidth = 20

// styles is the palette bound to one output.
type styles struct {
	plain   bool
	hit     lipgloss.Style
	present lipgloss.Style
	miss    lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
	box     lipgloss.Style
}

func newStyles(w io.Writer, plain bool) styles {
	r := lipgloss.NewRenderer(w)
	tile := r.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
	return styles{
		plain:   plain,
		hit:     tile.Background(colorHit),
		present: tile.Background(colorPresent),
		miss:    tile.Background(colorMiss),
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		muted:   r.NewStyle().Foreground(colorMuted),
		errText: r.NewStyle().Foreground(colorError),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1),
	}
}

// feedback renders one evaluated guess. Plain output is the bare marker
// string; otherwise colored letter tiles followed by the markers.
func (s styles) feedback(guess string, fb game.Feedback) string {
	if s.plain {
		return fb.String()
	}
	letters := []rune(guess)
	tiles := make([]string, 0, len(fb))
	for i, m := range fb {
		ch := " "
		if i < len(letters) {
			ch = string(letters[i])
		}
		switch m {
		case game.MarkHit:
			tiles = append(tiles, s.hit.Render(ch))
		case game.MarkPresent:
			tiles = append(tiles, s.present.Render(ch))
		default:
			tiles = append(tiles, s.miss.Render(ch))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "  " + s.muted.Render(fb.String())
}

func (s styles) heading(text string) string {
	if s.plain {
		return text
	}
	return s.title.Render(text)
}

func (s styles) warn(text string) string {
	if s.plain {
		return text
	}
	return s.errText.Render(text)
}

// RenderStats writes the statistics block.
func RenderStats(w io.Writer, st *stats.Stats, plain bool) {
	s := newStyles(w, plain)

	var b strings.Builder
	fmt.Fprintf(&b, "Games played   : %d\n", st.TotalGames)
	fmt.Fprintf(&b, "Wins           : %d (%.0f%%)\n", st.Wins, st.WinRate()*100)
	fmt.Fprintf(&b, "Current streak : %d\n", st.CurrentStreak)
	fmt.Fprintf(&b, "Best streak    : %d\n", st.BestStreak)
	fmt.Fprintf(&b, "Avg attempts   : %.2f\n", st.AverageAttempts())
	fmt.Fprintf(&b, "Avg score      : %.2f", st.AverageScore())

	if len(st.Distribution) > 0 {
		b.WriteString("\nDistribution:")
		keys := lo.Keys(st.Distribution)
		slices.Sort(keys)
		top := lo.Max(lo.Values(st.Distribution))
		for _, k := range keys {
			n := st.Distribution[k]
			bar := strings.Repeat("#", max(1, n*barWidth/max(top, 1)))
			fmt.Fprintf(&b, "\n  %2d | %s %d", k, bar, n)
		}
	}

	if plain {
		fmt.Fprintln(w, "=== Statistics ===")
		fmt.Fprintln(w, b.String())
		return
	}
	fmt.Fprintln(w, s.box.Render(s.heading("Statistics")+"\n"+b.String()))
}

// RenderHistory writes recent games, newest first.
func RenderHistory(w io.Writer, games []store.GameRecord, plain bool) {
	s := newStyles(w, plain)
	if len(games) == 0 {
		fmt.Fprintln(w, "No games played yet.")
		return
	}
	fmt.Fprintln(w, s.heading(fmt.Sprintf("%-16s  %-10s  %-8s  %-7s  %-8s  %6s  %s",
		"FINISHED", "WORD", "MODE", "STATUS", "GUESSES", "SCORE", "DAILY")))
	for _, g := range games {
		daily := lo.Ternary(g.DailyDate == "", "-", g.DailyDate)
		fmt.Fprintf(w, "%-16s  %-10s  %-8s  %-7s  %-8d  %6d  %s\n",
			g.FinishedAt.Local().Format("2006-01-02 15:04"),
			g.Target, g.Mode.Name(), g.Status, g.Guesses, g.Score, daily)
	}
}
