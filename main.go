package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/cli/internal/console"
	"github.com/robalobadob/wordle/apps/cli/internal/game"
	"github.com/robalobadob/wordle/apps/cli/internal/service"
	"github.com/robalobadob/wordle/apps/cli/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		// first Ctrl-C cancels the game; a second one kills the process
		<-ctx.Done()
		stop()
	}()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("wordle exited")
	}
}

// playFlags are the flags of the root (play) command.
type playFlags struct {
	length int
	mode   int
	daily  bool
	strict bool
	plain  bool
}

func newRootCmd(cfg Config) *cobra.Command {
	var pf playFlags

	root := &cobra.Command{
		Use:           "wordle",
		Short:         "Guess the hidden word in a limited number of attempts",
		Long:          "Terminal word-guessing game. [X] right letter in the right place, [O] letter elsewhere in the word, [_] letter not in the word.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, cfg, pf)
		},
	}

	root.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file")
	root.PersistentFlags().StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "word list file, one word per line (default: built-in list)")
	root.PersistentFlags().BoolVar(&pf.plain, "plain", cfg.NoColor, "plain output without colors")

	root.Flags().IntVarP(&pf.length, "length", "l", 0, "word length (asked when not set)")
	root.Flags().IntVarP(&pf.mode, "mode", "m", 0, "1 standard, 2 timed, 3 practice (asked when not set)")
	root.Flags().BoolVar(&pf.daily, "daily", false, "play today's daily word (once per day)")
	root.Flags().BoolVar(&pf.strict, "strict", false, "only accept guesses from the word list")

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently finished games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			games, err := st.RecentGames(cmd.Context(), limit)
			if err != nil {
				return err
			}
			console.RenderHistory(cmd.OutOrStdout(), games, pf.plain)
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of games to show")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show your statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			agg, err := st.LoadStats(cmd.Context())
			if err != nil {
				return err
			}
			console.RenderStats(cmd.OutOrStdout(), agg, pf.plain)
			return nil
		},
	}

	root.AddCommand(statsCmd, historyCmd)
	return root
}

func runPlay(cmd *cobra.Command, cfg Config, pf playFlags) error {
	if pf.mode < 0 || pf.mode > 3 {
		return fmt.Errorf("invalid --mode %d (want 1, 2 or 3)", pf.mode)
	}

	dict, err := cfg.loadDictionary()
	if err != nil {
		return err
	}
	log.Debug().Int("words", dict.Len()).Ints("lengths", dict.Lengths()).Msg("dictionary loaded")

	st, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	svc, err := service.New(cmd.Context(), dict, st,
		service.WithStrict(pf.strict),
		service.WithDailySalt(cfg.DailySalt),
	)
	if err != nil {
		return err
	}

	r := &console.Runner{
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Service: svc,
		Options: console.Options{
			Length: pf.length,
			Mode:   game.Mode(pf.mode),
			Daily:  pf.daily,
			Plain:  pf.plain,
		},
	}
	err = r.Run(cmd.Context())
	switch {
	case errors.Is(err, service.ErrDailyPlayed):
		fmt.Fprintln(cmd.OutOrStdout(), "You already played today's daily word. Come back tomorrow!")
		return nil
	case errors.Is(err, console.ErrInputClosed), errors.Is(err, context.Canceled):
		return nil
	}
	return err
}

func closeStore(st store.Store) {
	if err := st.Close(); err != nil {
		log.Warn().Err(err).Msg("close store")
	}
}
