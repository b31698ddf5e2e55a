package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cli/internal/store"
	"github.com/robalobadob/wordle/apps/cli/internal/words"
)

/**
 * Config is the runtime configuration, read from the environment (and .env)
 * first and then overridden by command-line flags.
 *
 *   WORDLE_DB     path of the SQLite file (default: <user config dir>/wordle/wordle.db)
 *   WORDLE_STORE  "sqlite" (default) or "memory"
 *   WORDS_FILE    word list, one word per line (default: embedded list)
 *   DAILY_SALT    salt for the daily word
 *   LOG_LEVEL     zerolog level (default: warn)
 *   NO_COLOR      any value disables colors
 */
type Config struct {
	DBPath    string
	StoreKind string
	WordsFile string
	DailySalt string
	LogLevel  string
	NoColor   bool
}

func loadConfig() Config {
	return Config{
		DBPath:    getEnv("WORDLE_DB", defaultDBPath()),
		StoreKind: getEnv("WORDLE_STORE", "sqlite"),
		WordsFile: getEnv("WORDS_FILE", ""),
		DailySalt: getEnv("DAILY_SALT", ""),
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		NoColor:   getEnv("NO_COLOR", "") != "",
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wordle.db"
	}
	return filepath.Join(dir, "wordle", "wordle.db")
}

// setupLogging sends logs to stderr so they never mix with the game on stdout.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func (c Config) openStore() (store.Store, error) {
	switch c.StoreKind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "sqlite", "":
		return store.OpenSQLite(c.DBPath)
	default:
		return nil, fmt.Errorf("unknown WORDLE_STORE %q (want sqlite or memory)", c.StoreKind)
	}
}

func (c Config) loadDictionary() (*words.Dictionary, error) {
	if c.WordsFile != "" {
		return words.LoadFile(c.WordsFile)
	}
	return words.Default()
}
