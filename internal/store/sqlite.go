// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Reading/writing the single stats row, the win distribution and the games history.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cli/internal/game"
	"github.com/robalobadob/wordle/apps/cli/internal/stats"
)

//go:embed sql/*.sql
var migrations embed.FS

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at dsn and migrates it.
func OpenSQLite(dsn string) (Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

/**
 * openDB opens (and creates if missing) a SQLite database file.
 *
 * - Ensures parent directory exists for relative DSNs (e.g. ./data/wordle.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Limits the pool to one connection; a single player never needs more,
 *   and ":memory:" databases only exist per connection.
 */
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

/**
 * migrate applies the embedded SQL migrations.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each *.sql file in lexical order, each inside its own transaction.
 * - Skips files already applied.
 */
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(migrations, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk sql dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Debug().Str("migration", f).Msg("applied")
	}
	return nil
}

// LoadStats reads the stats row, inserting an empty one on first use.
func (s *sqliteStore) LoadStats(ctx context.Context) (*stats.Stats, error) {
	st := stats.New()
	var updated sql.NullString
	err := s.db.QueryRowContext(ctx, `
        SELECT total_games, wins, current_streak, best_streak, total_attempts, total_score, updated_at
        FROM stats WHERE id = 1`,
	).Scan(&st.TotalGames, &st.Wins, &st.CurrentStreak, &st.BestStreak, &st.TotalAttempts, &st.TotalScore, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info().Msg("no stored stats, creating record")
		if err := s.SaveStats(ctx, st); err != nil {
			return nil, err
		}
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	st.UpdatedAt = parseTime(updated.String)

	rows, err := s.db.QueryContext(ctx, `SELECT attempts, wins FROM stats_distribution`)
	if err != nil {
		return nil, fmt.Errorf("load distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var attempts, wins int
		if err := rows.Scan(&attempts, &wins); err != nil {
			return nil, err
		}
		st.Distribution[attempts] = wins
	}
	return st, rows.Err()
}

// SaveStats upserts the stats row and rewrites the distribution in one transaction.
func (s *sqliteStore) SaveStats(ctx context.Context, st *stats.Stats) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO stats (id, total_games, wins, current_streak, best_streak, total_attempts, total_score, updated_at)
        VALUES (1, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            total_games=excluded.total_games,
            wins=excluded.wins,
            current_streak=excluded.current_streak,
            best_streak=excluded.best_streak,
            total_attempts=excluded.total_attempts,
            total_score=excluded.total_score,
            updated_at=excluded.updated_at`,
		st.TotalGames, st.Wins, st.CurrentStreak, st.BestStreak, st.TotalAttempts, st.TotalScore,
		formatTime(st.UpdatedAt),
	); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM stats_distribution`); err != nil {
		return fmt.Errorf("clear distribution: %w", err)
	}
	for attempts, wins := range st.Distribution {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stats_distribution (attempts, wins) VALUES (?, ?)`, attempts, wins,
		); err != nil {
			return fmt.Errorf("save distribution: %w", err)
		}
	}
	return tx.Commit()
}

// SaveGame inserts a history row. A second daily game for the same date is ignored.
func (s *sqliteStore) SaveGame(ctx context.Context, r GameRecord) error {
	var daily any
	if r.DailyDate != "" {
		daily = r.DailyDate
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, target, word_length, mode, status, guesses, score, elapsed_ms, daily_date, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Target, r.WordLength, int(r.Mode), r.Status, r.Guesses, r.Score, r.ElapsedMs,
		daily, formatTime(r.StartedAt), formatTime(r.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// RecentGames returns up to limit history rows, newest first.
func (s *sqliteStore) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, target, word_length, mode, status, guesses, score, elapsed_ms,
               COALESCE(daily_date, ''), started_at, finished_at
        FROM games
        ORDER BY finished_at DESC, rowid DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GameRecord, 0, limit)
	for rows.Next() {
		var r GameRecord
		var mode int
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Target, &r.WordLength, &mode, &r.Status, &r.Guesses, &r.Score,
			&r.ElapsedMs, &r.DailyDate, &started, &finished); err != nil {
			return nil, err
		}
		r.Mode = game.Mode(mode)
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// DailyPlayed reports whether a daily game exists for date.
func (s *sqliteStore) DailyPlayed(ctx context.Context, date string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM games WHERE daily_date=?`, date,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

// timeLayout is fixed-width UTC so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp. Empty means "never set"; anything
// unparseable is logged and read as the zero time so one bad row does not
// hide the rest of the history.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		log.Warn().Err(err).Str("value", s).Msg("unreadable stored timestamp")
		return time.Time{}
	}
	return t
}
