package analytics

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/eringen/devopsite/content"
)

// Store persists daily post view counters.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create analytics dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// WAL lets the dashboard read while views are written; writers wait on
	// the busy timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS post_views (
			slug TEXT NOT NULL,
			day TEXT NOT NULL,
			views INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (slug, day)
		);

		CREATE INDEX IF NOT EXISTS idx_post_views_day ON post_views(day);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// Setting returns a setting value by key, or "" if unset.
func (s *Store) Setting(ctx context.Context, key string) (string, error) {
	var val string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Salt returns the installation's hashing salt, generating and persisting
// one on first use.
func (s *Store) Salt(ctx context.Context) (string, error) {
	salt, err := s.Setting(ctx, "hash_salt")
	if err != nil {
		return "", fmt.Errorf("read hash salt: %w", err)
	}
	if salt != "" {
		return salt, nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(b)
	if err := s.SetSetting(ctx, "hash_salt", salt); err != nil {
		return "", fmt.Errorf("store hash salt: %w", err)
	}
	return salt, nil
}

// RecordView adds one view of slug on the UTC day of at.
func (s *Store) RecordView(ctx context.Context, slug string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO post_views (slug, day, views) VALUES (?, ?, 1)
		 ON CONFLICT(slug, day) DO UPDATE SET views = views + 1`, slug, dayOf(at))
	if err != nil {
		return fmt.Errorf("record view %s: %w", slug, err)
	}
	return nil
}

// Signals returns all-time view totals and the totals over the trailing
// window ending at now. The window covers whole UTC days including today:
// seven days of window are today and the six days before it.
func (s *Store) Signals(ctx context.Context, now time.Time, window time.Duration) (content.Signals, error) {
	if window <= 0 {
		window = DefaultTrendingWindow
	}
	views, err := s.totals(ctx, `SELECT slug, SUM(views) FROM post_views GROUP BY slug`)
	if err != nil {
		return content.Signals{}, fmt.Errorf("all-time views: %w", err)
	}
	recent, err := s.totals(ctx,
		`SELECT slug, SUM(views) FROM post_views WHERE day >= ? GROUP BY slug`, windowStart(now, window))
	if err != nil {
		return content.Signals{}, fmt.Errorf("recent views: %w", err)
	}
	return content.Signals{Views: views, Recent: recent}, nil
}

// windowStart is the first UTC day inside a trailing window of at least one day.
func windowStart(now time.Time, window time.Duration) string {
	days := max(1, int((window+24*time.Hour-1)/(24*time.Hour)))
	return dayOf(now.UTC().AddDate(0, 0, -(days - 1)))
}

func (s *Store) totals(ctx context.Context, query string, args ...any) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var slug string
		var n int
		if err := rows.Scan(&slug, &n); err != nil {
			return nil, err
		}
		out[slug] = n
	}
	return out, rows.Err()
}

// TopPosts returns the n most viewed posts since from.
func (s *Store) TopPosts(ctx context.Context, from time.Time, n int) ([]PostViews, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, SUM(views) AS total FROM post_views WHERE day >= ?
		 GROUP BY slug ORDER BY total DESC, slug ASC LIMIT ?`, dayOf(from), n)
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	defer rows.Close()

	out := []PostViews{}
	for rows.Next() {
		var pv PostViews
		if err := rows.Scan(&pv.Slug, &pv.Views); err != nil {
			return nil, err
		}
		out = append(out, pv)
	}
	return out, rows.Err()
}

// DailyViews returns site-wide post views per day in [from, to], oldest first.
// Days without views are omitted.
func (s *Store) DailyViews(ctx context.Context, from, to time.Time) ([]DailyView, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day, SUM(views) FROM post_views WHERE day >= ? AND day <= ?
		 GROUP BY day ORDER BY day ASC`, dayOf(from), dayOf(to))
	if err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}
	defer rows.Close()

	out := []DailyView{}
	for rows.Next() {
		var dv DailyView
		if err := rows.Scan(&dv.Date, &dv.Views); err != nil {
			return nil, err
		}
		out = append(out, dv)
	}
	return out, rows.Err()
}

// Prune deletes counters for days before the UTC day of before.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM post_views WHERE day < ?`, dayOf(before))
	if err != nil {
		return 0, fmt.Errorf("prune views: %w", err)
	}
	return res.RowsAffected()
}

// StartCleanupScheduler prunes counters older than retention every interval.
// It returns a stop function.
func (s *Store) StartCleanupScheduler(retention, interval time.Duration, logger zerolog.Logger) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := s.Prune(context.Background(), time.Now().Add(-retention))
				if err != nil {
					logger.Error().Err(err).Msg("analytics cleanup failed")
					continue
				}
				if n > 0 {
					logger.Debug().Int64("rows", n).Msg("analytics cleanup")
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
