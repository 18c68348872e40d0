package analytics

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps per-path view counts in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new analytics store.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create analytics dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS page_views (
			path TEXT PRIMARY KEY,
			views INTEGER NOT NULL DEFAULT 0,
			last_seen INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_page_views_views ON page_views(views);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// currentSchemaVersion is the latest schema version. Increment when adding migrations.
const currentSchemaVersion = 1

// migrate applies incremental schema migrations based on a version stored in the settings table.
func (s *Store) migrate() error {
	verStr, err := s.GetSetting("schema_version")
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	version := 0
	if verStr != "" {
		version, err = strconv.Atoi(verStr)
		if err != nil {
			return fmt.Errorf("parse schema version %q: %w", verStr, err)
		}
	}
	if version < currentSchemaVersion {
		version = currentSchemaVersion
	}
	return s.SetSetting("schema_version", strconv.Itoa(version))
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// RecordView adds one view of path.
func (s *Store) RecordView(path string, at time.Time) error {
	_, err := s.db.Exec(`INSERT INTO page_views (path, views, last_seen) VALUES (?, 1, ?)
		ON CONFLICT(path) DO UPDATE SET views = views + 1, last_seen = excluded.last_seen`,
		path, at.Unix())
	return err
}

// Views returns the number of recorded views of path.
func (s *Store) Views(path string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT views FROM page_views WHERE path = ?`, path).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}

// Popular returns the most viewed paths starting with prefix, most viewed
// first (ties by path). Paths matching exclude are skipped; the prefix
// itself is never returned.
func (s *Store) Popular(prefix string, exclude *regexp.Regexp, limit int) ([]PageStat, error) {
	rows, err := s.db.Query(`SELECT path, views FROM page_views
		WHERE substr(path, 1, length(?)) = ? AND path != ?
		ORDER BY views DESC, path`, prefix, prefix, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PageStat
	for rows.Next() {
		var ps PageStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			return nil, err
		}
		if exclude != nil && exclude.MatchString(ps.Path) {
			continue
		}
		stats = append(stats, ps)
		if limit > 0 && len(stats) == limit {
			break
		}
	}
	return stats, rows.Err()
}

// Forget removes the counts of paths for which keep returns false. It is
// used to drop counts of pages that no longer exist.
func (s *Store) Forget(keep func(path string) bool) (int, error) {
	rows, err := s.db.Query(`SELECT path FROM page_views`)
	if err != nil {
		return 0, err
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return 0, err
		}
		if !keep(p) {
			stale = append(stale, p)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	for _, p := range stale {
		if _, err := s.db.Exec(`DELETE FROM page_views WHERE path = ?`, p); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// CleanupStale removes counts of paths not seen within the retention period.
func (s *Store) CleanupStale(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	if _, err := s.db.Exec(`DELETE FROM page_views WHERE last_seen < ?`, cutoff.Unix()); err != nil {
		return fmt.Errorf("cleanup page_views: %w", err)
	}
	return nil
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupStale(retentionDays); err != nil {
					log.Printf("analytics: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
