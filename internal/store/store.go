// Package store handles SQLite persistence for profiles and attempt
// history.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps SQLite access and provides the repositories.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path, applies recommended
// pragmas, and runs migrations. A legacy single-player record, if one is
// found and no profiles exist yet, is converted into a regular profile.
func Open(path string) (*Store, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.adoptLegacyRecord(); err != nil {
		db.Close()
		return nil, fmt.Errorf("adopt legacy record: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ProfileRepo returns a ProfileRepo backed by this store.
func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{db: s.db}
}

// AttemptRepo returns an AttemptRepo backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{db: s.db}
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			updated_at_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL,
			fact_key TEXT NOT NULL,
			answer INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			answered_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_updated_at ON profiles(updated_at_ms);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_profile ON attempts(profile, answered_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FACTDRILL_DB environment variable
// 2. $XDG_DATA_HOME/factdrill/factdrill.db
// 3. ~/.local/share/factdrill/factdrill.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FACTDRILL_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "factdrill", "factdrill.db"), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
