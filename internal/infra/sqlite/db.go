// Package sqlite provides SQLite-based persistent storage for the
// progression engine. Uses WAL mode for concurrent reads and crash-safe
// writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB

	// MaxBackups bounds the rotating snapshot backup set.
	MaxBackups int
}

// DefaultMaxBackups is the rotation depth for state snapshots.
const DefaultMaxBackups = 10

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db, MaxBackups: DefaultMaxBackups}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Key-value store for the user state snapshot
		`CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Rotating snapshot backups, newest first
		`CREATE TABLE IF NOT EXISTS backups (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			reason     TEXT NOT NULL DEFAULT 'save',
			snapshot   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backups_created ON backups(created_at)`,

		// Notification feed (policy: daily cap, quiet hours)
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_created ON notifications(created_at)`,

		// Applied inactivity penalties
		`CREATE TABLE IF NOT EXISTS penalty_history (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			applied_at    INTEGER NOT NULL,
			inactive_days INTEGER NOT NULL,
			tier          INTEGER NOT NULL,
			points        REAL NOT NULL,
			attribute     TEXT NOT NULL DEFAULT '',
			distributed   BOOLEAN DEFAULT 0,
			message       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_penalty_applied ON penalty_history(applied_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
