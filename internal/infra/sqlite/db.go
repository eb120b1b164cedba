// Package sqlite persists mood records in a local SQLite database.
// It uses the pure-Go modernc.org/sqlite driver, so no CGO is required.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "moodmap.db"

// DB wraps a SQLite connection with the journal schema applied.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database inside dir and migrates it.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	dsn := filepath.Join(dir, FileName) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	return open(dsn)
}

// OpenMemory opens a private in-memory database. Data is lost on Close.
func OpenMemory() (*DB, error) {
	return open(":memory:")
}

func open(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: shared.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{db: sqlDB}
	if err := db.migrate(context.Background()); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the connection.
func (db *DB) Close() error {
	return db.db.Close()
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema statements, applied in order on every Open.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// seq keeps insertion order; created_at is Unix nanoseconds (UTC)
		`CREATE TABLE IF NOT EXISTS mood_records (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT NOT NULL UNIQUE,
			latitude   REAL NOT NULL,
			longitude  REAL NOT NULL,
			label      TEXT NOT NULL,
			intensity  REAL NOT NULL DEFAULT 0,
			note       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_records_created ON mood_records(created_at)`,
	}
}

func (db *DB) migrate(ctx context.Context) error {
	for _, stmt := range Migrations() {
		if _, err := db.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
