// Package db manages the SQLite database that backs the key-value store.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("db: database is closed")

// DB wraps a *sql.DB with the path it was opened from.
type DB struct {
	db     *sql.DB
	path   string
	closed bool
}

// Open opens (or creates) the SQLite database at path and initialises the schema.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("db.Open: %w", err)
	}
	d := &DB{db: sqldb, path: path}
	if err := d.migrate(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("db.Open: %w", err)
	}
	return d, nil
}

// Path returns the file the database was opened from.
func (d *DB) Path() string { return d.path }

// Close closes the underlying database connection.
func (d *DB) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

// migrations run in order, each in its own transaction. PRAGMA user_version
// holds the number already applied. Append only.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`ALTER TABLE kv ADD COLUMN write_count INTEGER NOT NULL DEFAULT 0`,
}

// SchemaVersion returns the number of applied migrations.
func (d *DB) SchemaVersion() (int, error) {
	if d.closed {
		return 0, ErrClosed
	}
	var v int
	err := d.db.QueryRow(`PRAGMA user_version`).Scan(&v)
	return v, err
}

func (d *DB) migrate() error {
	version, err := d.SchemaVersion()
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("schema version %d is newer than this binary supports (%d)", version, len(migrations))
	}
	for i := version; i < len(migrations); i++ {
		tx, err := d.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Key-value slots
// ---------------------------------------------------------------------------

// Get returns the raw value stored under key, or ("", false, nil) if the slot is empty.
func (d *DB) Get(key string) (string, bool, error) {
	if d.closed {
		return "", false, ErrClosed
	}
	var val string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set overwrites the slot under key with value in a single statement.
func (d *DB) Set(key, value string) error {
	if d.closed {
		return ErrClosed
	}
	_, err := d.db.Exec(`
		INSERT INTO kv (key, value, updated_at, write_count) VALUES (?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			value       = excluded.value,
			updated_at  = excluded.updated_at,
			write_count = kv.write_count + 1`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes the slot under key. Returns true if a row was removed.
func (d *DB) Delete(key string) (bool, error) {
	if d.closed {
		return false, ErrClosed
	}
	res, err := d.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SlotInfo describes a stored slot without its value.
type SlotInfo struct {
	Key        string
	Size       int
	UpdatedAt  string
	WriteCount int
}

// Keys lists all stored slots ordered by key.
func (d *DB) Keys() ([]SlotInfo, error) {
	if d.closed {
		return nil, ErrClosed
	}
	rows, err := d.db.Query(`SELECT key, length(value), updated_at, write_count FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SlotInfo, 0)
	for rows.Next() {
		var s SlotInfo
		if err := rows.Scan(&s.Key, &s.Size, &s.UpdatedAt, &s.WriteCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Meta
// ---------------------------------------------------------------------------

// GetMeta returns the value for key, or ("", false, nil) if not set.
func (d *DB) GetMeta(key string) (string, bool, error) {
	if d.closed {
		return "", false, ErrClosed
	}
	var val string
	err := d.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetMeta upserts a key-value pair in the meta table.
func (d *DB) SetMeta(key, value string) error {
	if d.closed {
		return ErrClosed
	}
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value,
	)
	return err
}
