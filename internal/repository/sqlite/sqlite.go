// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database: it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. A portfolio site
// with one owner and a trickle of contact messages is exactly its sweet spot.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code, so no C compiler is needed and it works everywhere Go works.
//
// ONE SHARED HANDLE:
// The pool is capped at a single open connection. Every request goes through the
// same handle, one statement at a time, which also keeps ":memory:" databases
// (used in tests) from splitting into several independent databases.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The sqlite package's init() registers itself with database/sql as a
	// driver named "sqlite". After this import, sql.Open("sqlite", ...) works.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository interfaces.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and bootstraps the schema.
//
// dbPath examples:
//   - "data/portfolio.db"  → file-based database (persistent)
//   - ":memory:"           → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	// sql.Open doesn't connect; Ping surfaces a bad path or permissions now
	// instead of on the first request.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.bootstrap(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: bootstrapping schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// bootstrap creates the tables if they are missing.
//
// CREATE TABLE IF NOT EXISTS is safe to run on every start. There is no
// migration history: the schema is created once and never altered.
func (db *DB) bootstrap() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			bio         TEXT NOT NULL DEFAULT '',
			skills      TEXT NOT NULL DEFAULT '[]',
			phone       TEXT NOT NULL DEFAULT '',
			github      TEXT NOT NULL DEFAULT '',
			projects    TEXT NOT NULL DEFAULT '',
			experience  TEXT NOT NULL DEFAULT '',
			education   TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_profiles_updated_at ON profiles(updated_at);
	`)
	if err != nil {
		return fmt.Errorf("creating profiles table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS contact_messages (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			email       TEXT NOT NULL,
			message     TEXT NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at ON contact_messages(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating contact_messages table: %w", err)
	}

	return nil
}
