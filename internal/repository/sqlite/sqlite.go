// Package sqlite implements the repository interfaces on SQLite.
//
// modernc.org/sqlite is a pure-Go driver, so the binary stays CGo-free and
// tests can run against ":memory:" databases with no external services.
//
// The original deployment used a document store; two of its conventions are
// kept deliberately:
//   - comments embed their replies (a JSON array column, not a child table);
//   - there are no foreign keys between users, problems, and comments.
//     Deleting a problem leaves its comments in place as orphans.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sathira/codewizard/internal/apperror"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DB wraps the connection pool and implements the repository interfaces.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// A single pooled connection: SQLite allows one writer at a time anyway,
	// and with ":memory:" every additional pool connection would be a
	// separate empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Writers that hit the database lock wait instead of failing with
	// SQLITE_BUSY. The concurrent reply appends depend on this.
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent.
//
// Note the absence of REFERENCES clauses on problems.owner_email and
// comments.problem_id: both relations are weak by design (see package doc).
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			job_position  TEXT NOT NULL DEFAULT '',
			technologies  TEXT NOT NULL DEFAULT '[]',
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS problems (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			owner_email TEXT NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_problems_owner_email ON problems(owner_email);
		CREATE INDEX IF NOT EXISTS idx_problems_created_at ON problems(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating problems table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			problem_id TEXT NOT NULL,
			text       TEXT NOT NULL,
			replies    TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_problem_id ON comments(problem_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	return nil
}

// coder is the part of the driver's error type this package cares about.
// Matching on the interface rather than the concrete type keeps the
// result-code mapping testable without a driver round trip.
type coder interface {
	error
	Code() int
}

// wrapErr translates driver-level busy/locked conditions (a writer holding
// the database past the busy timeout) into the domain's StoreUnavailable
// error. Every statement, reads included, routes its error through here so
// the same condition never maps to two different statuses. Anything else
// passes through for the caller to wrap with context.
func wrapErr(err error) error {
	var se coder
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return apperror.Unavailable(err)
		}
	}
	return err
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure, e.g. a second user registering an existing username or email.
func isUniqueViolation(err error) bool {
	var se coder
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
		code&0xff == sqlite3.SQLITE_CONSTRAINT
}
