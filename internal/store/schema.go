// Package store provides the SQLite-backed data access layer for people,
// parent/child links, star charts, and calendar events.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/fenwick/hearth/internal/apperr"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS people (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS person_parent (
	parent_id INTEGER NOT NULL,
	child_id  INTEGER NOT NULL,
	PRIMARY KEY (parent_id, child_id),
	FOREIGN KEY (parent_id) REFERENCES people(id),
	FOREIGN KEY (child_id)  REFERENCES people(id)
);

CREATE TABLE IF NOT EXISTS star_charts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	person_id  INTEGER NOT NULL,
	chart_type TEXT NOT NULL DEFAULT '',
	chart_key  TEXT NOT NULL DEFAULT '',
	star_count INTEGER NOT NULL DEFAULT 0,
	star_total INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS calendar_events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	person_id  INTEGER NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	start_time TEXT NOT NULL DEFAULT '',
	end_time   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_person_parent_child ON person_parent(child_id);
CREATE INDEX IF NOT EXISTS idx_star_charts_person ON star_charts(person_id);
`

// DB wraps a sql.DB with household data operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// constraintErr translates SQLite uniqueness violations into ErrDuplicateKey.
// Other constraint failures (foreign keys, checks) pass through untouched.
func constraintErr(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) &&
		(serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || serr.ExtendedCode == sqlite3.ErrConstraintUnique) {
		return apperr.ErrDuplicateKey
	}
	return err
}
