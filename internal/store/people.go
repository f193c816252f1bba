package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fenwick/hearth/internal/apperr"
)

// PersonRow represents a row in the people table.
type PersonRow struct {
	ID        int64
	FirstName string
	LastName  string
}

// CreatePerson inserts a person and returns the assigned id.
func (db *DB) CreatePerson(firstName, lastName string) (int64, error) {
	res, err := db.conn.Exec(`INSERT INTO people (first_name, last_name) VALUES (?, ?)`, firstName, lastName)
	if err != nil {
		return 0, fmt.Errorf("store: insert person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: person id: %w", err)
	}
	return id, nil
}

// GetPersonByFirstName returns the first person matching the given first name.
// First names are not unique; the lowest id wins on a collision.
func (db *DB) GetPersonByFirstName(firstName string) (*PersonRow, error) {
	row := db.conn.QueryRow(
		`SELECT id, first_name, last_name FROM people WHERE first_name = ? ORDER BY id LIMIT 1`,
		firstName)
	return scanPerson(row)
}

// GetPersonByID returns the person with the given id.
func (db *DB) GetPersonByID(id int64) (*PersonRow, error) {
	row := db.conn.QueryRow(`SELECT id, first_name, last_name FROM people WHERE id = ?`, id)
	return scanPerson(row)
}

// ListPeople returns every person, ordered by id.
func (db *DB) ListPeople() ([]PersonRow, error) {
	rows, err := db.conn.Query(`SELECT id, first_name, last_name FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list people: %w", err)
	}
	defer rows.Close()
	return collectPeople(rows)
}

// DeletePerson removes a person together with their star charts and any
// parent/child links referencing them, in that order, within one transaction.
// Calendar events are intentionally left behind; reads tolerate the dangling
// owner reference.
func (db *DB) DeletePerson(id int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM star_charts WHERE person_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete star charts: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM person_parent WHERE parent_id = ? OR child_id = ?`, id, id); err != nil {
		return fmt.Errorf("store: delete links: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM people WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete person: %w", err)
	}

	return tx.Commit()
}

// IsInitialized reports whether at least one person row exists.
func (db *DB) IsInitialized() (bool, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM people`).Scan(&count); err != nil {
		return false, fmt.Errorf("store: count people: %w", err)
	}
	return count > 0, nil
}

func scanPerson(row *sql.Row) (*PersonRow, error) {
	var p PersonRow
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("store: scan person: %w", err)
	}
	return &p, nil
}

func collectPeople(rows *sql.Rows) ([]PersonRow, error) {
	var out []PersonRow
	for rows.Next() {
		var p PersonRow
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
