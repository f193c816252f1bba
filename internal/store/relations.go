package store

import (
	"fmt"

	"github.com/fenwick/hearth/internal/apperr"
)

// ChildrenOf returns every person linked as a child of the given parent.
// Order is not guaranteed by contract; no links is an empty result, not an error.
func (db *DB) ChildrenOf(parentID int64) ([]PersonRow, error) {
	rows, err := db.conn.Query(`
		SELECT p.id, p.first_name, p.last_name
		FROM people p
		INNER JOIN person_parent pp ON pp.child_id = p.id
		WHERE pp.parent_id = ?
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("store: children of %d: %w", parentID, err)
	}
	defer rows.Close()
	return collectPeople(rows)
}

// ParentsOf returns every person linked as a parent of the given child.
func (db *DB) ParentsOf(childID int64) ([]PersonRow, error) {
	rows, err := db.conn.Query(`
		SELECT p.id, p.first_name, p.last_name
		FROM people p
		INNER JOIN person_parent pp ON pp.parent_id = p.id
		WHERE pp.child_id = ?
	`, childID)
	if err != nil {
		return nil, fmt.Errorf("store: parents of %d: %w", childID, err)
	}
	defer rows.Close()
	return collectPeople(rows)
}

// AddParentChild inserts a directed parent/child link. A self-loop fails with
// ErrInvalidRelation; inserting the same ordered pair twice fails with
// ErrDuplicateKey via the composite primary key. Cycles are not checked.
func (db *DB) AddParentChild(parentID, childID int64) error {
	if parentID == childID {
		return fmt.Errorf("person %d cannot be their own parent: %w", parentID, apperr.ErrInvalidRelation)
	}
	_, err := db.conn.Exec(`INSERT INTO person_parent (parent_id, child_id) VALUES (?, ?)`, parentID, childID)
	if err != nil {
		return constraintErr(err)
	}
	return nil
}

// HasParentChild reports whether the exact ordered link already exists.
func (db *DB) HasParentChild(parentID, childID int64) (bool, error) {
	var exists bool
	err := db.conn.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM person_parent WHERE parent_id = ? AND child_id = ?)`,
		parentID, childID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("store: check link: %w", err)
	}
	return exists, nil
}
