package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fenwick/hearth/internal/apperr"
)

// StarChartRow represents a row in the star_charts table. The chart_type
// column carries the chart's display name and chart_key its description.
type StarChartRow struct {
	ID        int64
	PersonID  int64
	Name      string
	Desc      string
	StarCount int
	StarTotal int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateStarChart inserts a star chart for an existing person and returns the
// assigned id. Fails with ErrNotFound when the owner does not exist.
func (db *DB) CreateStarChart(personID int64, name, description string, starCount, starTotal int) (int64, error) {
	var exists bool
	if err := db.conn.QueryRow(`SELECT EXISTS(SELECT 1 FROM people WHERE id = ?)`, personID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("store: check person: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("person %d: %w", personID, apperr.ErrNotFound)
	}

	now := time.Now().UTC()
	res, err := db.conn.Exec(`
		INSERT INTO star_charts (person_id, chart_type, chart_key, star_count, star_total, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, personID, name, description, starCount, starTotal, now, now)
	if err != nil {
		return 0, fmt.Errorf("store: insert star chart: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: star chart id: %w", err)
	}
	return id, nil
}

// GetStarChart returns the star chart with the given id.
func (db *DB) GetStarChart(id int64) (*StarChartRow, error) {
	row := db.conn.QueryRow(`
		SELECT id, person_id, chart_type, chart_key, star_count, star_total, created_at, updated_at
		FROM star_charts WHERE id = ?
	`, id)
	return scanStarChart(row)
}

// ListStarCharts returns every star chart, ordered by id.
func (db *DB) ListStarCharts() ([]StarChartRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, person_id, chart_type, chart_key, star_count, star_total, created_at, updated_at
		FROM star_charts ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list star charts: %w", err)
	}
	defer rows.Close()
	return collectStarCharts(rows)
}

// ListStarChartsForPerson returns the star charts owned by one person.
func (db *DB) ListStarChartsForPerson(personID int64) ([]StarChartRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, person_id, chart_type, chart_key, star_count, star_total, created_at, updated_at
		FROM star_charts WHERE person_id = ? ORDER BY id
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("store: star charts for %d: %w", personID, err)
	}
	defer rows.Close()
	return collectStarCharts(rows)
}

// UpdateStarChart overwrites name and description and, when non-nil, the
// count and total. Refreshes updated_at. Fails with ErrNotFound when absent.
func (db *DB) UpdateStarChart(id int64, name, description string, starCount, starTotal *int) error {
	res, err := db.conn.Exec(`
		UPDATE star_charts
		SET chart_type = ?,
			chart_key  = ?,
			star_count = COALESCE(?, star_count),
			star_total = COALESCE(?, star_total),
			updated_at = ?
		WHERE id = ?
	`, name, description, starCount, starTotal, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: update star chart: %w", err)
	}
	return notFoundOnZeroRows(res, id)
}

// IncrementStarChart adds delta (possibly negative) to star_count without
// clamping, and refreshes updated_at. Fails with ErrNotFound when absent.
func (db *DB) IncrementStarChart(id int64, delta int) error {
	res, err := db.conn.Exec(
		`UPDATE star_charts SET star_count = star_count + ?, updated_at = ? WHERE id = ?`,
		delta, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: increment star chart: %w", err)
	}
	return notFoundOnZeroRows(res, id)
}

// DeleteStarChart removes a star chart. Deleting an absent id is a no-op.
func (db *DB) DeleteStarChart(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM star_charts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete star chart: %w", err)
	}
	return nil
}

func notFoundOnZeroRows(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("star chart %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func scanStarChart(row *sql.Row) (*StarChartRow, error) {
	var c StarChartRow
	err := row.Scan(&c.ID, &c.PersonID, &c.Name, &c.Desc, &c.StarCount, &c.StarTotal, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("store: scan star chart: %w", err)
	}
	return &c, nil
}

func collectStarCharts(rows *sql.Rows) ([]StarChartRow, error) {
	var out []StarChartRow
	for rows.Next() {
		var c StarChartRow
		if err := rows.Scan(&c.ID, &c.PersonID, &c.Name, &c.Desc, &c.StarCount, &c.StarTotal, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
