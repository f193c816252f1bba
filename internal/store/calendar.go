package store

import "fmt"

// CalendarEventRow represents a row in the calendar_events table. Start and
// end times are opaque strings; the store neither parses nor orders them.
type CalendarEventRow struct {
	ID       int64
	PersonID int64
	Title    string
	Start    string
	End      string
}

// CreateCalendarEvent inserts a calendar event and returns the assigned id.
// The person reference is not validated.
func (db *DB) CreateCalendarEvent(personID int64, title, start, end string) (int64, error) {
	res, err := db.conn.Exec(
		`INSERT INTO calendar_events (person_id, title, start_time, end_time) VALUES (?, ?, ?, ?)`,
		personID, title, start, end)
	if err != nil {
		return 0, fmt.Errorf("store: insert calendar event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: calendar event id: %w", err)
	}
	return id, nil
}

// ListCalendarEvents returns every calendar event, ordered by id.
func (db *DB) ListCalendarEvents() ([]CalendarEventRow, error) {
	rows, err := db.conn.Query(
		`SELECT id, person_id, title, start_time, end_time FROM calendar_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list calendar events: %w", err)
	}
	defer rows.Close()

	var out []CalendarEventRow
	for rows.Next() {
		var e CalendarEventRow
		if err := rows.Scan(&e.ID, &e.PersonID, &e.Title, &e.Start, &e.End); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
