package household

import "context"

// calendarPalette is the fixed set of event background colors. A person's
// color is palette[id mod len(palette)]; it is derived at read time and never
// persisted.
var calendarPalette = []string{
	"#1f77b4",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#ff7f0e",
	"#17becf",
}

const calendarTextColor = "#ffffff"

// CalendarEventView is a calendar event shaped for the calendar display
// contract, where resourceId aliases the owning person's id.
type CalendarEventView struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Start      string `json:"start"`
	End        string `json:"end"`
	ResourceID int64  `json:"resourceId"`
}

// CalendarPersonView is a person shaped as a calendar resource with a
// deterministic display color.
type CalendarPersonView struct {
	ID                   int64  `json:"id"`
	Title                string `json:"title"`
	EventBackgroundColor string `json:"eventBackgroundColor"`
	EventTextColor       string `json:"eventTextColor"`
}

// CreateCalendarEvent stores a calendar event. Neither the person reference
// nor the time strings are validated.
func (s *Service) CreateCalendarEvent(_ context.Context, title string, personID int64, start, end string) (int64, error) {
	return s.db.CreateCalendarEvent(personID, title, start, end)
}

// ListCalendarEvents returns every stored event in display shape.
func (s *Service) ListCalendarEvents(_ context.Context) ([]CalendarEventView, error) {
	rows, err := s.db.ListCalendarEvents()
	if err != nil {
		return nil, err
	}
	views := make([]CalendarEventView, len(rows))
	for i, e := range rows {
		views[i] = CalendarEventView{
			ID:         e.ID,
			Title:      e.Title,
			Start:      e.Start,
			End:        e.End,
			ResourceID: e.PersonID,
		}
	}
	return views, nil
}

// ListCalendarPeople returns every person as a calendar resource, colored
// from the fixed palette by id.
func (s *Service) ListCalendarPeople(_ context.Context) ([]CalendarPersonView, error) {
	people, err := s.db.ListPeople()
	if err != nil {
		return nil, err
	}
	views := make([]CalendarPersonView, len(people))
	for i, p := range people {
		views[i] = CalendarPersonView{
			ID:                   p.ID,
			Title:                p.FirstName + " " + p.LastName,
			EventBackgroundColor: calendarPalette[p.ID%int64(len(calendarPalette))],
			EventTextColor:       calendarTextColor,
		}
	}
	return views, nil
}
