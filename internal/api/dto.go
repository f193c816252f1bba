package api

import "github.com/fenwick/hearth/internal/household"

// CreatePersonRequest is the request body for creating a person.
type CreatePersonRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateStarChartRequest is the request body for creating a star chart.
type CreateStarChartRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PersonID    int64  `json:"person_id"`
	StarCount   int    `json:"star_count"`
	StarTotal   int    `json:"star_total"`
}

// UpdateStarChartRequest is the request body for updating a star chart.
// StarCount and StarTotal are optional; nil means leave unchanged.
type UpdateStarChartRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StarCount   *int   `json:"star_count"`
	StarTotal   *int   `json:"star_total"`
}

// IncrementStarChartRequest is the request body for adjusting a star count.
type IncrementStarChartRequest struct {
	Delta int `json:"delta"`
}

// CreateCalendarEventRequest is the request body for creating a calendar event.
type CreateCalendarEventRequest struct {
	Title    string `json:"title"`
	PersonID int64  `json:"person_id"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// IDResponse carries the id of a created or mutated record.
type IDResponse struct {
	ID int64 `json:"id"`
}

// PersonDetail is the full person response type (aliased from the domain layer).
type PersonDetail = household.PersonDetail

// PersonListItem is an entry in the administrative listing (aliased from the domain layer).
type PersonListItem = household.PersonListItem

// StarChartView is the star chart response type (aliased from the domain layer).
type StarChartView = household.StarChartView
