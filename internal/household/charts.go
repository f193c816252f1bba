package household

import (
	"context"
	"errors"

	"github.com/fenwick/hearth/internal/apperr"
	"github.com/fenwick/hearth/internal/store"
)

// StarChartView is a star chart annotated with the owning person's name for
// display. Owner names are empty when the owner no longer exists.
type StarChartView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	StarCount       int    `json:"star_count"`
	StarTotal       int    `json:"star_total"`
	PersonFirstName string `json:"person_first_name"`
	PersonLastName  string `json:"person_last_name"`
}

// CreateStarChart creates a star chart for an existing person.
func (s *Service) CreateStarChart(_ context.Context, name, description string, personID int64, starCount, starTotal int) (int64, error) {
	return s.db.CreateStarChart(personID, name, description, starCount, starTotal)
}

// GetStarChart returns one star chart annotated with its owner's name.
func (s *Service) GetStarChart(_ context.Context, id int64) (*StarChartView, error) {
	row, err := s.db.GetStarChart(id)
	if err != nil {
		return nil, err
	}
	v, err := s.chartView(*row)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListStarCharts returns every star chart, each annotated with its owner's
// name via a per-row lookup.
func (s *Service) ListStarCharts(_ context.Context) ([]StarChartView, error) {
	rows, err := s.db.ListStarCharts()
	if err != nil {
		return nil, err
	}
	views := make([]StarChartView, 0, len(rows))
	for _, row := range rows {
		v, err := s.chartView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// UpdateStarChart overwrites name and description; count and total only when
// provided. The modification timestamp is always refreshed.
func (s *Service) UpdateStarChart(_ context.Context, id int64, name, description string, starCount, starTotal *int) error {
	return s.db.UpdateStarChart(id, name, description, starCount, starTotal)
}

// IncrementStarChart adjusts a chart's star count by a signed delta.
func (s *Service) IncrementStarChart(_ context.Context, id int64, delta int) error {
	return s.db.IncrementStarChart(id, delta)
}

// DeleteStarChart deletes a star chart; absent ids are not an error.
func (s *Service) DeleteStarChart(_ context.Context, id int64) error {
	return s.db.DeleteStarChart(id)
}

// chartView annotates one chart row with its owner's name. A dangling owner
// reference yields empty name fields rather than an error.
func (s *Service) chartView(row store.StarChartRow) (StarChartView, error) {
	v := StarChartView{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Desc,
		StarCount:   row.StarCount,
		StarTotal:   row.StarTotal,
	}
	owner, err := s.db.GetPersonByID(row.PersonID)
	switch {
	case err == nil:
		v.PersonFirstName = owner.FirstName
		v.PersonLastName = owner.LastName
	case errors.Is(err, apperr.ErrNotFound):
		// deleted out-of-band, tolerated
	default:
		return StarChartView{}, err
	}
	return v, nil
}

// chartViewsFor lists a person's own charts, reusing the person row already
// in hand for the owner annotation.
func (s *Service) chartViewsFor(p store.PersonRow) ([]StarChartView, error) {
	rows, err := s.db.ListStarChartsForPerson(p.ID)
	if err != nil {
		return nil, err
	}
	views := make([]StarChartView, 0, len(rows))
	for _, row := range rows {
		views = append(views, StarChartView{
			ID:              row.ID,
			Name:            row.Name,
			Description:     row.Desc,
			StarCount:       row.StarCount,
			StarTotal:       row.StarTotal,
			PersonFirstName: p.FirstName,
			PersonLastName:  p.LastName,
		})
	}
	return views, nil
}
