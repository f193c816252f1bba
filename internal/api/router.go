// Package api implements the Hearth REST API using chi.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/fenwick/hearth/internal/household"
)

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(svc *household.Service) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(RequestMetrics)

	// People.
	r.Get("/people", h.ListPeopleNames)
	r.Post("/people", h.CreatePerson)
	r.Get("/people/{firstName}", h.GetPerson)
	r.Get("/admin/people", h.ListPeople)
	r.Delete("/admin/people/{id}", h.DeletePerson)

	// Star charts.
	r.Get("/stars", h.ListStarCharts)
	r.Post("/stars", h.CreateStarChart)
	r.Get("/stars/{id}", h.GetStarChart)
	r.Patch("/stars/{id}", h.UpdateStarChart)
	r.Post("/stars/{id}/increment", h.IncrementStarChart)
	r.Delete("/admin/stars/{id}", h.DeleteStarChart)

	// Calendar.
	r.Post("/calendar/events", h.CreateCalendarEvent)
	r.Get("/calendar/events", h.ListCalendarEvents)
	r.Get("/calendar/people", h.ListCalendarPeople)

	// Seeding.
	r.Post("/initialize", h.Initialize)

	return r
}
