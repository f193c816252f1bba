package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fenwick/hearth/internal/household"
)

// CreateCalendarEvent handles POST /calendar/events.
func (h *Handler) CreateCalendarEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateCalendarEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}
	id, err := h.svc.CreateCalendarEvent(r.Context(), req.Title, req.PersonID, req.Start, req.End)
	if err != nil {
		slog.Error("create calendar event failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

// ListCalendarEvents handles GET /calendar/events.
func (h *Handler) ListCalendarEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListCalendarEvents(r.Context())
	if err != nil {
		slog.Error("list calendar events failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if events == nil {
		events = []household.CalendarEventView{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ListCalendarPeople handles GET /calendar/people.
func (h *Handler) ListCalendarPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.svc.ListCalendarPeople(r.Context())
	if err != nil {
		slog.Error("list calendar people failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if people == nil {
		people = []household.CalendarPersonView{}
	}
	writeJSON(w, http.StatusOK, people)
}
