package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fenwick/hearth/internal/apperr"
	"github.com/fenwick/hearth/internal/household"
)

// Handler holds API route handlers.
type Handler struct {
	svc *household.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *household.Service) *Handler {
	return &Handler{svc: svc}
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListPeopleNames handles GET /people.
func (h *Handler) ListPeopleNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListPeopleNames(r.Context())
	if err != nil {
		slog.Error("list people failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// GetPerson handles GET /people/{firstName}.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	firstName := chi.URLParam(r, "firstName")
	if firstName == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("first name is required"))
		return
	}
	person, err := h.svc.GetPerson(r.Context(), firstName)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get person failed", slog.String("first_name", firstName), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// CreatePerson handles POST /people.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.FirstName == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("first_name is required"))
		return
	}
	id, err := h.svc.CreatePerson(r.Context(), req.FirstName, req.LastName)
	if err != nil {
		slog.Error("create person failed", slog.String("first_name", req.FirstName), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

// ListPeople handles GET /admin/people.
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.svc.ListPeople(r.Context())
	if err != nil {
		slog.Error("admin list people failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if people == nil {
		people = []PersonListItem{}
	}
	writeJSON(w, http.StatusOK, people)
}

// DeletePerson handles DELETE /admin/people/{id}.
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	if err := h.svc.DeletePerson(r.Context(), id); err != nil {
		slog.Error("delete person failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, IDResponse{ID: id})
}

// Initialize handles POST /initialize.
func (h *Handler) Initialize(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Initialize(r.Context(), slog.Default()); err != nil {
		slog.Error("initialize failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "initialized"})
}
