package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fenwick/hearth/internal/apperr"
)

// ListStarCharts handles GET /stars.
func (h *Handler) ListStarCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.svc.ListStarCharts(r.Context())
	if err != nil {
		slog.Error("list star charts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if charts == nil {
		charts = []StarChartView{}
	}
	writeJSON(w, http.StatusOK, charts)
}

// GetStarChart handles GET /stars/{id}.
func (h *Handler) GetStarChart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	chart, err := h.svc.GetStarChart(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get star chart failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// CreateStarChart handles POST /stars.
func (h *Handler) CreateStarChart(w http.ResponseWriter, r *http.Request) {
	var req CreateStarChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	id, err := h.svc.CreateStarChart(r.Context(), req.Name, req.Description, req.PersonID, req.StarCount, req.StarTotal)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("person not found"))
		} else {
			slog.Error("create star chart failed", slog.Int64("person_id", req.PersonID), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

// UpdateStarChart handles PATCH /stars/{id}.
func (h *Handler) UpdateStarChart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	var req UpdateStarChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdateStarChart(r.Context(), id, req.Name, req.Description, req.StarCount, req.StarTotal); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("update star chart failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusOK, IDResponse{ID: id})
}

// IncrementStarChart handles POST /stars/{id}/increment.
func (h *Handler) IncrementStarChart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	var req IncrementStarChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.IncrementStarChart(r.Context(), id, req.Delta); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("increment star chart failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusOK, IDResponse{ID: id})
}

// DeleteStarChart handles DELETE /admin/stars/{id}. Deletion is idempotent,
// removing an absent id still returns 200.
func (h *Handler) DeleteStarChart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	if err := h.svc.DeleteStarChart(r.Context(), id); err != nil {
		slog.Error("delete star chart failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, IDResponse{ID: id})
}
