package handler

import (
	"errors"
	"net/http"

	locationdomain "club-app-go/internal/domain/location"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createLocationRequest struct {
	Name               string `json:"name"`
	Address            string `json:"address"`
	Timezone           string `json:"timezone"`
	DefaultMeetingDay  int    `json:"defaultMeetingDay"`
	DefaultMeetingTime string `json:"defaultMeetingTime"`
}

type updateLocationRequest struct {
	Name               *string `json:"name"`
	Address            *string `json:"address"`
	Timezone           *string `json:"timezone"`
	DefaultMeetingDay  *int    `json:"defaultMeetingDay"`
	DefaultMeetingTime *string `json:"defaultMeetingTime"`
	IsActive           *bool   `json:"isActive"`
}

func writeLocationError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, locationdomain.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, "location_not_found", "location not found")
	case errors.Is(err, locationdomain.ErrInvalidTimezone):
		writeError(w, http.StatusBadRequest, "invalid_timezone", "invalid IANA timezone")
	case errors.Is(err, locationdomain.ErrInvalidMeetingTime):
		writeError(w, http.StatusBadRequest, "invalid_meeting_time", "meeting time must be HH:MM")
	case errors.Is(err, locationdomain.ErrNameTaken):
		writeError(w, http.StatusConflict, "name_taken", "location name already exists")
	default:
		return false
	}
	return true
}

func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	l, err := h.Locations.Create(r.Context(), locationdomain.CreateInput{
		Name:               req.Name,
		Address:            req.Address,
		Timezone:           req.Timezone,
		DefaultMeetingDay:  req.DefaultMeetingDay,
		DefaultMeetingTime: req.DefaultMeetingTime,
		CreatedByAdminID:   admin.ID,
	})
	if err != nil {
		if !writeLocationError(w, err) {
			h.log.InternalError("locations.create failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Locations.List(r.Context())
	if err != nil {
		h.log.InternalError("locations.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *Handlers) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	l, err := h.Locations.Update(r.Context(), id, locationdomain.UpdateInput{
		Name:               req.Name,
		Address:            req.Address,
		Timezone:           req.Timezone,
		DefaultMeetingDay:  req.DefaultMeetingDay,
		DefaultMeetingTime: req.DefaultMeetingTime,
		IsActive:           req.IsActive,
	})
	if err != nil {
		if !writeLocationError(w, err) {
			h.log.InternalError("locations.update failed", err, "location_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, l)
}
