package handler

import (
	"errors"
	"net/http"

	roomsdomain "club-app-go/internal/domain/rooms"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createRoomRequest struct {
	MeetingDate       string   `json:"meetingDate"`
	LocationID        string   `json:"locationId"`
	RoomNumber        string   `json:"roomNumber"`
	RoomName          string   `json:"roomName"`
	LeaderID          string   `json:"leaderId"`
	AssignedMemberIDs []string `json:"assignedMemberIds"`
}

type suggestRoomsRequest struct {
	MemberIDs []string `json:"memberIds"`
	RoomCount int      `json:"roomCount"`
}

func (h *Handlers) CreateRoomAssignment(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req createRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	meetingDate, err := parseDateRequired(req.MeetingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid meetingDate")
		return
	}

	assignment, err := h.Rooms.Create(r.Context(), roomsdomain.CreateInput{
		MeetingDate:       meetingDate,
		LocationID:        req.LocationID,
		RoomNumber:        req.RoomNumber,
		RoomName:          req.RoomName,
		LeaderID:          req.LeaderID,
		AssignedMemberIDs: req.AssignedMemberIDs,
		CreatedByAdminID:  admin.ID,
	})
	if err != nil {
		if errors.Is(err, roomsdomain.ErrNoMembers) {
			writeError(w, http.StatusBadRequest, "no_members", "room needs at least one member")
			return
		}
		h.log.InternalError("rooms.create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

func (h *Handlers) ListRoomAssignments(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		assignments, err := h.Rooms.History(r.Context())
		if err != nil {
			h.log.InternalError("rooms.history failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		writeJSON(w, http.StatusOK, assignments)
		return
	}

	date, err := parseDateRequired(dateParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}
	assignments, err := h.Rooms.ListByDate(r.Context(), date)
	if err != nil {
		h.log.InternalError("rooms.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *Handlers) GetRoomAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	assignment, err := h.Rooms.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, roomsdomain.ErrAssignmentNotFound) {
			writeError(w, http.StatusNotFound, "assignment_not_found", "room assignment not found")
			return
		}
		h.log.InternalError("rooms.get failed", err, "assignment_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (h *Handlers) SuggestRooms(w http.ResponseWriter, r *http.Request) {
	var req suggestRoomsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	plans, err := h.Rooms.Suggest(r.Context(), req.MemberIDs, req.RoomCount)
	if err != nil {
		switch {
		case errors.Is(err, roomsdomain.ErrInvalidRoomCount):
			writeError(w, http.StatusBadRequest, "invalid_room_count", "roomCount must be positive and at most the member count")
		case errors.Is(err, roomsdomain.ErrNoMembers):
			writeError(w, http.StatusBadRequest, "no_members", "memberIds is required")
		default:
			h.log.InternalError("rooms.suggest failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, plans)
}
