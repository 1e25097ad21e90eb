package handler

import (
	"errors"
	"net/http"

	attendancedomain "club-app-go/internal/domain/attendance"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type attendanceEntryRequest struct {
	MemberID    string `json:"memberId"`
	Status      string `json:"status"`
	ArrivalTime string `json:"arrivalTime"`
	Notes       string `json:"notes"`
}

type submitPendingRequest struct {
	RoomAssignmentID string                   `json:"roomAssignmentId"`
	Entries          []attendanceEntryRequest `json:"entries"`
}

type updatePendingRequest struct {
	Entries []attendanceEntryRequest `json:"entries"`
}

type rejectPendingRequest struct {
	Reason string `json:"reason"`
}

type directEntryRequest struct {
	MemberID    string `json:"memberId"`
	MeetingDate string `json:"meetingDate"`
	Status      string `json:"status"`
	ArrivalTime string `json:"arrivalTime"`
	LocationID  string `json:"locationId"`
	Notes       string `json:"notes"`
}

func toEntries(reqs []attendanceEntryRequest) []attendancedomain.Entry {
	entries := make([]attendancedomain.Entry, 0, len(reqs))
	for _, e := range reqs {
		entries = append(entries, attendancedomain.Entry{
			MemberID:    e.MemberID,
			Status:      attendancedomain.Status(e.Status),
			ArrivalTime: e.ArrivalTime,
			Notes:       e.Notes,
		})
	}
	return entries
}

func writeAttendanceError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, attendancedomain.ErrPendingNotFound):
		writeError(w, http.StatusNotFound, "pending_not_found", "pending record not found")
	case errors.Is(err, attendancedomain.ErrNotPending):
		writeError(w, http.StatusConflict, "not_pending", "record has already been reviewed")
	case errors.Is(err, attendancedomain.ErrNotSubmittingLeader):
		writeError(w, http.StatusForbidden, "not_submitting_leader", "only the submitting leader may modify this record")
	case errors.Is(err, attendancedomain.ErrNotRoomLeader):
		writeError(w, http.StatusForbidden, "not_room_leader", "member is not the leader of this room")
	case errors.Is(err, attendancedomain.ErrIncompleteBatch):
		writeError(w, http.StatusBadRequest, "incomplete_batch", "batch must cover every assigned member")
	case errors.Is(err, attendancedomain.ErrUnknownBatchMember):
		writeError(w, http.StatusBadRequest, "unknown_batch_member", "batch contains a member not in the room")
	case errors.Is(err, attendancedomain.ErrDuplicateBatchMember):
		writeError(w, http.StatusBadRequest, "duplicate_batch_member", "batch lists a member twice")
	case errors.Is(err, attendancedomain.ErrMissingArrivalTime):
		writeError(w, http.StatusBadRequest, "missing_arrival_time", "LATE entries require an arrival time")
	case errors.Is(err, attendancedomain.ErrInvalidArrivalTime):
		writeError(w, http.StatusBadRequest, "invalid_arrival_time", "arrival time must be HH:MM")
	case errors.Is(err, attendancedomain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", "invalid attendance status")
	default:
		return false
	}
	return true
}

func (h *Handlers) SubmitPendingAttendance(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req submitPendingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	pending, err := h.Attendance.SubmitPending(r.Context(), caller.ID, req.RoomAssignmentID, toEntries(req.Entries))
	if err != nil {
		if !writeAttendanceError(w, err) {
			h.log.InternalError("attendance.submit_pending failed", err, "leader_id", caller.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, pending)
}

func (h *Handlers) ListPendingAttendance(w http.ResponseWriter, r *http.Request) {
	status := attendancedomain.PendingStatus(r.URL.Query().Get("status"))
	pending, err := h.Attendance.ListPending(r.Context(), status)
	if err != nil {
		h.log.InternalError("attendance.list_pending failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *Handlers) UpdatePendingAttendance(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	id := chi.URLParam(r, "id")

	var req updatePendingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	pending, err := h.Attendance.UpdatePending(r.Context(), caller.ID, id, toEntries(req.Entries))
	if err != nil {
		if !writeAttendanceError(w, err) {
			h.log.InternalError("attendance.update_pending failed", err, "pending_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *Handlers) DeletePendingAttendance(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.Attendance.DeletePending(r.Context(), caller.ID, id); err != nil {
		if !writeAttendanceError(w, err) {
			h.log.InternalError("attendance.delete_pending failed", err, "pending_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ApprovePendingAttendance(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	id := chi.URLParam(r, "id")

	result, err := h.Attendance.Approve(r.Context(), admin.ID, id)
	if err != nil {
		if !writeAttendanceError(w, err) {
			h.log.InternalError("attendance.approve failed", err, "pending_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) RejectPendingAttendance(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	id := chi.URLParam(r, "id")

	var req rejectPendingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	pending, err := h.Attendance.Reject(r.Context(), admin.ID, id, req.Reason)
	if err != nil {
		if !writeAttendanceError(w, err) {
			h.log.InternalError("attendance.reject failed", err, "pending_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *Handlers) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req directEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	meetingDate, err := parseDateRequired(req.MeetingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid meetingDate")
		return
	}

	result, err := h.Attendance.RecordDirect(r.Context(), admin.ID, attendancedomain.DirectEntryInput{
		MemberID:    req.MemberID,
		MeetingDate: meetingDate,
		Status:      attendancedomain.Status(req.Status),
		ArrivalTime: req.ArrivalTime,
		LocationID:  req.LocationID,
		Notes:       req.Notes,
	})
	if err != nil {
		if !writeAttendanceError(w, err) {
			h.log.InternalError("attendance.record failed", err, "member_id", req.MemberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handlers) AttendanceByMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberId")
	records, err := h.Attendance.HistoryByMember(r.Context(), memberID)
	if err != nil {
		h.log.InternalError("attendance.by_member failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handlers) AttendanceByDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateRequired(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}
	records, err := h.Attendance.ByDate(r.Context(), date)
	if err != nil {
		h.log.InternalError("attendance.by_date failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
