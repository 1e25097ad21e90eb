package handler

import (
	"errors"
	"net/http"

	presenterdomain "club-app-go/internal/domain/presenter"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type schedulePresenterRequest struct {
	MemberID      string `json:"memberId"`
	MeetingDate   string `json:"meetingDate"`
	TopicDeadline string `json:"topicDeadline"`
}

type submitTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handlers) SchedulePresenter(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req schedulePresenterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	meetingDate, err := parseDateRequired(req.MeetingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid meetingDate")
		return
	}
	deadline, err := parseDateTimeRequired(req.TopicDeadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid topicDeadline")
		return
	}

	slot, err := h.Presenters.Schedule(r.Context(), presenterdomain.ScheduleInput{
		MemberID:         req.MemberID,
		MeetingDate:      meetingDate,
		TopicDeadline:    deadline,
		CreatedByAdminID: admin.ID,
	})
	if err != nil {
		h.log.InternalError("presenters.schedule failed", err, "member_id", req.MemberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

func (h *Handlers) ListPresenters(w http.ResponseWriter, r *http.Request) {
	slots, err := h.Presenters.List(r.Context())
	if err != nil {
		h.log.InternalError("presenters.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *Handlers) SubmitPresenterTopic(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	id := chi.URLParam(r, "id")

	var req submitTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	slot, err := h.Presenters.SubmitTopic(r.Context(), caller.ID, id, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, presenterdomain.ErrSlotNotFound):
			writeError(w, http.StatusNotFound, "slot_not_found", "presenter slot not found")
		case errors.Is(err, presenterdomain.ErrNotPresenter):
			writeError(w, http.StatusForbidden, "not_presenter", "only the scheduled presenter may submit the topic")
		case errors.Is(err, presenterdomain.ErrTopicRequired):
			writeError(w, http.StatusBadRequest, "topic_required", "topic title is required")
		default:
			h.log.InternalError("presenters.submit_topic failed", err, "slot_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, slot)
}
