package handler

import (
	"errors"
	"net/http"

	votingdomain "club-app-go/internal/domain/voting"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createVoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	LocationID  string `json:"locationId"`
	MeetingDate string `json:"meetingDate"`
	Deadline    string `json:"deadline"`
}

type respondRequest struct {
	Choice string `json:"choice"`
}

func (h *Handlers) CreateVote(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req createVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	meetingDate, err := parseDateRequired(req.MeetingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid meetingDate")
		return
	}
	deadline, err := parseDateTimeRequired(req.Deadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid deadline")
		return
	}

	vote, err := h.Voting.CreateVote(r.Context(), votingdomain.CreateVoteInput{
		Title:            req.Title,
		Description:      req.Description,
		LocationID:       req.LocationID,
		MeetingDate:      meetingDate,
		Deadline:         deadline,
		CreatedByAdminID: admin.ID,
	})
	if err != nil {
		h.log.InternalError("votes.create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

func (h *Handlers) ListActiveVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.Voting.ListActive(r.Context())
	if err != nil {
		h.log.InternalError("votes.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

func (h *Handlers) VoteHistory(w http.ResponseWriter, r *http.Request) {
	votes, err := h.Voting.History(r.Context())
	if err != nil {
		h.log.InternalError("votes.history failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

func (h *Handlers) VoteResponses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	responses, err := h.Voting.Responses(r.Context(), id)
	if err != nil {
		if errors.Is(err, votingdomain.ErrVoteNotFound) {
			writeError(w, http.StatusNotFound, "vote_not_found", "vote not found")
			return
		}
		h.log.InternalError("votes.responses failed", err, "vote_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handlers) Respond(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	voteID := chi.URLParam(r, "id")

	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	resp, err := h.Voting.Respond(r.Context(), caller.ID, voteID, votingdomain.Choice(req.Choice))
	if err != nil {
		switch {
		case errors.Is(err, votingdomain.ErrVoteNotFound):
			writeError(w, http.StatusNotFound, "vote_not_found", "vote not found")
		case errors.Is(err, votingdomain.ErrInvalidChoice):
			writeError(w, http.StatusBadRequest, "invalid_choice", "choice must be YES or NO")
		case errors.Is(err, votingdomain.ErrVoteClosed):
			writeError(w, http.StatusConflict, "vote_closed", "vote is closed")
		case errors.Is(err, votingdomain.ErrWeeklyLocationConflict):
			writeError(w, http.StatusConflict, "weekly_conflict", "already responded to another location's vote this week")
		default:
			h.log.InternalError("votes.respond failed", err, "vote_id", voteID, "member_id", caller.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
