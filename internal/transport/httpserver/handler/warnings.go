package handler

import (
	"errors"
	"net/http"
	"strings"

	memberdomain "club-app-go/internal/domain/member"
	warningdomain "club-app-go/internal/domain/warning"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type issueWarningRequest struct {
	MemberID string `json:"memberId"`
	Type     string `json:"type"`
	Reason   string `json:"reason"`
}

func (h *Handlers) IssueWarning(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req issueWarningRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.MemberID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "memberId is required")
		return
	}

	warn, err := h.Warnings.Issue(r.Context(), req.MemberID, warningdomain.Type(req.Type), req.Reason, admin.ID)
	if err != nil {
		switch {
		case errors.Is(err, warningdomain.ErrInvalidType):
			writeError(w, http.StatusBadRequest, "invalid_type", "invalid warning type")
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		default:
			h.log.InternalError("warnings.issue failed", err, "member_id", req.MemberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, warn)
}

func (h *Handlers) ListWarnings(w http.ResponseWriter, r *http.Request) {
	memberID := strings.TrimSpace(r.URL.Query().Get("memberId"))
	var (
		warnings []warningdomain.Warning
		err      error
	)
	if memberID != "" {
		warnings, err = h.Warnings.ListForMember(r.Context(), memberID)
	} else {
		warnings, err = h.Warnings.ListUnresolved(r.Context())
	}
	if err != nil {
		h.log.InternalError("warnings.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, warnings)
}

func (h *Handlers) ResolveWarning(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.Warnings.Resolve(r.Context(), id, admin.ID); err != nil {
		switch {
		case errors.Is(err, warningdomain.ErrWarningNotFound):
			writeError(w, http.StatusNotFound, "warning_not_found", "warning not found")
		case errors.Is(err, warningdomain.ErrAlreadyResolved):
			writeError(w, http.StatusConflict, "already_resolved", "warning already resolved")
		default:
			h.log.InternalError("warnings.resolve failed", err, "warning_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"resolved": true})
}

// RestoreMember clears every open warning for the member and reactivates a
// suspended account in one step.
func (h *Handlers) RestoreMember(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	memberID := chi.URLParam(r, "memberId")

	if err := h.Warnings.Restore(r.Context(), memberID, admin.ID); err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("warnings.restore failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"restored": true})
}
