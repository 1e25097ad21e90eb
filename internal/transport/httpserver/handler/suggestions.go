package handler

import (
	"errors"
	"net/http"

	suggestiondomain "club-app-go/internal/domain/suggestion"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createSuggestionRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

func (h *Handlers) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req createSuggestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	s, err := h.Suggestions.Create(r.Context(), caller.ID, req.Title, req.Content, req.ImageURL)
	if err != nil {
		h.log.InternalError("suggestions.create failed", err, "member_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handlers) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.Suggestions.List(r.Context())
	if err != nil {
		h.log.InternalError("suggestions.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *Handlers) ReviewSuggestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Suggestions.MarkReviewed(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, suggestiondomain.ErrSuggestionNotFound):
			writeError(w, http.StatusNotFound, "suggestion_not_found", "suggestion not found")
		case errors.Is(err, suggestiondomain.ErrAlreadyReviewed):
			writeError(w, http.StatusConflict, "already_reviewed", "suggestion already reviewed")
		default:
			h.log.InternalError("suggestions.review failed", err, "suggestion_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "REVIEWED"})
}
