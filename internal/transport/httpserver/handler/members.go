package handler

import (
	"errors"
	"net/http"

	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createMemberRequest struct {
	Username    string `json:"username"`
	KoreanName  string `json:"koreanName"`
	EnglishName string `json:"englishName"`
	PhoneNumber string `json:"phoneNumber"`
	Industry    string `json:"industry"`
	LinkedinURL string `json:"linkedinUrl"`
	WebsiteURL  string `json:"websiteUrl"`
	Email       string `json:"email"`
	HonorTier   string `json:"honorTier"`
	Role        string `json:"role"`
	IsLead      bool   `json:"isLead"`
	IsSubLead   bool   `json:"isSubLead"`
}

type updateMemberRequest struct {
	KoreanName  *string `json:"koreanName"`
	EnglishName *string `json:"englishName"`
	PhoneNumber *string `json:"phoneNumber"`
	Industry    *string `json:"industry"`
	LinkedinURL *string `json:"linkedinUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
	Email       *string `json:"email"`
	HonorTier   *string `json:"honorTier"`
	Role        *string `json:"role"`
	IsLead      *bool   `json:"isLead"`
	IsSubLead   *bool   `json:"isSubLead"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type setStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type createMemberResponse struct {
	Member          *memberdomain.Member `json:"member"`
	InitialPassword string               `json:"initialPassword"`
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := memberdomain.CreateInput{
		Username:    req.Username,
		KoreanName:  req.KoreanName,
		EnglishName: req.EnglishName,
		PhoneNumber: req.PhoneNumber,
		Industry:    memberdomain.Industry(req.Industry),
		LinkedinURL: req.LinkedinURL,
		WebsiteURL:  req.WebsiteURL,
		Email:       req.Email,
		HonorTier:   memberdomain.HonorTier(req.HonorTier),
		Role:        memberdomain.Role(req.Role),
		IsLead:      req.IsLead,
		IsSubLead:   req.IsSubLead,
	}
	m, password, err := h.Members.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "username_taken", "username already exists")
		case errors.Is(err, memberdomain.ErrInvalidTier):
			writeError(w, http.StatusBadRequest, "invalid_tier", "invalid honor tier")
		default:
			h.log.InternalError("members.create failed", err, "username", req.Username)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, createMemberResponse{Member: m, InitialPassword: password})
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.List(r.Context())
	if err != nil {
		h.log.InternalError("members.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := h.Members.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.get failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	m, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	id := chi.URLParam(r, "id")

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := memberdomain.UpdateInput{
		KoreanName:  req.KoreanName,
		EnglishName: req.EnglishName,
		PhoneNumber: req.PhoneNumber,
		LinkedinURL: req.LinkedinURL,
		WebsiteURL:  req.WebsiteURL,
		Email:       req.Email,
	}
	if req.Industry != nil {
		ind := memberdomain.Industry(*req.Industry)
		input.Industry = &ind
	}

	// Tier, role and lead flags are admin-only fields.
	if caller.Role == memberdomain.RoleAdmin {
		if req.HonorTier != nil {
			tier := memberdomain.HonorTier(*req.HonorTier)
			input.HonorTier = &tier
		}
		if req.Role != nil {
			role := memberdomain.Role(*req.Role)
			input.Role = &role
		}
		input.IsLead = req.IsLead
		input.IsSubLead = req.IsSubLead
	} else if caller.ID != id {
		writeError(w, http.StatusForbidden, "forbidden", "members may only update themselves")
		return
	}

	m, err := h.Members.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, memberdomain.ErrInvalidTier):
			writeError(w, http.StatusBadRequest, "invalid_tier", "invalid honor tier")
		default:
			h.log.InternalError("members.update failed", err, "member_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handlers) SetMemberStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	err := h.Members.SetStatus(r.Context(), id, memberdomain.Status(req.Status), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, memberdomain.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid_status", "invalid member status")
		default:
			h.log.InternalError("members.set_status failed", err, "member_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	err := h.Members.ChangePassword(r.Context(), caller.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrInvalidCredentials):
			writeError(w, http.StatusForbidden, "invalid_credentials", "current password does not match")
		default:
			h.log.InternalError("members.change_password failed", err, "member_id", caller.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": true})
}

func (h *Handlers) MemberRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.Members.Rankings(r.Context())
	if err != nil {
		h.log.InternalError("members.rankings failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rankings)
}
