package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/pkg/logger"
)

type contextKey int

const memberKey contextKey = iota

// MemberLoader resolves the identity header to a member record.
type MemberLoader interface {
	Get(ctx context.Context, id string) (*memberdomain.Member, error)
}

type Identity struct {
	members MemberLoader
	log     logger.Logger
}

// NewIdentity builds the identity middleware. Authentication itself runs at
// the edge; this trusts the X-Member-ID header it forwards.
func NewIdentity(members MemberLoader, log logger.Logger) *Identity {
	return &Identity{members: members, log: log}
}

func (a *Identity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Member-ID"))
		if id == "" {
			writeAuthError(w, http.StatusUnauthorized, "missing_identity", "X-Member-ID header required")
			return
		}

		m, err := a.members.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, memberdomain.ErrMemberNotFound) {
				writeAuthError(w, http.StatusUnauthorized, "unknown_member", "unknown member")
				return
			}
			a.log.InternalError("identity: member lookup failed", err, "member_id", id)
			writeAuthError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		ctx := context.WithValue(r.Context(), memberKey, m)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin callers. Must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := MemberFromContext(r.Context())
		if !ok || m.Role != memberdomain.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "admin_only", "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func MemberFromContext(ctx context.Context) (*memberdomain.Member, bool) {
	m, ok := ctx.Value(memberKey).(*memberdomain.Member)
	return m, ok
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":{"code":"` + code + `","message":"` + message + `"}}`))
}
