package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/edvin/bookclub/internal/api/response"
	"github.com/edvin/bookclub/internal/core"
)

type contextKey string

const userIDKey contextKey = "user_id"

// SessionCookieName is the cookie carrying the session credential.
const SessionCookieName = "bookclub_session"

// SessionVerifier resolves a split credential to a user id.
// *core.SessionService satisfies this interface.
type SessionVerifier interface {
	Verify(ctx context.Context, p1, p2 string) (string, error)
}

// Auth returns a middleware that gates requests on a valid session. The
// credential comes from the session cookie or, failing that, a bearer token.
// Unknown and expired sessions produce the same 401; only storage failures
// surface as 500.
func Auth(sessions SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred := credentialFromRequest(r)
			if cred == "" {
				response.WriteError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			p1, p2, ok := strings.Cut(cred, ".")
			if !ok || p1 == "" || p2 == "" {
				response.WriteError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			userID, err := sessions.Verify(r.Context(), p1, p2)
			if err != nil {
				if errors.Is(err, core.ErrSessionNotFound) || errors.Is(err, core.ErrSessionExpired) {
					response.WriteError(w, http.StatusUnauthorized, "not authenticated")
					return
				}
				response.WriteError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func credentialFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// GetUserID returns the authenticated user's id from the request context.
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID is a test hook for handlers that read the authenticated user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
