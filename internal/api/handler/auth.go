package handler

import (
	"errors"
	"net/http"

	"github.com/edvin/bookclub/internal/api/middleware"
	"github.com/edvin/bookclub/internal/api/response"
	"github.com/edvin/bookclub/internal/core"
)

// Auth serves the browser-facing login endpoints. The callback translates
// login failures conservatively: a bad state is a 400, a failed identity
// verification is a 401, and storage trouble is a 500 with no detail.
type Auth struct {
	login        *core.LoginService
	sessions     *core.SessionService
	defaultURL   string
	cookieSecure bool
}

func NewAuth(login *core.LoginService, sessions *core.SessionService, defaultURL string, cookieSecure bool) *Auth {
	return &Auth{
		login:        login,
		sessions:     sessions,
		defaultURL:   defaultURL,
		cookieSecure: cookieSecure,
	}
}

// Login starts the provider flow and redirects the browser to the authorize
// URL.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	returnURL := r.URL.Query().Get("return_url")
	if returnURL == "" {
		returnURL = h.defaultURL
	}

	authURL, err := h.login.Begin(r.Context(), returnURL)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	http.Redirect(w, r, authURL, http.StatusSeeOther)
}

// Callback completes the provider flow, sets the session cookie, and sends
// the browser back to where the login started.
func (h *Auth) Callback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		response.WriteError(w, http.StatusUnauthorized, "authorization failed: "+errParam)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		response.WriteError(w, http.StatusBadRequest, "missing state or code parameter")
		return
	}

	cred, returnURL, err := h.login.Callback(r.Context(), state, code)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrStateNotFound):
			response.WriteError(w, http.StatusBadRequest, "invalid state parameter")
		case errors.Is(err, core.ErrIdentityVerification):
			response.WriteError(w, http.StatusUnauthorized, "identity verification failed")
		default:
			response.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    cred.P1 + "." + cred.P2,
		Path:     "/",
		Expires:  cred.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	if returnURL == "" {
		returnURL = h.defaultURL
	}
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

// Logout revokes the presented session and clears the cookie. Logging out
// without a live session still succeeds.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookieName); err == nil && c.Value != "" {
		if p1, _, ok := cutCredential(c.Value); ok {
			if err := h.sessions.Revoke(r.Context(), p1); err != nil {
				response.WriteError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}
