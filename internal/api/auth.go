package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/imeiwatch/internal/metrics"
	"github.com/erazemk/imeiwatch/internal/session"
)

// AuthHandler handles admin session endpoints.
type AuthHandler struct {
	Sessions     *session.Authority
	Metrics      *metrics.Metrics
	CookieSecure bool
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Password == "" {
		jsonError(w, http.StatusBadRequest, "Password required")
		return
	}

	token, err := h.Sessions.Login(r.Context(), req.Password)
	switch {
	case errors.Is(err, session.ErrNotConfigured):
		h.Metrics.IncLogin("unconfigured")
		slog.Warn("admin login attempted but no admin secret is configured", "remote", r.RemoteAddr)
		jsonError(w, http.StatusServiceUnavailable, "Admin login is not configured")
		return
	case errors.Is(err, session.ErrInvalidCredentials):
		h.Metrics.IncLogin("invalid")
		slog.Warn("admin login failed", "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		h.Metrics.IncLogin("error")
		slog.Error("admin login error", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	h.Metrics.IncLogin("success")
	slog.Info("admin logged in", "remote", r.RemoteAddr)
	h.setSessionCookie(w, token)
	jsonOK(w, http.StatusOK)
}

// Logout handles POST /api/auth/logout. It succeeds with or without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := SessionToken(r.Context()); token != "" {
		h.Sessions.Logout(r.Context(), token)
	}
	h.clearSessionCookie(w)
	jsonOK(w, http.StatusOK)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	isAdmin := h.Sessions.IsAdmin(r.Context(), SessionToken(r.Context()))
	jsonResponse(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie clears the session cookie with consistent attributes.
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
