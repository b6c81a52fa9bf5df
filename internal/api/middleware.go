package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type contextKey string

const sessionTokenKey contextKey = "session_token"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "imeiwatch_session"

// SessionMiddleware copies the session token from the cookie into the
// request context. It never rejects a request; the admin gate decides what
// the token is worth.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), sessionTokenKey, cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionToken retrieves the session token from the context, or "".
func SessionToken(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenKey).(string)
	return token
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
// The query string is left out because it carries the checked IMEI.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
