package api

import (
	"net/http"

	"github.com/erazemk/imeiwatch/internal/metrics"
	"github.com/erazemk/imeiwatch/internal/service"
	"github.com/erazemk/imeiwatch/internal/session"
)

// Deps are the collaborators the API routes call into.
type Deps struct {
	Reports      *service.Service
	Sessions     *session.Authority
	Metrics      *metrics.Metrics
	Degraded     bool
	CookieSecure bool
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	reportsHandler := &ReportsHandler{Reports: d.Reports}
	authHandler := &AuthHandler{Sessions: d.Sessions, Metrics: d.Metrics, CookieSecure: d.CookieSecure}
	healthHandler := &HealthHandler{Degraded: d.Degraded}

	// Public.
	mux.HandleFunc("POST /api/report", reportsHandler.Submit)
	mux.HandleFunc("GET /api/check", reportsHandler.Check)
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Session.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	// Admin. The report service checks the session itself.
	mux.HandleFunc("GET /api/reports", reportsHandler.List)
	mux.HandleFunc("PATCH /api/reports/{ref}", reportsHandler.Update)

	mux.Handle("GET /metrics", d.Metrics.Handler())

	return SessionMiddleware(mux)
}
