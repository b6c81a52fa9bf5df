package api

import "net/http"

// HealthHandler reports whether the service started in a degraded state.
type HealthHandler struct {
	Degraded bool
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.Degraded {
		status = "degraded"
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": status})
}
