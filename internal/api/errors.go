package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/imeiwatch/internal/service"
)

// writeServiceError maps service errors to HTTP responses. Anything not in
// the service taxonomy becomes a bare 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrUnauthorized):
		jsonError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Report not found")
	default:
		if !errors.Is(err, service.ErrInternal) {
			slog.Error("unexpected service error", "error", err)
		}
		jsonError(w, http.StatusInternalServerError, "Internal error")
	}
}
