package service

import "errors"

// ValidationError is returned for malformed input. Message is safe to show
// to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

var (
	// ErrUnauthorized is returned by admin-gated operations for callers
	// without an admin session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when an update names an unknown report.
	ErrNotFound = errors.New("report not found")
	// ErrInternal hides store failures from clients. The cause is logged.
	ErrInternal = errors.New("internal error")
)

// Client-facing validation messages.
const (
	MsgInvalidIMEI   = "Invalid IMEI"
	MsgInvalidStatus = "Invalid status"
)
