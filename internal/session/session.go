// Package session implements the admin session authority and the server-side
// session stores it keeps sessions in.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// DefaultTTL is how long an admin session stays valid after login.
const DefaultTTL = 8 * time.Hour

var (
	// ErrNotConfigured is returned by Login while no administrator secret is
	// configured. Every login is rejected until one is set.
	ErrNotConfigured = errors.New("admin secret not configured")
	// ErrInvalidCredentials is returned by Login for a wrong secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned by RequireAdmin for non-admin callers.
	ErrUnauthorized = errors.New("unauthorized")
)

// Session is a server-side session.
type Session struct {
	ID        string
	Admin     bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store persists sessions. Get returns nil, nil for missing or expired
// sessions. Delete of a missing session is not an error.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// newSessionID returns 128 random bits, hex encoded.
func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
