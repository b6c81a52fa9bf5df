package session

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/imeiwatch/internal/auth"
)

// Options configures an Authority.
type Options struct {
	// AdminPassword is the plaintext administrator secret.
	AdminPassword string
	// AdminPasswordHash is a bcrypt hash of the administrator secret. It takes
	// precedence over AdminPassword.
	AdminPasswordHash string
	// SigningKey signs session tokens.
	SigningKey string
	// TTL defaults to DefaultTTL.
	TTL time.Duration
}

// Authority checks the administrator secret and tracks which sessions are
// admin-authenticated. Callers identify the current session by the token
// returned from Login.
type Authority struct {
	store      Store
	password   []byte
	hash       []byte
	signingKey string
	ttl        time.Duration
	now        func() time.Time
}

// NewAuthority creates an Authority over the given session store.
func NewAuthority(store Store, opts Options) *Authority {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	a := &Authority{
		store:      store,
		signingKey: opts.SigningKey,
		ttl:        ttl,
		now:        time.Now,
	}
	if opts.AdminPasswordHash != "" {
		a.hash = []byte(opts.AdminPasswordHash)
	} else if opts.AdminPassword != "" {
		a.password = []byte(opts.AdminPassword)
	}
	return a
}

// TTL returns the lifetime of sessions created by Login.
func (a *Authority) TTL() time.Duration {
	return a.ttl
}

// Configured reports whether an administrator secret is set.
func (a *Authority) Configured() bool {
	return len(a.hash) > 0 || len(a.password) > 0
}

// Login checks supplied against the administrator secret. On success it
// creates a new admin session and returns its token. On failure no session
// state is touched.
func (a *Authority) Login(ctx context.Context, supplied string) (string, error) {
	if !a.Configured() {
		return "", ErrNotConfigured
	}
	if !a.checkSecret(supplied) {
		return "", ErrInvalidCredentials
	}

	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	now := a.now().UTC()
	sess := &Session{
		ID:        id,
		Admin:     true,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}
	if err := a.store.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("storing admin session: %w", err)
	}

	token, err := auth.GenerateToken(a.signingKey, id, now, a.ttl)
	if err != nil {
		return "", err
	}
	return token, nil
}

// checkSecret compares in constant time. Plaintext secrets are compared by
// SHA-256 digest so the comparison does not depend on the supplied length.
func (a *Authority) checkSecret(supplied string) bool {
	if len(a.hash) > 0 {
		return bcrypt.CompareHashAndPassword(a.hash, []byte(supplied)) == nil
	}
	want := sha256.Sum256(a.password)
	got := sha256.Sum256([]byte(supplied))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

// Logout destroys the session behind token, if any. It never fails.
func (a *Authority) Logout(ctx context.Context, token string) {
	id, err := auth.ValidateToken(a.signingKey, token)
	if err != nil {
		return
	}
	if err := a.store.Delete(ctx, id); err != nil {
		slog.Warn("failed to delete session on logout", "error", err)
	}
}

// IsAdmin reports whether token refers to a live admin session.
func (a *Authority) IsAdmin(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	id, err := auth.ValidateToken(a.signingKey, token)
	if err != nil {
		return false
	}
	sess, err := a.store.Get(ctx, id)
	if err != nil {
		slog.Error("failed to load session", "error", err)
		return false
	}
	return sess != nil && sess.Admin && a.now().Before(sess.ExpiresAt)
}

// RequireAdmin returns ErrUnauthorized unless token refers to a live admin
// session.
func (a *Authority) RequireAdmin(ctx context.Context, token string) error {
	if !a.IsAdmin(ctx, token) {
		return ErrUnauthorized
	}
	return nil
}
