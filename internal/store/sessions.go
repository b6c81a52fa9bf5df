package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionRow is a persisted server-side session.
type SessionRow struct {
	ID        string
	IsAdmin   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// CreateSession stores a new session. A duplicate ID yields ErrConflict.
func CreateSession(ctx context.Context, db *sql.DB, s SessionRow) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (id, is_admin, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		s.ID, s.IsAdmin, s.CreatedAt.UTC(), s.ExpiresAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("creating session: %w", ErrConflict)
		}
		return fmt.Errorf("creating session: %w", err)
	}

	// Opportunistically clean up expired sessions.
	_, _ = db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC(),
	)

	return nil
}

// GetSession returns an unexpired session by ID, or nil if there is none.
func GetSession(ctx context.Context, db *sql.DB, id string, now time.Time) (*SessionRow, error) {
	s := &SessionRow{}
	err := db.QueryRowContext(ctx,
		`SELECT id, is_admin, created_at, expires_at FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.IsAdmin, &s.CreatedAt, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if !now.Before(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

// DeleteSession removes a session. Deleting a missing session is not an error.
func DeleteSession(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
