package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
)

const sessionSecretKey = "session_secret"

// GetSessionSecret returns the persisted session signing key. On first use
// it generates and stores a random key, and created is true. Concurrent first
// starts converge on whichever key was written first.
func GetSessionSecret(ctx context.Context, db *sql.DB) (secret string, created bool, err error) {
	secret, err = getSetting(ctx, db, sessionSecretKey)
	if err == nil {
		return secret, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", false, err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", false, fmt.Errorf("generating session secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	res, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		sessionSecretKey, candidate,
	)
	if err != nil {
		return "", false, fmt.Errorf("storing session secret: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return candidate, true, nil
	}

	// Lost the race to another start.
	secret, err = getSetting(ctx, db, sessionSecretKey)
	if err != nil {
		return "", false, err
	}
	return secret, false, nil
}

func getSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, nil
}
