package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Every statement is idempotent so it
// can run on each start.
const schema = `
CREATE TABLE IF NOT EXISTS reports (
    id            INTEGER PRIMARY KEY,
    ref           TEXT NOT NULL UNIQUE,
    imei          TEXT NOT NULL,
    status        TEXT NOT NULL CHECK (status IN ('lost', 'stolen', 'recovered')),
    is_public     INTEGER NOT NULL DEFAULT 1,
    brand         TEXT,
    model         TEXT,
    color         TEXT,
    description   TEXT,
    lost_date     TEXT,
    location      TEXT,
    contact_name  TEXT,
    contact_email TEXT,
    contact_phone TEXT,
    police_report TEXT,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reports_imei ON reports(imei);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);

CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    is_admin   INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
