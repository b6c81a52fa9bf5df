package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/erazemk/imeiwatch/internal/store"
)

// SQLStore keeps sessions in the sessions table.
type SQLStore struct {
	DB  *sql.DB
	Now func() time.Time
}

// NewSQLStore returns a session store backed by db.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db, Now: time.Now}
}

func (s *SQLStore) Create(ctx context.Context, sess *Session) error {
	return store.CreateSession(ctx, s.DB, store.SessionRow{
		ID:        sess.ID,
		IsAdmin:   sess.Admin,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	})
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Session, error) {
	row, err := store.GetSession(ctx, s.DB, id, s.Now())
	if err != nil || row == nil {
		return nil, err
	}
	return &Session{
		ID:        row.ID,
		Admin:     row.IsAdmin,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	return store.DeleteSession(ctx, s.DB, id)
}
