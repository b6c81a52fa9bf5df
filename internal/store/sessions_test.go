package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erazemk/imeiwatch/internal/db"
)

func TestCreateAndGetSession(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	got, err := GetSession(ctx, database, "s1", now)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Fatal("expected no session initially")
	}

	err = CreateSession(ctx, database, SessionRow{
		ID: "s1", IsAdmin: true, CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err = GetSession(ctx, database, "s1", now)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || !got.IsAdmin {
		t.Fatalf("expected admin session, got %+v", got)
	}

	// Past its expiry the session is treated as absent.
	got, err = GetSession(ctx, database, "s1", now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Error("expected expired session to be ignored")
	}
}

func TestCreateSessionDuplicate(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()
	row := SessionRow{ID: "dup", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	if err := CreateSession(ctx, database, row); err != nil {
		t.Fatalf("first CreateSession: %v", err)
	}
	if err := CreateSession(ctx, database, row); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	CreateSession(ctx, database, SessionRow{ID: "s1", IsAdmin: true, CreatedAt: now, ExpiresAt: now.Add(time.Hour)})

	if err := DeleteSession(ctx, database, "s1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	got, _ := GetSession(ctx, database, "s1", now)
	if got != nil {
		t.Error("expected session to be deleted")
	}

	// Deleting again is fine.
	if err := DeleteSession(ctx, database, "s1"); err != nil {
		t.Fatalf("second DeleteSession: %v", err)
	}
}

func TestCreateSessionPurgesExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	CreateSession(ctx, database, SessionRow{ID: "old", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)})
	CreateSession(ctx, database, SessionRow{ID: "new", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected expired session to be purged, %d sessions remain", count)
	}
}
