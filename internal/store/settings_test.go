package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/imeiwatch/internal/db"
)

func TestGetSessionSecretGeneratesOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, created, err := GetSessionSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Error("expected first call to create the secret")
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}

	second, created, err := GetSessionSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("expected second call to reuse the stored secret")
	}
	if first != second {
		t.Fatalf("expected same secret, got %q and %q", first, second)
	}
}

func TestGetSessionSecretKeepsExistingValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := database.Exec(`INSERT INTO settings (key, value) VALUES ('session_secret', 'preset')`); err != nil {
		t.Fatal(err)
	}

	secret, created, err := GetSessionSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if created || secret != "preset" {
		t.Errorf("expected preset secret, got %q created=%v", secret, created)
	}
}

func TestGetSettingMissing(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := getSetting(context.Background(), database, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
