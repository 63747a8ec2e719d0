package store

import (
	"context"
	"testing"

	"github.com/erazemk/stockroom/internal/db"
)

func TestSessionSigningKeyPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	key1, err := SessionSigningKey(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(key1) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(key1))
	}

	key2, err := SessionSigningKey(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if key1 != key2 {
		t.Fatalf("expected the stored key to be reused, got %q and %q", key1, key2)
	}
}

func TestSettingOrCreateKeepsExistingValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := database.Exec(`INSERT INTO settings (key, value) VALUES ('greeting', 'hello')`); err != nil {
		t.Fatal(err)
	}

	calls := 0
	got, err := settingOrCreate(ctx, database, "greeting", func() (string, error) {
		calls++
		return "replacement", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("expected stored value, got %q", got)
	}
	if calls != 1 {
		t.Errorf("expected generate to run once, ran %d times", calls)
	}
}
