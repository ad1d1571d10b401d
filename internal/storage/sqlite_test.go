package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func setupKV(t *testing.T) *SQLiteKeyValue {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "doseup-test.db")
	kv, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestGetMissingKey(t *testing.T) {
	kv := setupKV(t)
	if _, err := kv.Get(context.Background(), KeyReminders); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	kv := setupKV(t)
	ctx := context.Background()

	if err := kv.Set(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "dark" {
		t.Fatalf("got %q want dark", got)
	}
}

func TestSetOverwrites(t *testing.T) {
	kv := setupKV(t)
	ctx := context.Background()

	if err := kv.Set(ctx, KeyReminders, `[]`); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := kv.Set(ctx, KeyReminders, `[{"pillName":"Aspirin"}]`); err != nil {
		t.Fatalf("second set: %v", err)
	}
	got, err := kv.Get(ctx, KeyReminders)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `[{"pillName":"Aspirin"}]` {
		t.Fatalf("expected overwritten value, got %q", got)
	}
}

func TestDelete(t *testing.T) {
	kv := setupKV(t)
	ctx := context.Background()

	if err := kv.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting missing key, got: %v", err)
	}
	if err := kv.Set(ctx, KeyTheme, "light"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Delete(ctx, KeyTheme); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, KeyTheme); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestMigrateDownDropsTable(t *testing.T) {
	kv := setupKV(t)
	if err := MigrateDown(kv.db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if _, err := kv.Get(context.Background(), KeyTheme); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected query failure after drop, got: %v", err)
	}
}
