package settings

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	prefs, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if prefs.Theme != "dark" {
		t.Fatalf("theme = %q, want dark", prefs.Theme)
	}
	if prefs.Currency != "₹" {
		t.Fatalf("currency = %q", prefs.Currency)
	}
	if prefs.DisplayName != "" {
		t.Fatalf("display name = %q, want empty", prefs.DisplayName)
	}
}

func TestSetAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeyTheme, "light"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "light" {
		t.Fatalf("theme = %q, want light", got)
	}

	// Upsert overwrites.
	if err := store.Set(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	got, err = store.Get(ctx, KeyTheme)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if got != "dark" {
		t.Fatalf("theme = %q, want dark", got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := Preferences{Theme: "light", Currency: "$", DisplayName: "Alex"}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("load = %+v, want %+v", got, want)
	}
}
