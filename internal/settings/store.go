// Package settings persists per-installation UI preferences in SQLite.
// Transaction data never lands here; the spreadsheet stays the source of
// truth for everything financial.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Preference keys.
const (
	KeyTheme       = "theme"
	KeyCurrency    = "currency"
	KeyDisplayName = "display_name"
)

// Defaults applied when a key has never been written.
var defaults = map[string]string{
	KeyTheme:       "dark",
	KeyCurrency:    "₹",
	KeyDisplayName: "",
}

// Preferences is the full settings document served to the UI.
type Preferences struct {
	Theme       string `json:"theme"`
	Currency    string `json:"currency"`
	DisplayName string `json:"displayName"`
}

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the stored value for key, or its default when unset.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return defaults[key], nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, nil
}

// Set upserts a preference value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}

	slog.InfoContext(ctx, "Preference saved", "key", key)
	return nil
}

// Load assembles the full preferences document with defaults filled in.
func (s *Store) Load(ctx context.Context) (Preferences, error) {
	prefs := Preferences{}

	theme, err := s.Get(ctx, KeyTheme)
	if err != nil {
		return prefs, err
	}
	currency, err := s.Get(ctx, KeyCurrency)
	if err != nil {
		return prefs, err
	}
	name, err := s.Get(ctx, KeyDisplayName)
	if err != nil {
		return prefs, err
	}

	prefs.Theme = theme
	prefs.Currency = currency
	prefs.DisplayName = name
	return prefs, nil
}

// Save writes every field of the preferences document.
func (s *Store) Save(ctx context.Context, prefs Preferences) error {
	if err := s.Set(ctx, KeyTheme, prefs.Theme); err != nil {
		return err
	}
	if err := s.Set(ctx, KeyCurrency, prefs.Currency); err != nil {
		return err
	}
	if err := s.Set(ctx, KeyDisplayName, prefs.DisplayName); err != nil {
		return err
	}
	return nil
}
