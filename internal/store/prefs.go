package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const darkThemeKey = "dark_theme"

// PrefsRepo stores small key/value preferences.
type PrefsRepo struct {
	db *sql.DB
}

// DarkTheme reports the persisted theme preference. Defaults to true
// when unset.
func (r *PrefsRepo) DarkTheme(ctx context.Context) (bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM prefs WHERE key = ?`, darkThemeKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("read theme preference: %w", err)
	}
	return value == "1", nil
}

// SetDarkTheme persists the theme preference.
func (r *PrefsRepo) SetDarkTheme(ctx context.Context, dark bool) error {
	value := "0"
	if dark {
		value = "1"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		darkThemeKey, value)
	if err != nil {
		return fmt.Errorf("save theme preference: %w", err)
	}
	return nil
}
