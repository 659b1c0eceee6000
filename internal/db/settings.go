package db

import (
	"context"
	"database/sql"
	"errors"
)

// GetSetting returns the stored value for key, or ErrNotFound.
func GetSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &StorageError{Op: "get setting", Key: key, Err: ErrNotFound}
	}
	if err != nil {
		return "", &StorageError{Op: "get setting", Key: key, Err: err}
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func SetSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return &StorageError{Op: "set setting", Key: key, Err: err}
	}
	return nil
}
