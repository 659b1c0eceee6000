package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"plantmanager/internal/model"
)

// LoadPlants returns every saved plant, soonest watering first.
func LoadPlants(ctx context.Context, db *sql.DB) ([]model.SavedPlant, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, data, notify_at, saved_at
		FROM plants
		ORDER BY notify_at ASC, CAST(id AS INTEGER) ASC
	`)
	if err != nil {
		return nil, &StorageError{Op: "load plants", Err: err}
	}
	defer func() { _ = rows.Close() }()

	plants := []model.SavedPlant{}
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, &StorageError{Op: "load plants", Err: err}
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "load plants", Err: err}
	}
	return plants, nil
}

// GetPlant returns a single saved plant by catalog ID.
func GetPlant(ctx context.Context, db *sql.DB, id int64) (model.SavedPlant, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, data, notify_at, saved_at
		FROM plants
		WHERE id = ?
	`, plantKey(id))
	p, err := scanPlant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, &StorageError{Op: "get plant", Key: plantKey(id), Err: ErrNotFound}
	}
	if err != nil {
		return p, &StorageError{Op: "get plant", Key: plantKey(id), Err: err}
	}
	return p, nil
}

// SavePlant inserts or replaces a saved plant. It returns the record it
// replaced, or nil when the plant was not saved before.
func SavePlant(ctx context.Context, db *sql.DB, p model.SavedPlant) (*model.SavedPlant, error) {
	key := plantKey(p.ID)
	fail := func(err error) (*model.SavedPlant, error) {
		return nil, &StorageError{Op: "save plant", Key: key, Err: err}
	}

	if p.SavedAt.IsZero() {
		p.SavedAt = time.Now()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fail(fmt.Errorf("encode plant: %w", err))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fail(fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	var before *model.SavedPlant
	prev, err := scanPlant(tx.QueryRowContext(ctx,
		`SELECT id, data, notify_at, saved_at FROM plants WHERE id = ?`, key))
	switch {
	case err == nil:
		before = &prev
	case !errors.Is(err, sql.ErrNoRows):
		return fail(err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO plants (id, data, notify_at, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			notify_at = excluded.notify_at,
			saved_at = excluded.saved_at
	`, key, string(data), formatTime(p.NotifyAt), formatTime(p.SavedAt)); err != nil {
		return fail(fmt.Errorf("upsert: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return fail(fmt.Errorf("commit: %w", err))
	}
	return before, nil
}

// RemovePlant deletes a saved plant and returns what was removed.
func RemovePlant(ctx context.Context, db *sql.DB, id int64) (model.SavedPlant, error) {
	key := plantKey(id)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.SavedPlant{}, &StorageError{Op: "remove plant", Key: key, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	removed, err := scanPlant(tx.QueryRowContext(ctx,
		`SELECT id, data, notify_at, saved_at FROM plants WHERE id = ?`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return removed, &StorageError{Op: "remove plant", Key: key, Err: ErrNotFound}
	}
	if err != nil {
		return removed, &StorageError{Op: "remove plant", Key: key, Err: err}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM plants WHERE id = ?`, key); err != nil {
		return removed, &StorageError{Op: "remove plant", Key: key, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return removed, &StorageError{Op: "remove plant", Key: key, Err: err}
	}
	return removed, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlant(s scanner) (model.SavedPlant, error) {
	var (
		p                 model.SavedPlant
		key, data         string
		notifyAt, savedAt string
	)
	if err := s.Scan(&key, &data, &notifyAt, &savedAt); err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return p, fmt.Errorf("decode plant %s: %w", key, err)
	}
	// Columns are authoritative for the timestamps.
	if t, err := time.Parse(timeLayout, notifyAt); err == nil {
		p.NotifyAt = t
	}
	if t, err := time.Parse(timeLayout, savedAt); err == nil {
		p.SavedAt = t
	}
	return p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
