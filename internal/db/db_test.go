package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"plantmanager/internal/db/migrations"
	"plantmanager/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func savedPlant(id int64, name string, notifyAt time.Time) model.SavedPlant {
	return model.SavedPlant{
		Plant: model.Plant{
			ID:           id,
			Name:         name,
			About:        "About " + name,
			WaterTips:    "Keep the soil moist",
			Photo:        "https://example.com/" + name + ".svg",
			Environments: []string{"living_room"},
			Frequency:    model.Frequency{Times: 2, RepeatEvery: "week"},
		},
		NotifyAt: notifyAt,
		SavedAt:  notifyAt.Add(-48 * time.Hour),
	}
}

func TestSaveAndLoadPlants(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	base := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

	plants := []model.SavedPlant{
		savedPlant(3, "Yucca", base.Add(72*time.Hour)),
		savedPlant(1, "Babosa", base),
		savedPlant(2, "Pacová", base.Add(24*time.Hour)),
	}
	for _, p := range plants {
		before, err := SavePlant(ctx, db, p)
		if err != nil {
			t.Fatalf("save %s: %v", p.Name, err)
		}
		if before != nil {
			t.Errorf("save %s: expected no previous record, got %+v", p.Name, before)
		}
	}

	got, err := LoadPlants(ctx, db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []model.SavedPlant{plants[1], plants[2], plants[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("plants mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPlantsEmpty(t *testing.T) {
	got, err := LoadPlants(context.Background(), newTestDB(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSavePlantReplacesExisting(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	first := savedPlant(7, "Imbé", time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))

	if _, err := SavePlant(ctx, db, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := first
	second.NotifyAt = first.NotifyAt.Add(24 * time.Hour)
	before, err := SavePlant(ctx, db, second)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if before == nil {
		t.Fatal("expected previous record")
	}
	if diff := cmp.Diff(first, *before); diff != "" {
		t.Errorf("previous record mismatch (-want +got):\n%s", diff)
	}

	got, err := GetPlant(ctx, db, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("stored record mismatch (-want +got):\n%s", diff)
	}

	all, err := LoadPlants(ctx, db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(1, len(all)); diff != "" {
		t.Errorf("record count (-want +got):\n%s", diff)
	}
}

func TestSavePlantDefaultsSavedAt(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	p := savedPlant(4, "Peperomia", time.Now().Add(time.Hour))
	p.SavedAt = time.Time{}

	if _, err := SavePlant(ctx, db, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := GetPlant(ctx, db, 4)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SavedAt.IsZero() {
		t.Error("expected SavedAt to be set")
	}
}

func TestRemovePlant(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	p := savedPlant(9, "Samambaia", time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC))

	if _, err := SavePlant(ctx, db, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	removed, err := RemovePlant(ctx, db, 9)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if diff := cmp.Diff(p, removed); diff != "" {
		t.Errorf("removed record mismatch (-want +got):\n%s", diff)
	}

	if _, err := GetPlant(ctx, db, 9); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after remove: expected ErrNotFound, got %v", err)
	}

	_, err = RemovePlant(ctx, db, 9)
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected *StorageError, got %T (%v)", err, err)
	}
	if diff := cmp.Diff("9", storageErr.Key); diff != "" {
		t.Errorf("key mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound in chain, got %v", err)
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if _, err := GetSetting(ctx, db, "last_environment"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	tests := []struct {
		value string
	}{
		{value: "kitchen"},
		{value: "bedroom"},
		{value: ""},
	}
	for _, tt := range tests {
		if err := SetSetting(ctx, db, "last_environment", tt.value); err != nil {
			t.Fatalf("set %q: %v", tt.value, err)
		}
		got, err := GetSetting(ctx, db, "last_environment")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if diff := cmp.Diff(tt.value, got); diff != "" {
			t.Errorf("value mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestOpenFileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.db")
	ctx := context.Background()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := SavePlant(ctx, db, savedPlant(1, "Babosa", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer func() { _ = db.Close() }()

	version, err := migrations.Version(db)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if diff := cmp.Diff(int64(2), version); diff != "" {
		t.Errorf("schema version (-want +got):\n%s", diff)
	}

	all, err := LoadPlants(ctx, db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(1, len(all)); diff != "" {
		t.Errorf("plants after reopen (-want +got):\n%s", diff)
	}
}
