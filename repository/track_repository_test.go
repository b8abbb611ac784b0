package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fevertracker/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestRepo(t *testing.T) (TrackRepository, string) {
	t.Helper()
	dir := t.TempDir()
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	return NewCSVTrackRepository(dir, fixedClock(now)), dir
}

func TestCreateTrackThenReadBack(t *testing.T) {
	repo, dir := newTestRepo(t)

	id, err := repo.CreateTrack("joan", model.Reading{Temperature: "38.5", Medicine: "Ibuprofen", Dose: "150"})
	if err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	if id.Path != filepath.Join(dir, "joan_01-01-2024.csv") {
		t.Fatalf("unexpected path %q", id.Path)
	}
	if id.Patient != "joan" || id.Date != "01-01-2024" {
		t.Fatalf("unexpected id %+v", id)
	}

	readings, err := repo.ReadAll(id.Path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	want := model.Reading{Name: "joan", Date: "01-01-2024", Hour: "10:00", Temperature: "38.5", Medicine: "Ibuprofen", Dose: "150"}
	if len(readings) != 1 || readings[0] != want {
		t.Fatalf("got %+v, want [%+v]", readings, want)
	}
}

func TestCreateTrackRefusesOverwrite(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.CreateTrack("joan", model.Reading{Temperature: "38.5", Medicine: "Ibuprofen", Dose: "150"})
	if err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	if _, err := repo.CreateTrack("joan", model.Reading{Temperature: "39", Medicine: "x", Dose: "1"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	readings, err := repo.ReadAll(id.Path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(readings) != 1 || readings[0].Temperature != "38.5" {
		t.Fatalf("existing track was modified: %+v", readings)
	}
}

func TestAppendReadings(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	repo := NewCSVTrackRepository(dir, func() time.Time {
		now = now.Add(90 * time.Minute)
		return now
	})

	id, err := repo.CreateTrack("joan", model.Reading{Temperature: "38.5", Medicine: "Ibuprofen", Dose: "150"})
	if err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}

	const n = 3
	for i := 0; i < n; i++ {
		if err := repo.AppendReading(id.Path, model.Reading{Name: "ignored", Temperature: "37.9", Medicine: "Paracetamol", Dose: "1"}); err != nil {
			t.Fatalf("AppendReading failed: %v", err)
		}
	}

	readings, err := repo.ReadAll(id.Path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(readings) != 1+n {
		t.Fatalf("expected %d rows, got %d", 1+n, len(readings))
	}
	if readings[0].Name != "joan" {
		t.Fatalf("first row lost its name: %+v", readings[0])
	}
	for i, r := range readings[1:] {
		if r.Name != "" {
			t.Errorf("appended row %d has name %q", i, r.Name)
		}
	}
	if readings[1].Hour != "13:00" || readings[3].Hour != "16:00" {
		t.Fatalf("rows not stamped at call time: %+v", readings)
	}
}

func TestAppendReadingMissingTrack(t *testing.T) {
	repo, dir := newTestRepo(t)
	err := repo.AppendReading(filepath.Join(dir, "nobody_01-01-2024.csv"), model.Reading{Temperature: "38"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "nobody_01-01-2024.csv")); statErr == nil {
		t.Fatal("append must not create a track")
	}
}

func TestReadMissingTrack(t *testing.T) {
	repo, dir := newTestRepo(t)
	if _, err := repo.ReadAll(filepath.Join(dir, "missing.csv")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.ReadRows(filepath.Join(dir, "missing.csv")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadRowsIncludesHeader(t *testing.T) {
	repo, _ := newTestRepo(t)
	id, err := repo.CreateTrack("joan", model.Reading{Temperature: "38.5", Medicine: "Ibuprofen", Dose: "150"})
	if err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	rows, err := repo.ReadRows(id.Path)
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "Name" || rows[1][0] != "joan" {
		t.Fatalf("unexpected rows %v", rows)
	}
}
