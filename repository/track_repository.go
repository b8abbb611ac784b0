package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"fevertracker/core/codec"
	"fevertracker/logger"
	"fevertracker/model"
)

var (
	// ErrNotFound is returned when a track file does not exist.
	ErrNotFound = errors.New("track not found")
	// ErrAlreadyExists is returned when creating a track whose file already exists.
	ErrAlreadyExists = errors.New("track already exists")
)

// TrackRepository defines the operations on track files.
type TrackRepository interface {
	CreateTrack(name string, reading model.Reading) (model.TrackID, error)
	AppendReading(path string, reading model.Reading) error
	ReadAll(path string) ([]model.Reading, error)
	ReadRows(path string) ([][]string, error)
}

// csvTrackRepository implements TrackRepository with one CSV file per track.
type csvTrackRepository struct {
	dir string
	now func() time.Time
}

// NewCSVTrackRepository creates a repository rooted at dir.
// A nil clock defaults to time.Now.
func NewCSVTrackRepository(dir string, now func() time.Time) TrackRepository {
	if now == nil {
		now = time.Now
	}
	return &csvTrackRepository{dir: dir, now: now}
}

// stamp sets Date and Hour of r from the repository clock.
func (r *csvTrackRepository) stamp(reading model.Reading) model.Reading {
	t := r.now()
	reading.Date = t.Format(model.DateLayout)
	reading.Hour = t.Format(model.HourLayout)
	return reading
}

// CreateTrack writes a new track file with a header row and one reading carrying name.
func (r *csvTrackRepository) CreateTrack(name string, reading model.Reading) (model.TrackID, error) {
	reading = r.stamp(reading)
	reading.Name = name

	path := filepath.Join(r.dir, model.TrackFileName(name, reading.Date))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return model.TrackID{}, fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
		return model.TrackID{}, fmt.Errorf("failed to create track file %s: %w", path, err)
	}
	defer f.Close()

	if err := codec.Write(f, []model.Reading{reading}, true); err != nil {
		return model.TrackID{}, fmt.Errorf("failed to write track file %s: %w", path, err)
	}
	logger.Info("track created", logger.String("path", path), logger.String("patient", name))
	return model.ParseTrackID(path), nil
}

// AppendReading appends one reading with a blank name to an existing track.
func (r *csvTrackRepository) AppendReading(path string, reading model.Reading) error {
	reading = r.stamp(reading)
	reading.Name = ""

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to open track file %s: %w", path, err)
	}
	defer f.Close()

	if err := codec.Write(f, []model.Reading{reading}, false); err != nil {
		return fmt.Errorf("failed to append to track file %s: %w", path, err)
	}
	logger.Info("reading appended", logger.String("path", path), logger.String("temperature", reading.Temperature))
	return nil
}

// ReadAll returns every reading of the track at path, in file order.
func (r *csvTrackRepository) ReadAll(path string) ([]model.Reading, error) {
	f, err := r.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	readings, err := codec.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read track file %s: %w", path, err)
	}
	return readings, nil
}

// ReadRows returns the raw rows of the track at path, header included.
func (r *csvTrackRepository) ReadRows(path string) ([][]string, error) {
	f, err := r.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := codec.ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read track file %s: %w", path, err)
	}
	return rows, nil
}

func (r *csvTrackRepository) open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open track file %s: %w", path, err)
	}
	return f, nil
}
