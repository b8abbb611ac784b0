package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TrackExt is the suffix of a track file in the tracks directory.
const TrackExt = ".csv"

// TrackID identifies a track file: one patient, one creation date.
type TrackID struct {
	Patient string
	Date    string
	Path    string
}

// TrackFileName builds the file name of the track for patient on date.
func TrackFileName(patient, date string) string {
	return fmt.Sprintf("%s_%s%s", patient, date, TrackExt)
}

// ParseTrackID derives a TrackID from a track file path.
// Names without an underscore keep the whole stem as the patient.
func ParseTrackID(path string) TrackID {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id := TrackID{Patient: stem, Path: path}
	if i := strings.LastIndex(stem, "_"); i >= 0 {
		id.Patient = stem[:i]
		id.Date = stem[i+1:]
	}
	return id
}

// Display is the file base name without its storage suffix.
func (id TrackID) Display() string {
	base := filepath.Base(id.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
