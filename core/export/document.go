// Package export renders a track as a single-page printable document.
package export

import (
	"errors"

	"fevertracker/core/codec"
	"fevertracker/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmptyTrack is returned when exporting a track without readings.
var ErrEmptyTrack = errors.New("track has no readings")

// Title is the banner printed at the top of every document.
const Title = "Fever Tracker"

// Columns of the document grid: every row field except the name.
var Columns = []string{codec.FieldDate, codec.FieldHour, codec.FieldTemperature, codec.FieldMedicine, codec.FieldDose}

// Document is the layout-independent content of an exported track.
type Document struct {
	Title   string
	Info    []string
	Columns []string
	Rows    [][]string
}

// BuildDocument lays out readings: patient info from the first reading,
// one grid row per reading with the name left out.
func BuildDocument(readings []model.Reading) (*Document, error) {
	if len(readings) == 0 {
		return nil, ErrEmptyTrack
	}
	first := readings[0]
	doc := &Document{
		Title: Title,
		Info: []string{
			"Name: " + cases.Title(language.English).String(first.Name),
			"Date: " + first.Date,
		},
		Columns: Columns,
		Rows:    make([][]string, 0, len(readings)),
	}
	for _, r := range readings {
		doc.Rows = append(doc.Rows, []string{r.Date, r.Hour, r.Temperature, r.Medicine, r.Dose})
	}
	return doc, nil
}
