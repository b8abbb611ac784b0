// Package codec converts readings to and from comma-delimited rows.
package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"fevertracker/model"
)

// Field names, in row order.
const (
	FieldName        = "Name"
	FieldDate        = "Date"
	FieldHour        = "Hour"
	FieldTemperature = "Temperature"
	FieldMedicine    = "Medicine"
	FieldDose        = "Dose"
)

// Header is the fixed field order of every track row.
var Header = []string{FieldName, FieldDate, FieldHour, FieldTemperature, FieldMedicine, FieldDose}

// ErrMissingField is returned when a field map lacks one of the header keys.
var ErrMissingField = errors.New("missing field")

// Encode returns the six fields of r in header order.
func Encode(r model.Reading) []string {
	return []string{r.Name, r.Date, r.Hour, r.Temperature, r.Medicine, r.Dose}
}

// EncodeMap encodes a field map keyed by header name. Every key must be present.
func EncodeMap(fields map[string]string) ([]string, error) {
	row := make([]string, len(Header))
	for i, key := range Header {
		v, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
		row[i] = v
	}
	return row, nil
}

// Decode maps record onto a Reading using header to locate columns.
// Unknown columns are ignored and missing ones decode as empty strings.
func Decode(header, record []string) model.Reading {
	var r model.Reading
	for i, key := range header {
		if i >= len(record) {
			break
		}
		v := record[i]
		switch key {
		case FieldName:
			r.Name = v
		case FieldDate:
			r.Date = v
		case FieldHour:
			r.Hour = v
		case FieldTemperature:
			r.Temperature = v
		case FieldMedicine:
			r.Medicine = v
		case FieldDose:
			r.Dose = v
		}
	}
	return r
}

// Write encodes readings to w, preceded by the header row when withHeader is set.
func Write(w io.Writer, readings []model.Reading, withHeader bool) error {
	cw := csv.NewWriter(w)
	if withHeader {
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, r := range readings {
		if err := cw.Write(Encode(r)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRows reads every row of r, header included.
func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rows: %w", err)
	}
	return rows, nil
}

// ReadAll reads a header row followed by data rows and decodes the data rows.
// An empty input yields no readings.
func ReadAll(r io.Reader) ([]model.Reading, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	readings := make([]model.Reading, 0, len(rows)-1)
	for _, record := range rows[1:] {
		readings = append(readings, Decode(header, record))
	}
	return readings, nil
}
