package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fevertracker/model"
)

var joan = []model.Reading{{
	Name:        "Joan",
	Date:        "01-01-2024",
	Hour:        "10:00",
	Temperature: "38.5",
	Medicine:    "Ibuprofen",
	Dose:        "150",
}}

func TestBuildDocument(t *testing.T) {
	doc, err := BuildDocument(joan)
	if err != nil {
		t.Fatalf("BuildDocument failed: %v", err)
	}
	header := strings.Join(doc.Info, "\n")
	if !strings.Contains(header, "Name: Joan") || !strings.Contains(header, "Date: 01-01-2024") {
		t.Fatalf("unexpected header %q", header)
	}
	if !reflect.DeepEqual(doc.Columns, []string{"Date", "Hour", "Temperature", "Medicine", "Dose"}) {
		t.Fatalf("unexpected columns %v", doc.Columns)
	}
	if len(doc.Rows) != 1 || len(doc.Rows[0]) != 5 {
		t.Fatalf("expected one row of 5 cells, got %v", doc.Rows)
	}
	if doc.Rows[0][0] != "01-01-2024" || doc.Rows[0][4] != "150" {
		t.Fatalf("unexpected row %v", doc.Rows[0])
	}
}

func TestBuildDocumentTitleCasesNameAndKeepsOrder(t *testing.T) {
	readings := []model.Reading{
		{Name: "joan de arc", Date: "02-02-2024", Hour: "08:00", Temperature: "39"},
		{Date: "02-02-2024", Hour: "12:00", Temperature: "38"},
		{Date: "03-02-2024", Hour: "09:00", Temperature: "37"},
	}
	doc, err := BuildDocument(readings)
	if err != nil {
		t.Fatalf("BuildDocument failed: %v", err)
	}
	if doc.Info[0] != "Name: Joan De Arc" {
		t.Fatalf("unexpected name line %q", doc.Info[0])
	}
	for i, row := range doc.Rows {
		if row[1] != readings[i].Hour {
			t.Fatalf("row %d out of order: %v", i, row)
		}
	}
}

func TestBuildDocumentEmpty(t *testing.T) {
	if _, err := BuildDocument(nil); !errors.Is(err, ErrEmptyTrack) {
		t.Fatalf("expected ErrEmptyTrack, got %v", err)
	}
}

func TestWriteProducesPDF(t *testing.T) {
	doc, err := BuildDocument(append(joan, model.Reading{
		Date: "01-01-2024", Hour: "14:00", Temperature: "39.1",
		Medicine: "Paracetamol with a very long descriptive name that wraps", Dose: "1",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:16])
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir)

	out, err := e.Export(joan, filepath.Join("csv_files", "Joan_01-01-2024.csv"))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out != filepath.Join(dir, "Joan_01-01-2024.pdf") {
		t.Fatalf("unexpected output path %q", out)
	}
	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Fatalf("document not written: %v", err)
	}
}

func TestExportEmptyTrackWritesNothing(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewExporter(dir).Export(nil, "joan_01-01-2024.csv"); !errors.Is(err, ErrEmptyTrack) {
		t.Fatalf("expected ErrEmptyTrack, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no files, got %d", len(entries))
	}
}

func TestExportUnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	_, err := NewExporter(blocker).Export(joan, "joan_01-01-2024.csv")
	if err == nil {
		t.Fatal("expected an IO error")
	}
	if errors.Is(err, ErrEmptyTrack) {
		t.Fatalf("expected an IO error, got %v", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected a wrapped *fs.PathError, got %T: %v", err, err)
	}
}

func trackOf(n int) []model.Reading {
	readings := make([]model.Reading, n)
	for i := range readings {
		readings[i] = model.Reading{
			Date: "01-01-2024", Hour: fmt.Sprintf("%02d:00", i%24),
			Temperature: "38.5", Medicine: "Ibuprofen", Dose: "150",
		}
	}
	readings[0].Name = "joan"
	return readings
}

func TestLayoutPageCount(t *testing.T) {
	tests := []struct {
		rows  int
		pages int
	}{
		{1, 1},
		{10, 1},
		{28, 2},
		{41, 2},
	}
	for _, tt := range tests {
		doc, err := BuildDocument(trackOf(tt.rows))
		if err != nil {
			t.Fatal(err)
		}
		pdf := layout(doc)
		if err := pdf.Error(); err != nil {
			t.Fatalf("rows=%d: layout failed: %v", tt.rows, err)
		}
		if got := pdf.PageCount(); got != tt.pages {
			t.Errorf("rows=%d: got %d pages, want %d", tt.rows, got, tt.pages)
		}
	}
}

func TestLayoutKeepsRowsInsidePage(t *testing.T) {
	doc, err := BuildDocument(trackOf(60))
	if err != nil {
		t.Fatal(err)
	}
	pdf := layout(doc)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if y := pdf.GetY(); y > pageHeight-bottom {
		t.Fatalf("last row ends at %.1fmm, past the bottom margin", y)
	}
}

func TestExportRemovesPartialDocument(t *testing.T) {
	prev := writeDocument
	writeDocument = func(w io.Writer, doc *Document) error {
		io.WriteString(w, "%PDF-1.3 partial")
		return errors.New("render failed")
	}
	defer func() { writeDocument = prev }()

	dir := t.TempDir()
	e := NewExporter(dir)
	if _, err := e.Export(joan, "joan_01-01-2024.csv"); err == nil {
		t.Fatal("expected write error")
	}
	if _, err := os.Stat(e.OutputPath("joan_01-01-2024.csv")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("partial document left on disk: %v", err)
	}
}
