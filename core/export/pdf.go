package export

import (
	"fmt"
	"io"
	"os"

	"fevertracker/core/utils"
	"fevertracker/logger"
	"fevertracker/model"

	"github.com/go-pdf/fpdf"
)

// DocumentExt is the suffix of exported documents.
const DocumentExt = ".pdf"

const (
	fontFamily    = "Helvetica"
	titleFontSize = 16
	infoFontSize  = 11
	cellFontSize  = 10
)

// Exporter writes documents into Dir.
type Exporter struct {
	Dir string
}

// NewExporter returns an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// OutputPath is where the document of the track at trackPath is written.
func (e *Exporter) OutputPath(trackPath string) string {
	return utils.SiblingPath(trackPath, e.Dir, DocumentExt)
}

// writeDocument renders doc to w. Replaced in tests.
var writeDocument = Write

// Export renders readings to a PDF next to trackPath's name in the
// documents directory and returns the written path.
func (e *Exporter) Export(readings []model.Reading, trackPath string) (string, error) {
	doc, err := BuildDocument(readings)
	if err != nil {
		return "", err
	}
	out := e.OutputPath(trackPath)

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create document %s: %w", out, err)
	}
	if err := writeDocument(f, doc); err != nil {
		f.Close()
		os.Remove(out)
		return "", fmt.Errorf("failed to write document %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(out)
		return "", fmt.Errorf("failed to close document %s: %w", out, err)
	}
	logger.Info("document exported", logger.String("path", out), logger.Int("rows", len(doc.Rows)))
	return out, nil
}

// Write renders doc on A4 pages.
func Write(w io.Writer, doc *Document) error {
	return layout(doc).Output(w)
}

// layout draws doc. Everything fits on the first page for ordinary tracks;
// rows past the bottom margin continue on a new page under a repeated
// column header.
func layout(doc *Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	limit := pageHeight - bottom
	// Rows are placed cell by cell, so breaks are taken per row below.
	pdf.SetAutoPageBreak(false, bottom)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "BU", titleFontSize)
	pdf.CellFormat(180, 30, tr(doc.Title), "", 1, "C", false, 0, "")

	pdf.SetFont(fontFamily, "", infoFontSize)
	for _, line := range doc.Info {
		pdf.CellFormat(80, 8, tr(line), "", 1, "", false, 0, "")
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(doc.Columns))
	_, fontHeight := pdf.GetFontSize()
	lineHeight := fontHeight * 2

	pdf.Ln(lineHeight)
	writeRow(pdf, tr, doc.Columns, colWidth, lineHeight)

	for _, row := range doc.Rows {
		pdf.SetFont(fontFamily, "", cellFontSize)
		if pdf.GetY()+rowHeight(pdf, tr, row, colWidth, lineHeight) > limit {
			pdf.AddPage()
			pdf.SetFont(fontFamily, "", infoFontSize)
			writeRow(pdf, tr, doc.Columns, colWidth, lineHeight)
			pdf.SetFont(fontFamily, "", cellFontSize)
		}
		writeRow(pdf, tr, row, colWidth, lineHeight)
	}
	return pdf
}

func wrapCells(pdf *fpdf.Fpdf, tr func(string) string, cells []string, colWidth float64) [][]string {
	wrapped := make([][]string, len(cells))
	for i, c := range cells {
		wrapped[i] = pdf.SplitText(tr(c), colWidth-2)
	}
	return wrapped
}

// rowHeight is lineHeight, or taller when wrapped text needs more room.
func rowHeight(pdf *fpdf.Fpdf, tr func(string) string, cells []string, colWidth, lineHeight float64) float64 {
	_, fontHeight := pdf.GetFontSize()
	height := lineHeight
	for _, lines := range wrapCells(pdf, tr, cells, colWidth) {
		if h := float64(len(lines))*fontHeight + fontHeight; h > height {
			height = h
		}
	}
	return height
}

// writeRow draws one bordered grid row at the current position.
func writeRow(pdf *fpdf.Fpdf, tr func(string) string, cells []string, colWidth, lineHeight float64) {
	_, fontHeight := pdf.GetFontSize()
	wrapped := wrapCells(pdf, tr, cells, colWidth)
	height := rowHeight(pdf, tr, cells, colWidth, lineHeight)

	x0, y0 := pdf.GetXY()
	for i, lines := range wrapped {
		x := x0 + float64(i)*colWidth
		pdf.Rect(x, y0, colWidth, height, "D")
		textTop := y0 + (height-float64(len(lines))*fontHeight)/2
		for j, line := range lines {
			pdf.SetXY(x, textTop+float64(j)*fontHeight)
			pdf.CellFormat(colWidth, fontHeight, line, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetXY(x0, y0+height)
}
