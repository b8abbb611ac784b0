// Package render prints track rows as a bordered text grid.
package render

import (
	"io"

	"fevertracker/core/codec"
	"fevertracker/model"

	"github.com/olekukonko/tablewriter"
)

// Render writes rows as a grid. The first row is the header; an empty
// input writes nothing.
func Render(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(rows[0])
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(true)
	table.SetRowLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows[1:])
	table.Render()
	return nil
}

// RenderTrack writes readings under the standard header.
func RenderTrack(w io.Writer, readings []model.Reading) error {
	rows := make([][]string, 0, len(readings)+1)
	rows = append(rows, codec.Header)
	for _, r := range readings {
		rows = append(rows, codec.Encode(r))
	}
	return Render(w, rows)
}
