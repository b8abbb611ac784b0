// Package chart draws a track's temperature curve as a standalone HTML page.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fevertracker/core/utils"
	"fevertracker/core/validate"
	"fevertracker/logger"
	"fevertracker/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ChartExt is the suffix of chart pages.
const ChartExt = ".html"

// ErrNoTemperatures is returned when no reading carries a numeric temperature.
var ErrNoTemperatures = errors.New("track has no numeric temperatures")

// Series is the plotted part of a track.
type Series struct {
	Patient string
	XAxis   []string
	Values  []float64
}

// BuildSeries collects the numeric temperatures of readings, labelled "Date Hour".
// Readings whose temperature does not parse are skipped.
func BuildSeries(readings []model.Reading) (Series, error) {
	var s Series
	if len(readings) > 0 {
		s.Patient = cases.Title(language.English).String(readings[0].Name)
	}
	for _, r := range readings {
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Temperature), 64)
		if err != nil {
			continue
		}
		s.XAxis = append(s.XAxis, strings.TrimSpace(r.Date+" "+r.Hour))
		s.Values = append(s.Values, v)
	}
	if len(s.Values) == 0 {
		return s, ErrNoTemperatures
	}
	return s, nil
}

func newLineChart(s Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons", PageTitle: "Fever Tracker"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Temperature Over Time",
			Subtitle: s.Patient,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "°C",
			NameLocation: "middle",
			NameGap:      40,
			Min:          validate.MinTemperature,
			Max:          validate.MaxTemperature,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	items := make([]opts.LineData, 0, len(s.Values))
	for _, v := range s.Values {
		items = append(items, opts.LineData{Value: v})
	}
	line.SetXAxis(s.XAxis).AddSeries("Temperature", items)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// Render writes the chart page of readings to w.
func Render(w io.Writer, readings []model.Reading) error {
	s, err := BuildSeries(readings)
	if err != nil {
		return err
	}
	return newLineChart(s).Render(w)
}

// Writer writes chart pages into Dir.
type Writer struct {
	Dir string
}

// Write renders readings into Dir under the track's base name and returns the path.
func (cw *Writer) Write(readings []model.Reading, trackPath string) (string, error) {
	s, err := BuildSeries(readings)
	if err != nil {
		return "", err
	}
	out := utils.SiblingPath(trackPath, cw.Dir, ChartExt)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create chart %s: %w", out, err)
	}
	if err := newLineChart(s).Render(f); err != nil {
		f.Close()
		os.Remove(out)
		return "", fmt.Errorf("failed to render chart %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(out)
		return "", fmt.Errorf("failed to close chart %s: %w", out, err)
	}
	logger.Info("chart written", logger.String("path", out), logger.Int("points", len(s.Values)))
	return out, nil
}
