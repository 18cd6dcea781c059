// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Bar is one category of a ranked bar chart.
type Bar struct {
	Label string
	Value float64

	// Annotation replaces the formatted value next to the bar when set.
	Annotation string
}

// BarSpec describes a ranked horizontal bar chart.
type BarSpec struct {
	Title         string
	ValueLabel    string
	CategoryLabel string
	Kind          ValueKind
	Bars          []Bar
	Color         color.Color

	// Colors fills bars one by one, indexed like Bars. Missing entries use Color.
	Colors []color.Color
}

func (s BarSpec) barColor(i int) color.Color {
	if i < len(s.Colors) && s.Colors[i] != nil {
		return s.Colors[i]
	}
	return fillColor(s.Color)
}

// HorizontalBars draws one bar per item in the given order, first item at the
// top, each annotated with its value.
func HorizontalBars(w io.Writer, spec BarSpec, out Output) error {
	n := len(spec.Bars)
	if n == 0 {
		return ErrNoData
	}

	names := make([]string, n)
	points := make(plotter.XYs, n)
	annotations := make([]string, n)
	lo, hi := 0.0, 0.0

	for i, b := range spec.Bars {
		// Row 0 sits at the top of the axis.
		pos := n - 1 - i
		names[pos] = b.Label
		points[pos] = plotter.XY{X: b.Value, Y: float64(pos)}
		annotations[pos] = b.Annotation
		if annotations[pos] == "" {
			annotations[pos] = spec.Kind.label(b.Value)
		}
		lo, hi = math.Min(lo, b.Value), math.Max(hi, b.Value)
	}

	p := newPlot(spec.Title)
	p.X.Label.Text = spec.ValueLabel
	p.Y.Label.Text = spec.CategoryLabel

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	grid.Vertical.Color = colorGrid
	p.Add(grid)

	width := barWidth(out.Height, n)
	for i, b := range spec.Bars {
		bar, err := plotter.NewBarChart(plotter.Values{b.Value}, width)
		if err != nil {
			return fmt.Errorf("failed to build bar chart: %w", err)
		}
		bar.Horizontal = true
		bar.XMin = float64(n - 1 - i)
		bar.Color = spec.barColor(i)
		bar.LineStyle.Width = 0
		p.Add(bar)
	}

	labels, err := valueLabels(points, annotations)
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].YAlign = text.YCenter
	}
	labels.Offset = vg.Point{X: vg.Points(4)}
	p.Add(labels)

	p.NominalY(names...)
	p.X.Min = lo
	p.X.Max = headroom(hi)
	p.X.Tick.Marker = newValueTicks(spec.Kind, hi)

	return writePlot(w, p, out)
}

// SeriesSpec describes a vertical bar time series.
type SeriesSpec struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64

	// Average adds a dashed horizontal line at the series mean.
	Average bool
	Color   color.Color
}

// VerticalBars draws one bar per period in the given order with value labels.
func VerticalBars(w io.Writer, spec SeriesSpec, out Output) error {
	n := len(spec.Values)
	if n == 0 {
		return ErrNoData
	}
	if len(spec.Labels) != n {
		return fmt.Errorf("%w: %d labels for %d values", ErrLengthMismatch, len(spec.Labels), n)
	}

	p := newPlot(spec.Title)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = colorGrid
	p.Add(grid)

	bars, err := plotter.NewBarChart(plotter.Values(spec.Values), barWidth(out.Width, n))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = fillColor(spec.Color)
	bars.LineStyle.Width = 0
	p.Add(bars)

	points := make(plotter.XYs, n)
	annotations := make([]string, n)
	hi := 0.0
	for i, v := range spec.Values {
		points[i] = plotter.XY{X: float64(i), Y: v}
		annotations[i] = FormatCount(v)
		hi = math.Max(hi, v)
	}
	labels, err := valueLabels(points, annotations)
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
	}
	labels.Offset = vg.Point{Y: vg.Points(3)}
	p.Add(labels)

	if spec.Average {
		avg := mean(spec.Values)
		line, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: avg},
			{X: float64(n) - 0.5, Y: avg},
		})
		if err != nil {
			return fmt.Errorf("failed to build average line: %w", err)
		}
		line.Color = colorAverage
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(line)
		p.Legend.Add("Average: "+FormatCount(math.Trunc(avg)), line)
		p.Legend.Top = true
	}

	p.NominalX(spec.Labels...)
	rotateTickLabels(&p.X, n)
	p.Y.Min = 0
	p.Y.Max = headroom(hi)
	p.Y.Tick.Marker = newValueTicks(Count, hi)

	return writePlot(w, p, out)
}

// valueLabels builds bar annotations in the shared text style.
func valueLabels(points plotter.XYs, annotations []string) (*plotter.Labels, error) {
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: annotations})
	if err != nil {
		return nil, fmt.Errorf("failed to build value labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = colorText
		labels.TextStyle[i].Font.Size = vg.Points(8)
	}
	return labels, nil
}

// rotateTickLabels turns category labels vertical when they would collide.
func rotateTickLabels(axis *plot.Axis, n int) {
	if n <= 12 {
		return
	}
	axis.Tick.Label.Rotation = math.Pi / 2
	axis.Tick.Label.XAlign = text.XRight
	axis.Tick.Label.YAlign = text.YCenter
}

// headroom leaves space past the largest bar for its label.
func headroom(hi float64) float64 {
	if hi <= 0 {
		return 1
	}
	return hi * 1.15
}

func fillColor(c color.Color) color.Color {
	if c == nil {
		return colorBar
	}
	return c
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
