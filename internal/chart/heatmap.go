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

	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// HeatPalette is the sequential ColorBrewer scheme used for heatmap cells.
const HeatPalette = "YlGnBu"

// Weekdays are the fixed heatmap columns, Sunday first.
var Weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// HeatGrid is a labeled matrix of counts. Values is indexed [row][column].
// Zero, negative and NaN cells have no data.
type HeatGrid struct {
	Rows    []string
	Columns []string
	Values  [][]float64
}

// NewHeatGrid allocates an all-zero grid.
func NewHeatGrid(rows, columns []string) *HeatGrid {
	values := make([][]float64, len(rows))
	for i := range values {
		values[i] = make([]float64, len(columns))
	}
	return &HeatGrid{Rows: rows, Columns: columns, Values: values}
}

// NoData reports whether the cell renders in the no-data shade.
func (g *HeatGrid) NoData(row, col int) bool {
	v := g.Values[row][col]
	return math.IsNaN(v) || v <= 0
}

// Cell returns the value at the named row and column.
func (g *HeatGrid) Cell(row, col string) (float64, bool) {
	r, c := indexOf(g.Rows, row), indexOf(g.Columns, col)
	if r < 0 || c < 0 {
		return 0, false
	}
	return g.Values[r][c], true
}

// bounds returns the smallest and largest cells that carry data.
func (g *HeatGrid) bounds() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for r := range g.Values {
		for c, v := range g.Values[r] {
			if g.NoData(r, c) {
				continue
			}
			lo, hi, ok = math.Min(lo, v), math.Max(hi, v), true
		}
	}
	return lo, hi, ok
}

func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

// heatXYZ adapts a HeatGrid to plotter.GridXYZ with row 0 at the top.
type heatXYZ struct {
	grid *HeatGrid
	log  bool
}

func (h heatXYZ) Dims() (c, r int) {
	return len(h.grid.Columns), len(h.grid.Rows)
}

func (h heatXYZ) Z(c, r int) float64 {
	row := len(h.grid.Rows) - 1 - r
	if h.grid.NoData(row, c) {
		return math.NaN()
	}
	return h.scale(h.grid.Values[row][c])
}

func (h heatXYZ) X(c int) float64 { return float64(c) }

func (h heatXYZ) Y(r int) float64 { return float64(r) }

func (h heatXYZ) scale(v float64) float64 {
	if h.log {
		return math.Log10(v)
	}
	return v
}

// HeatmapSpec describes an annotated heatmap.
type HeatmapSpec struct {
	Title  string
	XLabel string
	YLabel string
	Grid   *HeatGrid

	// ColumnLabels replaces the grid's column keys on the axis when set.
	ColumnLabels []string

	// LogScale colors cells by log10 of their value.
	LogScale bool

	// Totals, when set, adds an uncolored column with one total per row.
	Totals     []float64
	TotalLabel string
}

// Heatmap draws the grid with every cell annotated by its count. Cells
// without data use a neutral shade that is never part of the palette.
func Heatmap(w io.Writer, spec HeatmapSpec, out Output) error {
	g := spec.Grid
	if g == nil || len(g.Rows) == 0 || len(g.Columns) == 0 {
		return ErrNoData
	}
	if len(g.Values) != len(g.Rows) {
		return fmt.Errorf("%w: %d rows, %d value rows", ErrLengthMismatch, len(g.Rows), len(g.Values))
	}
	if spec.Totals != nil && len(spec.Totals) != len(g.Rows) {
		return fmt.Errorf("%w: %d rows, %d totals", ErrLengthMismatch, len(g.Rows), len(spec.Totals))
	}

	pal, err := brewer.GetPalette(brewer.TypeSequential, HeatPalette, 9)
	if err != nil {
		return fmt.Errorf("failed to load %s palette: %w", HeatPalette, err)
	}

	xyz := heatXYZ{grid: g, log: spec.LogScale}
	hm := plotter.NewHeatMap(xyz, pal)
	hm.NaN = colorNoData
	hm.Underflow = colorNoData

	// The palette starts at one ticket so the lowest real count is never
	// confused with the no-data shade.
	lo, hi, ok := g.bounds()
	if !ok {
		lo, hi = 1, 1
	}
	hm.Min = xyz.scale(math.Min(1, lo))
	hm.Max = xyz.scale(hi)
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}

	p := newPlot(spec.Title)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.Add(hm)

	cells, err := cellLabels(xyz, hm.Min, hm.Max)
	if err != nil {
		return err
	}
	p.Add(cells)

	columns := append([]string(nil), g.Columns...)
	if len(spec.ColumnLabels) == len(g.Columns) {
		copy(columns, spec.ColumnLabels)
	}
	if spec.Totals != nil {
		totals, err := totalLabels(len(g.Columns), spec.Totals)
		if err != nil {
			return err
		}
		p.Add(totals)
		label := spec.TotalLabel
		if label == "" {
			label = "Total"
		}
		columns = append(columns, label)
	}

	rows := make([]string, len(g.Rows))
	for i, name := range g.Rows {
		rows[len(g.Rows)-1-i] = name
	}
	p.NominalX(columns...)
	p.NominalY(rows...)
	p.Y.Tick.Label.Font.Size = vg.Points(8)

	return writePlot(w, p, out)
}

// cellLabels annotates every cell with its raw count; dark cells get light text.
func cellLabels(xyz heatXYZ, lo, hi float64) (*plotter.Labels, error) {
	cols, rows := xyz.Dims()
	points := make(plotter.XYs, 0, cols*rows)
	annotations := make([]string, 0, cols*rows)
	light := make([]bool, 0, cols*rows)

	for r := 0; r < rows; r++ {
		row := rows - 1 - r
		for c := 0; c < cols; c++ {
			v := xyz.grid.Values[row][c]
			if math.IsNaN(v) {
				v = 0
			}
			points = append(points, plotter.XY{X: xyz.X(c), Y: xyz.Y(r)})
			annotations = append(annotations, FormatCount(v))
			z := xyz.Z(c, r)
			light = append(light, !math.IsNaN(z) && (z-lo)/(hi-lo) > 0.6)
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: annotations})
	if err != nil {
		return nil, fmt.Errorf("failed to build cell labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(7)
		labels.TextStyle[i].Color = colorText
		if light[i] {
			labels.TextStyle[i].Color = color.White
		}
	}
	return labels, nil
}

// totalLabels writes row totals in the column after the last grid column.
func totalLabels(column int, totals []float64) (*plotter.Labels, error) {
	x := float64(column)
	points := make(plotter.XYs, len(totals))
	annotations := make([]string, len(totals))
	for i, t := range totals {
		points[i] = plotter.XY{X: x, Y: float64(len(totals) - 1 - i)}
		annotations[i] = FormatCount(t)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: annotations})
	if err != nil {
		return nil, fmt.Errorf("failed to build total labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(7)
		labels.TextStyle[i].Color = colorText
	}
	return labels, nil
}
