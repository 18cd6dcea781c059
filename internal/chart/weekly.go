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
	"gonum.org/v1/plot/vg/draw"
)

// WeeklySpec describes the three-panel weekly trend figure. All slices are
// indexed by week.
type WeeklySpec struct {
	Title    string
	Weeks    []string
	Counts   []float64
	Absolute []Change
	Percent  []Change
}

// WeeklyPanels stacks weekly counts, absolute change and percent change.
// The count panel lists every week. Each change panel lists only the weeks
// whose change is defined, so an undefined change never reads as zero.
func WeeklyPanels(w io.Writer, spec WeeklySpec, out Output) error {
	if err := out.Validate(); err != nil {
		return err
	}
	n := len(spec.Weeks)
	if n == 0 {
		return ErrNoData
	}
	if len(spec.Counts) != n || len(spec.Absolute) != n || len(spec.Percent) != n {
		return fmt.Errorf("%w: %d weeks, %d counts, %d changes, %d percents",
			ErrLengthMismatch, n, len(spec.Counts), len(spec.Absolute), len(spec.Percent))
	}

	counts, err := countPanel(spec, barWidth(out.Width, n))
	if err != nil {
		return err
	}
	abs, err := changePanel(changeSeries{
		title:  "Weekly Change in Tickets",
		axis:   "Change in Ticket Count",
		kind:   Count,
		format: FormatSignedCount,
		gain:   colorGain,
		loss:   colorLoss,
	}, spec.Weeks, spec.Absolute, out.Width)
	if err != nil {
		return err
	}
	pct, err := changePanel(changeSeries{
		title:  "Weekly Percent Change",
		axis:   "Percent Change (%)",
		kind:   Percent,
		format: FormatPercent,
		gain:   colorPctGain,
		loss:   colorPctLoss,
	}, spec.Weeks, spec.Percent, out.Width)
	if err != nil {
		return err
	}

	c, err := draw.NewFormattedCanvas(out.Width, out.Height, out.Format)
	if err != nil {
		return fmt.Errorf("failed to create %s canvas: %w", out.Format, err)
	}
	dc := draw.New(c)

	plots := [][]*plot.Plot{{counts}, {abs}, {pct}}
	tiles := draw.Tiles{
		Rows:      3,
		Cols:      1,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out.Format, err)
	}
	return nil
}

func countPanel(spec WeeklySpec, width vg.Length) (*plot.Plot, error) {
	p := newPlot(spec.Title)
	p.X.Label.Text = "Week"
	p.Y.Label.Text = "Number of Tickets"

	bars, err := plotter.NewBarChart(plotter.Values(spec.Counts), width)
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly counts: %w", err)
	}
	bars.Color = colorBar
	bars.LineStyle.Width = 0
	p.Add(horizontalGrid(), bars)

	points := make(plotter.XYs, len(spec.Counts))
	annotations := make([]string, len(spec.Counts))
	hi := 0.0
	for i, v := range spec.Counts {
		points[i] = plotter.XY{X: float64(i), Y: v}
		annotations[i] = FormatCount(v)
		hi = math.Max(hi, v)
	}
	labels, err := barLabels(points, annotations)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	weekAxis(p, spec.Weeks)
	p.Y.Min = 0
	p.Y.Max = headroom(hi)
	p.Y.Tick.Marker = newValueTicks(Count, hi)
	return p, nil
}

// changeSeries holds the presentation of one change panel.
type changeSeries struct {
	title  string
	axis   string
	kind   ValueKind
	format func(float64) string
	gain   color.Color
	loss   color.Color
}

// changePanel draws the defined changes only, colored and labeled by sign,
// on an axis that lists just their weeks.
func changePanel(s changeSeries, weeks []string, changes []Change, figureWidth vg.Length) (*plot.Plot, error) {
	p := newPlot(s.title)
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Text = "Week"
	p.Y.Label.Text = s.axis
	p.Add(horizontalGrid())

	var (
		names       []string
		up, down    plotter.Values
		points      plotter.XYs
		annotations []string
	)
	lo, hi := 0.0, 0.0
	for i, c := range changes {
		if !c.Defined {
			continue
		}
		pos := float64(len(names))
		names = append(names, weeks[i])
		if c.Value >= 0 {
			up, down = append(up, c.Value), append(down, 0)
		} else {
			up, down = append(up, 0), append(down, c.Value)
		}
		points = append(points, plotter.XY{X: pos, Y: c.Value})
		annotations = append(annotations, s.format(c.Value))
		lo, hi = math.Min(lo, c.Value), math.Max(hi, c.Value)
	}

	n := len(names)
	if n == 0 {
		p.HideX()
		p.X.Min, p.X.Max = -0.5, 0.5
		p.Y.Min, p.Y.Max = -1, 1
		p.Y.Tick.Marker = newValueTicks(s.kind, 1)
		return p, nil
	}

	width := barWidth(figureWidth, n)
	for _, series := range []struct {
		values plotter.Values
		color  color.Color
	}{{up, s.gain}, {down, s.loss}} {
		bars, err := plotter.NewBarChart(series.values, width)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", s.title, err)
		}
		bars.Color = series.color
		bars.LineStyle.Width = 0
		p.Add(bars)
	}

	zero, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: 0}, {X: float64(n) - 0.5, Y: 0}})
	if err != nil {
		return nil, fmt.Errorf("failed to build zero line: %w", err)
	}
	zero.Color = colorText
	zero.Width = vg.Points(0.75)
	p.Add(zero)

	labels, err := barLabels(points, annotations)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	weekAxis(p, names)
	span := math.Max(hi-lo, 1)
	p.Y.Min = lo - span*0.12
	p.Y.Max = hi + span*0.12
	p.Y.Tick.Marker = newValueTicks(s.kind, math.Max(hi, -lo))
	return p, nil
}

// barLabels centers each annotation on its bar, above positive bars and
// below negative ones.
func barLabels(points plotter.XYs, annotations []string) (*plotter.Labels, error) {
	labels, err := valueLabels(points, annotations)
	if err != nil {
		return nil, err
	}
	for i, pt := range points {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YBottom
		if pt.Y < 0 {
			labels.TextStyle[i].YAlign = text.YTop
		}
	}
	return labels, nil
}

// weekAxis labels the x axis with the given weeks.
func weekAxis(p *plot.Plot, weeks []string) {
	p.NominalX(weeks...)
	rotateTickLabels(&p.X, len(weeks))
	p.X.Tick.Label.Font.Size = vg.Points(7)
}

func horizontalGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = colorGrid
	return grid
}
