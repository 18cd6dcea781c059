// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package report

import (
	"cmp"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/parkingreport/internal/chart"
	"github.com/tomtom215/parkingreport/internal/database"
)

// Colors per metric, matching the published report.
var (
	colorMonthly = color.RGBA{R: 65, G: 105, B: 225, A: 255} // royalblue
	colorAgency  = color.RGBA{R: 0, G: 100, B: 0, A: 255}    // darkgreen
)

// violationLabelWidth caps the definition text in metric m row labels.
const violationLabelWidth = 50

// minHeatRowHeight keeps long heatmaps legible, in inches per row.
const minHeatRowHeight = 0.3

// rowReader reads typed cells from one result row.
type rowReader struct {
	table *database.Table
	row   int
}

func (r rowReader) text(column string) (string, error) {
	return r.table.Text(r.row, column)
}

func (r rowReader) number(column string) (float64, error) {
	return r.table.Float64(r.row, column)
}

// vehicleLabel renders "<make> - <plate type> (<state>)".
func vehicleLabel(r rowReader) (string, error) {
	parts := make([]string, 3)
	for i, col := range []string{"vehicle_make", "plate_type", "registration_state"} {
		v, err := r.text(col)
		if err != nil {
			return "", err
		}
		parts[i] = v
	}
	return fmt.Sprintf("%s - %s (%s)", parts[0], parts[1], parts[2]), nil
}

// violationLabel renders "<code>: <definition>" with the definition truncated.
func violationLabel(r rowReader) (string, error) {
	code, err := r.text("violation_code")
	if err != nil {
		return "", err
	}
	def, err := r.text("violation_definition")
	if err != nil {
		return "", err
	}
	return code + ": " + truncate(def, violationLabelWidth), nil
}

// agencyFeeLabel renders the three-line fee summary next to an agency bar.
func agencyFeeLabel(r rowReader) (string, error) {
	total, err := r.number("total_ticket_fees_usd")
	if err != nil {
		return "", err
	}
	avg, err := r.number("average_fee_usd")
	if err != nil {
		return "", err
	}
	count, err := r.number("ticket_count")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total: %s\nAvg Fee: $%.2f\nTicket Count: %s",
		chart.FormatWholeCurrency(total), avg, chart.FormatCount(count)), nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// rowLabel returns the category label for row i.
func (l layout) rowLabel(t *database.Table, i int) (string, error) {
	r := rowReader{table: t, row: i}
	if l.rowLabelFunc != nil {
		return l.rowLabelFunc(r)
	}
	return r.text(l.label)
}

// sortByValueDesc orders rows by the layout's value column, largest first.
// Ties keep query order.
func sortByValueDesc(t *database.Table, column string) (*database.Table, error) {
	values, err := t.Float64s(column)
	if err != nil {
		return nil, err
	}
	return t.SortedBy(func(a, b int) int {
		return cmp.Compare(values[b], values[a])
	}), nil
}

// sortByLabel orders rows by a text column ascending, for period keys.
func sortByLabel(t *database.Table, column string) (*database.Table, error) {
	labels, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	return t.SortedBy(func(a, b int) int {
		return strings.Compare(labels[a], labels[b])
	}), nil
}

// rankedBars builds one bar per row. Rows keep query order unless the metric
// ranks by value.
func rankedBars(m Metric, t *database.Table) (chart.BarSpec, error) {
	l := m.layout
	if l.sortDesc {
		sorted, err := sortByValueDesc(t, l.value)
		if err != nil {
			return chart.BarSpec{}, err
		}
		t = sorted
	}

	values, err := t.Float64s(l.value)
	if err != nil {
		return chart.BarSpec{}, err
	}

	bars := make([]chart.Bar, t.Len())
	for i := range bars {
		label, err := l.rowLabel(t, i)
		if err != nil {
			return chart.BarSpec{}, err
		}
		bars[i] = chart.Bar{Label: label, Value: values[i]}
		if l.annotation != nil {
			if bars[i].Annotation, err = l.annotation(rowReader{table: t, row: i}); err != nil {
				return chart.BarSpec{}, err
			}
		}
	}

	spec := chart.BarSpec{
		Title:         m.FigureTitle(),
		ValueLabel:    l.valueAxis,
		CategoryLabel: l.labelAxis,
		Kind:          l.valueKind,
		Bars:          bars,
		Color:         l.color,
	}
	if l.palette != nil {
		spec.Colors = l.palette(len(bars))
	}
	return spec, nil
}

// monthlySeries builds the monthly bar series in period order.
func monthlySeries(m Metric, t *database.Table) (chart.SeriesSpec, error) {
	l := m.layout
	t, err := sortByLabel(t, l.label)
	if err != nil {
		return chart.SeriesSpec{}, err
	}
	labels, err := t.Strings(l.label)
	if err != nil {
		return chart.SeriesSpec{}, err
	}
	values, err := t.Float64s(l.value)
	if err != nil {
		return chart.SeriesSpec{}, err
	}
	return chart.SeriesSpec{
		Title:   m.FigureTitle(),
		XLabel:  l.labelAxis,
		YLabel:  l.valueAxis,
		Labels:  labels,
		Values:  values,
		Average: true,
		Color:   l.color,
	}, nil
}

// weeklySeries builds the three weekly panels. Changes come from the
// weekly_change and percent_change columns when the table has them, NULL
// meaning undefined; otherwise they are derived from the counts.
func weeklySeries(m Metric, t *database.Table) (chart.WeeklySpec, error) {
	l := m.layout
	t, err := sortByLabel(t, l.label)
	if err != nil {
		return chart.WeeklySpec{}, err
	}
	weeks, err := t.Strings(l.label)
	if err != nil {
		return chart.WeeklySpec{}, err
	}
	counts, err := t.Float64s(l.value)
	if err != nil {
		return chart.WeeklySpec{}, err
	}

	abs, pct := chart.WeekOverWeek(counts)
	if abs, err = changesFromColumn(t, "weekly_change", abs); err != nil {
		return chart.WeeklySpec{}, err
	}
	if pct, err = changesFromColumn(t, "percent_change", pct); err != nil {
		return chart.WeeklySpec{}, err
	}

	return chart.WeeklySpec{
		Title:    m.Title,
		Weeks:    weeks,
		Counts:   counts,
		Absolute: abs,
		Percent:  pct,
	}, nil
}

// changesFromColumn prefers precomputed changes over derived ones.
func changesFromColumn(t *database.Table, column string, derived []chart.Change) ([]chart.Change, error) {
	if !t.HasColumn(column) {
		return derived, nil
	}
	values, valid, err := t.NullableFloat64s(column)
	if err != nil {
		return nil, err
	}
	changes := make([]chart.Change, len(values))
	for i := range values {
		changes[i] = chart.Change{Value: values[i], Defined: valid[i]}
	}
	return changes, nil
}

// heatmapGrid pivots rows by weekday. Metrics with totals rank rows by total
// descending; the rest sort by row label.
func heatmapGrid(m Metric, t *database.Table) (chart.HeatmapSpec, error) {
	l := m.layout
	var err error
	if l.sortDesc {
		t, err = sortByValueDesc(t, l.value)
	} else {
		t, err = sortByLabel(t, l.label)
	}
	if err != nil {
		return chart.HeatmapSpec{}, err
	}

	rows := make([]string, t.Len())
	for i := range rows {
		if rows[i], err = l.rowLabel(t, i); err != nil {
			return chart.HeatmapSpec{}, err
		}
	}

	grid := chart.NewHeatGrid(rows, heatmapColumns)
	for c, day := range heatmapColumns {
		values, valid, err := t.NullableFloat64s(day)
		if err != nil {
			return chart.HeatmapSpec{}, err
		}
		for r := range values {
			if valid[r] {
				grid.Values[r][c] = values[r]
			}
		}
	}

	spec := chart.HeatmapSpec{
		Title:        m.Title,
		XLabel:       l.note,
		Grid:         grid,
		ColumnLabels: weekdayLabels,
		LogScale:     l.logScale,
	}
	if l.totals {
		if spec.Totals, err = t.Float64s(l.value); err != nil {
			return chart.HeatmapSpec{}, err
		}
		spec.TotalLabel = "Total Tickets"
	}
	return spec, nil
}

// scorecard formats the single value of a one-row result.
func scorecard(m Metric, t *database.Table) (chart.ScorecardSpec, error) {
	if t.Len() == 0 {
		return chart.ScorecardSpec{}, database.ErrEmptyResult
	}
	v, err := t.Float64(0, m.layout.value)
	if err != nil {
		return chart.ScorecardSpec{}, err
	}
	return chart.ScorecardSpec{
		Title:    m.Title,
		Value:    chart.FormatCurrency(v),
		Subtitle: m.Subtitle,
	}, nil
}

// writeTable prints every row of the result with its original columns.
func writeTable(w io.Writer, m Metric, t *database.Table) error {
	if _, err := fmt.Fprintln(w, m.Title); err != nil {
		return err
	}
	return chart.Table(w, t.ColumnNames(), t.StringRows())
}

// output sizes the figure for this metric and result.
func (m Metric) output(format string, scale float64, rows int) chart.Output {
	height := m.Height
	if m.Kind == KindHeatmap {
		height = math.Max(height, minHeatRowHeight*float64(rows)+3)
	}
	return chart.NewOutput(format, m.Width*scale, height*scale)
}

// draw renders the metric's figure for t into w.
func (m Metric) draw(w io.Writer, t *database.Table, format string, scale float64) error {
	out := m.output(format, scale, t.Len())

	switch m.Kind {
	case KindTable:
		return writeTable(w, m, t)
	case KindRankedBar:
		spec, err := rankedBars(m, t)
		if err != nil {
			return err
		}
		return chart.HorizontalBars(w, spec, out)
	case KindScorecard:
		spec, err := scorecard(m, t)
		if err != nil {
			return err
		}
		return chart.Scorecard(w, spec, out)
	case KindMonthly:
		spec, err := monthlySeries(m, t)
		if err != nil {
			return err
		}
		return chart.VerticalBars(w, spec, out)
	case KindWeekly:
		spec, err := weeklySeries(m, t)
		if err != nil {
			return err
		}
		return chart.WeeklyPanels(w, spec, out)
	case KindHeatmap:
		spec, err := heatmapGrid(m, t)
		if err != nil {
			return err
		}
		return chart.Heatmap(w, spec, out)
	default:
		return fmt.Errorf("metric %s has unknown kind %q", m.ID, m.Kind)
	}
}
