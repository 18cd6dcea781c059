// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/parkingreport/internal/database"
)

func mustLookup(t *testing.T, id string) Metric {
	t.Helper()
	m, ok := Lookup(id)
	if !ok {
		t.Fatalf("Lookup(%q) not found", id)
	}
	return m
}

// headerLine returns the first output line containing name.
func headerLine(t *testing.T, out, name string) string {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, name) {
			return l
		}
	}
	t.Fatalf("no line contains %q in %q", name, out)
	return ""
}

func TestWriteTable(t *testing.T) {
	table := latestTickets()

	var buf bytes.Buffer
	if err := writeTable(&buf, mustLookup(t, "a"), table); err != nil {
		t.Fatalf("writeTable() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "Metric A: 10 Latest Tickets\n") {
		t.Errorf("output should start with the title, got %q", strings.SplitN(out, "\n", 2)[0])
	}

	header := headerLine(t, out, table.ColumnNames()[0])
	last := -1
	for _, name := range table.ColumnNames() {
		idx := strings.Index(header, " "+name+" ")
		if idx <= last {
			t.Errorf("column %q missing or out of order in header %q", name, header)
		}
		last = idx
	}
	if strings.Contains(out, "SUMMONS") {
		t.Errorf("header was reformatted: %q", header)
	}

	for i, row := range table.StringRows() {
		var line string
		for _, l := range strings.Split(out, "\n") {
			if strings.Contains(l, row[0]) {
				line = l
				break
			}
		}
		if line == "" {
			t.Errorf("row %d (%s) missing", i, row[0])
			continue
		}
		last := -1
		for _, cell := range row {
			idx := strings.Index(line, cell)
			if idx <= last {
				t.Errorf("row %d cell %q out of column order in %q", i, cell, line)
			}
			last = idx
		}
	}
}

func TestRankedBars_PreservesQueryOrder(t *testing.T) {
	table := database.NewTable([]string{"violation_county", "ticket_count"},
		[]any{"Q", int64(10)}, []any{"NY", int64(30)}, []any{"K", int64(20)})

	spec, err := rankedBars(mustLookup(t, "b"), table)
	if err != nil {
		t.Fatalf("rankedBars() error = %v", err)
	}
	if len(spec.Bars) != table.Len() {
		t.Fatalf("bars = %d, rows = %d", len(spec.Bars), table.Len())
	}
	for i, want := range []string{"Q", "NY", "K"} {
		if spec.Bars[i].Label != want {
			t.Errorf("bar %d = %q, want %q", i, spec.Bars[i].Label, want)
		}
	}
}

func TestRankedBars_SortsFees(t *testing.T) {
	table := fixtureTables()[queryOf("g")]

	spec, err := rankedBars(mustLookup(t, "g"), table)
	if err != nil {
		t.Fatalf("rankedBars() error = %v", err)
	}
	if len(spec.Bars) != 3 {
		t.Fatalf("bars = %d, want 3", len(spec.Bars))
	}
	want := []string{"19", "1", "14"}
	for i := range want {
		if spec.Bars[i].Label != want[i] {
			t.Errorf("bar %d = %q, want %q", i, spec.Bars[i].Label, want[i])
		}
	}
	if precinct, _ := table.Text(0, "police_precinct"); precinct != "14" {
		t.Error("sorting must not reorder the query result")
	}
}

func TestRankedBars_MissingColumn(t *testing.T) {
	table := database.NewTable([]string{"precinct", "fees"}, []any{"14", 1.0})

	_, err := rankedBars(mustLookup(t, "g"), table)
	if !errors.Is(err, database.ErrColumnNotFound) {
		t.Errorf("rankedBars() error = %v, want ErrColumnNotFound", err)
	}
}

func TestRankedBars_Labels(t *testing.T) {
	tables := fixtureTables()

	vehicles, err := rankedBars(mustLookup(t, "e"), tables[queryOf("e")])
	if err != nil {
		t.Fatalf("vehicle bars error = %v", err)
	}
	if got := vehicles.Bars[0].Label; got != "TOYOT - PAS (NY)" {
		t.Errorf("vehicle label = %q", got)
	}

	agencies, err := rankedBars(mustLookup(t, "j"), tables[queryOf("j")])
	if err != nil {
		t.Fatalf("agency bars error = %v", err)
	}
	if agencies.Bars[0].Label != "TRAFFIC" {
		t.Errorf("largest agency first, got %q", agencies.Bars[0].Label)
	}
	want := "Total: $900,000\nAvg Fee: $64.50\nTicket Count: 13,953"
	if got := agencies.Bars[0].Annotation; got != want {
		t.Errorf("agency annotation = %q, want %q", got, want)
	}
}

func TestRankedBars_Colors(t *testing.T) {
	tables := fixtureTables()

	for _, id := range []string{"b", "c", "d", "e", "g"} {
		spec, err := rankedBars(mustLookup(t, id), tables[queryOf(id)])
		if err != nil {
			t.Fatalf("rankedBars(%s) error = %v", id, err)
		}
		if len(spec.Colors) != len(spec.Bars) {
			t.Errorf("metric %s: %d colors for %d bars", id, len(spec.Colors), len(spec.Bars))
		}
	}

	agencies, err := rankedBars(mustLookup(t, "j"), tables[queryOf("j")])
	if err != nil {
		t.Fatalf("rankedBars(j) error = %v", err)
	}
	if agencies.Colors != nil || agencies.Color != colorAgency {
		t.Errorf("metric j should use one solid color, got Colors=%v Color=%v", agencies.Colors, agencies.Color)
	}
}

func TestMonthlySeries(t *testing.T) {
	table := fixtureTables()[queryOf("h")]

	spec, err := monthlySeries(mustLookup(t, "h"), table)
	if err != nil {
		t.Fatalf("monthlySeries() error = %v", err)
	}
	if len(spec.Values) != table.Len() {
		t.Fatalf("values = %d, rows = %d", len(spec.Values), table.Len())
	}
	wantLabels := []string{"2023-01", "2023-02", "2023-03"}
	wantValues := []float64{100, 200, 300}
	for i := range wantLabels {
		if spec.Labels[i] != wantLabels[i] || spec.Values[i] != wantValues[i] {
			t.Errorf("period %d = %s/%v, want %s/%v", i, spec.Labels[i], spec.Values[i], wantLabels[i], wantValues[i])
		}
	}
	if !spec.Average {
		t.Error("monthly series should draw the average line")
	}
}

func TestWeeklySeries_Derived(t *testing.T) {
	spec, err := weeklySeries(mustLookup(t, "i"), fixtureTables()[queryOf("i")])
	if err != nil {
		t.Fatalf("weeklySeries() error = %v", err)
	}

	if strings.Join(spec.Weeks, ",") != "2023-W01,2023-W02,2023-W03" {
		t.Errorf("weeks = %v", spec.Weeks)
	}
	if spec.Absolute[0].Defined || spec.Percent[0].Defined {
		t.Error("first week change should be undefined")
	}
	if spec.Absolute[1].Value != 20 || spec.Absolute[2].Value != -30 {
		t.Errorf("absolute = %+v", spec.Absolute)
	}
	if spec.Percent[1].Value != 20 || spec.Percent[2].Value != -25 {
		t.Errorf("percent = %+v", spec.Percent)
	}
}

func TestWeeklySeries_FromColumns(t *testing.T) {
	table := database.NewTable([]string{"year_week", "ticket_count", "weekly_change", "percent_change"},
		[]any{"2023-W01", int64(100), nil, nil},
		[]any{"2023-W02", int64(120), int64(20), nil},
		[]any{"2023-W03", int64(90), int64(-30), -25.0},
	)

	spec, err := weeklySeries(mustLookup(t, "i"), table)
	if err != nil {
		t.Fatalf("weeklySeries() error = %v", err)
	}
	if spec.Absolute[0].Defined || !spec.Absolute[1].Defined {
		t.Errorf("absolute = %+v", spec.Absolute)
	}
	// A NULL percent stays undefined even where it could be derived.
	if spec.Percent[1].Defined {
		t.Errorf("percent[1] = %+v, want undefined", spec.Percent[1])
	}
	if !spec.Percent[2].Defined || spec.Percent[2].Value != -25 {
		t.Errorf("percent[2] = %+v", spec.Percent[2])
	}
}

func TestHeatmapGrid_Pivot(t *testing.T) {
	spec, err := heatmapGrid(mustLookup(t, "k"), fixtureTables()[queryOf("k")])
	if err != nil {
		t.Fatalf("heatmapGrid() error = %v", err)
	}
	g := spec.Grid

	if g.Rows[0] != "2023-W01" || g.Rows[1] != "2023-W02" {
		t.Errorf("rows = %v, want sorted by week", g.Rows)
	}
	if v, ok := g.Cell("2023-W01", "monday"); !ok || v != 5 {
		t.Errorf("cell(2023-W01, monday) = %v, %v, want 5", v, ok)
	}
	if !g.NoData(0, 2) {
		t.Error("tuesday's zero should be flagged no-data")
	}
	if g.NoData(0, 3) {
		t.Error("wednesday's single ticket must be distinct from no-data")
	}
	if spec.Totals != nil || spec.LogScale {
		t.Error("weekly heatmap has no totals and a linear scale")
	}
}

func TestHeatmapGrid_TotalsAndLabels(t *testing.T) {
	tables := fixtureTables()

	county, err := heatmapGrid(mustLookup(t, "l"), tables[queryOf("l")])
	if err != nil {
		t.Fatalf("county heatmap error = %v", err)
	}
	if county.Grid.Rows[0] != "NY" || county.Totals[0] != 280 {
		t.Errorf("county rows = %v totals = %v, want NY first", county.Grid.Rows, county.Totals)
	}
	if county.TotalLabel != "Total Tickets" {
		t.Errorf("total label = %q", county.TotalLabel)
	}

	violations, err := heatmapGrid(mustLookup(t, "m"), tables[queryOf("m")])
	if err != nil {
		t.Fatalf("violation heatmap error = %v", err)
	}
	if !violations.LogScale {
		t.Error("violation heatmap should use a log scale")
	}
	if got := violations.Grid.Rows[0]; got != "21: NO PARKING-STREET CLEANING" {
		t.Errorf("first row = %q", got)
	}
	want := "38: " + "FAILURE TO DISPLAY A VALID MUNI-METER RECEIPT OR PAY-AND-DISPLAY RECEIPT"[:50]
	if got := violations.Grid.Rows[1]; got != want {
		t.Errorf("truncated row = %q, want %q", got, want)
	}
}

func TestScorecard(t *testing.T) {
	m := mustLookup(t, "f")

	spec, err := scorecard(m, fixtureTables()[queryOf("f")])
	if err != nil {
		t.Fatalf("scorecard() error = %v", err)
	}
	if spec.Value != "$1,234,567.89" {
		t.Errorf("value = %q", spec.Value)
	}
	if spec.Subtitle != "Total Ticket Revenue" {
		t.Errorf("subtitle = %q", spec.Subtitle)
	}

	empty := database.NewTable([]string{"total_fees_90_days"})
	if _, err := scorecard(m, empty); !errors.Is(err, database.ErrEmptyResult) {
		t.Errorf("empty scorecard error = %v, want ErrEmptyResult", err)
	}
}

func TestMetric_Output(t *testing.T) {
	m := mustLookup(t, "m")

	small := m.output("png", 1, 5)
	large := m.output("png", 1, 100)
	if large.Height <= small.Height {
		t.Errorf("heatmap height should grow with rows: %v vs %v", small.Height, large.Height)
	}

	scaled := mustLookup(t, "b").output("svg", 2, 10)
	base := mustLookup(t, "b").output("svg", 1, 10)
	if scaled.Width != 2*base.Width {
		t.Errorf("scaled width = %v, want %v", scaled.Width, 2*base.Width)
	}
}
