// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// assertImage checks that buf holds an encoded image of the given format.
func assertImage(t *testing.T, buf *bytes.Buffer, format string) {
	t.Helper()
	switch format {
	case FormatPNG:
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("output is not a PNG (%d bytes)", buf.Len())
		}
	case FormatSVG:
		if !strings.Contains(buf.String(), "<svg") {
			t.Errorf("output is not an SVG (%d bytes)", buf.Len())
		}
	}
}

func TestHorizontalBars(t *testing.T) {
	spec := BarSpec{
		Title:      "Top Counties",
		ValueLabel: "Ticket Count",
		Kind:       Count,
		Bars: []Bar{
			{Label: "NY", Value: 3000},
			{Label: "K", Value: 2000},
			{Label: "Q", Value: 1000},
		},
	}

	for _, format := range []string{FormatPNG, FormatSVG} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := HorizontalBars(&buf, spec, NewOutput(format, 8, 4)); err != nil {
				t.Fatalf("HorizontalBars() error = %v", err)
			}
			assertImage(t, &buf, format)
		})
	}
}

func TestHorizontalBars_CurrencyAnnotations(t *testing.T) {
	spec := BarSpec{
		Title: "Fees",
		Kind:  Currency,
		Bars: []Bar{
			{Label: "14", Value: 2_500_000},
			{Label: "T", Value: 900_000, Annotation: "Total: $900,000\nAvg Fee: $65.00\nTicket Count: 13,846"},
		},
	}

	var buf bytes.Buffer
	if err := HorizontalBars(&buf, spec, NewOutput(FormatSVG, 8, 4)); err != nil {
		t.Fatalf("HorizontalBars() error = %v", err)
	}
	svg := buf.String()
	for _, want := range []string{"$2,500,000", "Avg Fee: $65.00"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing label %q", want)
		}
	}
}

func TestHorizontalBars_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := HorizontalBars(&buf, BarSpec{Title: "empty"}, NewOutput(FormatPNG, 4, 3))
	if !errors.Is(err, ErrNoData) {
		t.Errorf("HorizontalBars() error = %v, want ErrNoData", err)
	}
}

func TestVerticalBars(t *testing.T) {
	spec := SeriesSpec{
		Title:   "Monthly",
		Labels:  []string{"2023-01", "2023-02", "2023-03"},
		Values:  []float64{100, 200, 300},
		Average: true,
	}

	var buf bytes.Buffer
	if err := VerticalBars(&buf, spec, NewOutput(FormatSVG, 8, 4)); err != nil {
		t.Fatalf("VerticalBars() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Average: 200") {
		t.Error("svg missing average legend")
	}

	spec.Labels = spec.Labels[:2]
	if err := VerticalBars(&buf, spec, NewOutput(FormatSVG, 8, 4)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("VerticalBars() error = %v, want ErrLengthMismatch", err)
	}
}

func TestVerticalBars_AverageTruncates(t *testing.T) {
	spec := SeriesSpec{
		Labels:  []string{"2023-01", "2023-02"},
		Values:  []float64{1, 2},
		Average: true,
	}

	var buf bytes.Buffer
	if err := VerticalBars(&buf, spec, NewOutput(FormatSVG, 6, 4)); err != nil {
		t.Fatalf("VerticalBars() error = %v", err)
	}
	if !strings.Contains(buf.String(), ">Average: 1<") {
		t.Error("average 1.5 should be labeled Average: 1")
	}
}

func TestWeeklyPanels(t *testing.T) {
	counts := []float64{100, 120, 90}
	abs, pct := WeekOverWeek(counts)
	spec := WeeklySpec{
		Title:    "Weekly",
		Weeks:    []string{"2023-W01", "2023-W02", "2023-W03"},
		Counts:   counts,
		Absolute: abs,
		Percent:  pct,
	}

	var buf bytes.Buffer
	if err := WeeklyPanels(&buf, spec, NewOutput(FormatSVG, 10, 9)); err != nil {
		t.Fatalf("WeeklyPanels() error = %v", err)
	}
	svg := buf.String()

	// The first week has no prior week, so only the count panel lists it.
	if got := strings.Count(svg, "2023-W01"); got != 1 {
		t.Errorf("2023-W01 appears %d times, want 1", got)
	}
	if got := strings.Count(svg, "2023-W02"); got != 3 {
		t.Errorf("2023-W02 appears %d times, want 3", got)
	}
	for _, want := range []string{">100<", ">120<", ">90<", "+20", "-30", "+20.0%", "-25.0%"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing label %q", want)
		}
	}

	buf.Reset()
	if err := WeeklyPanels(&buf, spec, NewOutput(FormatPNG, 10, 9)); err != nil {
		t.Fatalf("WeeklyPanels() error = %v", err)
	}
	assertImage(t, &buf, FormatPNG)
}

func TestWeeklyPanels_ZeroChangeIsNotUndefined(t *testing.T) {
	render := func(abs []Change) string {
		t.Helper()
		spec := WeeklySpec{
			Weeks:    []string{"2023-W01", "2023-W02", "2023-W03"},
			Counts:   []float64{50, 50, 40},
			Absolute: abs,
			Percent:  []Change{{}, Defined(0), Defined(-20)},
		}
		var buf bytes.Buffer
		if err := WeeklyPanels(&buf, spec, NewOutput(FormatSVG, 10, 9)); err != nil {
			t.Fatalf("WeeklyPanels() error = %v", err)
		}
		return buf.String()
	}

	zero := render([]Change{{}, Defined(0), Defined(-10)})
	undefined := render([]Change{{}, {}, Defined(-10)})

	if zero == undefined {
		t.Fatal("a defined zero change renders the same as an undefined one")
	}
	if !strings.Contains(zero, "+0<") {
		t.Error("defined zero change is not labeled +0")
	}
	if !strings.Contains(zero, "+0.0%") {
		t.Error("defined zero percent change is not labeled +0.0%")
	}
	// W02 is listed by the count panel and the percent panel only.
	if got := strings.Count(undefined, "2023-W02"); got != 2 {
		t.Errorf("2023-W02 appears %d times, want 2", got)
	}
}

func TestWeeklyPanels_AllUndefined(t *testing.T) {
	spec := WeeklySpec{
		Weeks:    []string{"2023-W01"},
		Counts:   []float64{10},
		Absolute: []Change{{}},
		Percent:  []Change{{}},
	}

	var buf bytes.Buffer
	if err := WeeklyPanels(&buf, spec, NewOutput(FormatSVG, 6, 6)); err != nil {
		t.Fatalf("WeeklyPanels() error = %v", err)
	}
	if got := strings.Count(buf.String(), "2023-W01"); got != 1 {
		t.Errorf("2023-W01 appears %d times, want 1", got)
	}
}

func TestScorecard(t *testing.T) {
	spec := ScorecardSpec{
		Title:    "Total Fees",
		Value:    FormatCurrency(1234567.891),
		Subtitle: "Total Ticket Revenue",
	}

	var buf bytes.Buffer
	if err := Scorecard(&buf, spec, NewOutput(FormatSVG, 6, 3)); err != nil {
		t.Fatalf("Scorecard() error = %v", err)
	}
	for _, want := range []string{"$1,234,567.89", "Total Ticket Revenue", "Total Fees"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("scorecard missing %q", want)
		}
	}
}

func TestOutput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		out     Output
		wantErr error
	}{
		{"png", NewOutput(FormatPNG, 4, 3), nil},
		{"svg", NewOutput(FormatSVG, 4, 3), nil},
		{"jpeg", NewOutput("jpeg", 4, 3), ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.out.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := NewOutput(FormatPNG, 0, 3).Validate(); err == nil {
		t.Error("zero width should be invalid")
	}
}
