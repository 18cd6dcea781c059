// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package report

import (
	"image/color"
	"slices"
	"strings"

	"github.com/tomtom215/parkingreport/internal/chart"
)

// Kind is the visual form of a metric.
type Kind string

const (
	KindTable     Kind = "table"
	KindRankedBar Kind = "ranked_bar"
	KindScorecard Kind = "scorecard"
	KindMonthly   Kind = "monthly"
	KindWeekly    Kind = "weekly"
	KindHeatmap   Kind = "heatmap"
)

// Metric is one immutable report entry.
type Metric struct {
	ID       string
	Title    string
	Subtitle string
	Query    string
	Kind     Kind

	// Columns is the result contract checked before rendering.
	Columns []string

	// Slug names the artifact file.
	Slug string

	// Width and Height are the base figure size in inches.
	Width  float64
	Height float64

	layout layout
}

// layout carries the kind-specific rendering choices of a metric.
type layout struct {
	label        string // category or row label column
	value        string // value column
	valueKind    chart.ValueKind
	valueAxis    string
	labelAxis    string
	sortDesc     bool // sort by value descending before drawing
	rowLabelFunc func(r rowReader) (string, error)
	annotation   func(r rowReader) (string, error)
	totals       bool
	logScale     bool
	note         string
	color        color.Color
	palette      func(n int) []color.Color // per-bar fills, overrides color
}

// Artifact returns the file name for this metric in the given image format.
func (m Metric) Artifact(format string) string {
	ext := format
	if m.Kind == KindTable {
		ext = "txt"
	}
	return "metric_" + m.ID + "_" + m.Slug + "." + ext
}

// FigureTitle joins the title and subtitle the way figures print them.
func (m Metric) FigureTitle() string {
	if m.Subtitle == "" {
		return m.Title
	}
	return m.Title + "\n" + m.Subtitle
}

var heatmapColumns = append([]string(nil), chart.Weekdays...)

// weekdayLabels are the capitalized heatmap column headers.
var weekdayLabels = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func withWeekdays(cols ...string) []string {
	return append(cols, heatmapColumns...)
}

// catalog is built once; Catalog hands out copies.
var catalog = []Metric{
	{
		ID:    "a",
		Title: "Metric A: 10 Latest Tickets",
		Query: "SELECT * FROM gold_latest_tickets_90_days LIMIT 10",
		Kind:  KindTable,
		Slug:  "latest_tickets",
	},
	{
		ID:       "b",
		Title:    "Metric B: Top 10 Ticket Counts by County - Past 90 Days",
		Subtitle: "Counties",
		Query:    "SELECT * FROM gold_tickets_by_county_90_days LIMIT 10",
		Kind:     KindRankedBar,
		Columns:  []string{"violation_county", "ticket_count"},
		Slug:     "tickets_by_county",
		Width:    12,
		Height:   8,
		layout: layout{
			palette:   chart.Viridis,
			label:     "violation_county",
			value:     "ticket_count",
			valueKind: chart.Count,
			valueAxis: "Number of Tickets",
			labelAxis: "County",
		},
	},
	{
		ID:       "c",
		Title:    "Metric C: Top 10 Ticket Counts by Violation Type - Past 90 Days",
		Subtitle: "Violation",
		Query:    "SELECT * FROM gold_tickets_by_violation_90_days LIMIT 10",
		Kind:     KindRankedBar,
		Columns:  []string{"violation_definition", "ticket_count"},
		Slug:     "tickets_by_violation",
		Width:    14,
		Height:   10,
		layout: layout{
			palette:   chart.Viridis,
			label:     "violation_definition",
			value:     "ticket_count",
			valueKind: chart.Count,
			valueAxis: "Number of Tickets",
			labelAxis: "Violation Type",
		},
	},
	{
		ID:       "d",
		Title:    "Metric D: Top 10 Ticket Counts by Issuing Agency - Past 90 Days",
		Subtitle: "Issuing Agencies",
		Query:    "SELECT * FROM gold_tickets_by_agency_90_days LIMIT 10",
		Kind:     KindRankedBar,
		Columns:  []string{"issuing_agency", "ticket_count"},
		Slug:     "tickets_by_agency",
		Width:    12,
		Height:   8,
		layout: layout{
			palette:   chart.Viridis,
			label:     "issuing_agency",
			value:     "ticket_count",
			valueKind: chart.Count,
			valueAxis: "Number of Tickets",
			labelAxis: "Issuing Agency",
		},
	},
	{
		ID:       "e",
		Title:    "Metric E: Top 10 Ticket Counts by Vehicle - Past 90 Days",
		Subtitle: "Vehicles by Make, Plate Type, and State",
		Query:    "SELECT * FROM gold_tickets_by_vehicle_90_days LIMIT 10",
		Kind:     KindRankedBar,
		Columns:  []string{"vehicle_make", "plate_type", "registration_state", "ticket_count"},
		Slug:     "tickets_by_vehicle",
		Width:    14,
		Height:   9,
		layout: layout{
			palette:      chart.Viridis,
			value:        "ticket_count",
			valueKind:    chart.Count,
			valueAxis:    "Number of Tickets",
			labelAxis:    "Vehicle Information",
			rowLabelFunc: vehicleLabel,
		},
	},
	{
		ID:       "f",
		Title:    "Metric F: Total Fees - Past 90 Days",
		Subtitle: "Total Ticket Revenue",
		Query:    "SELECT SUM(total_ticket_fees_usd) AS total_fees_90_days FROM gold_precinct_ticket_fee_sum_90_days",
		Kind:     KindScorecard,
		Columns:  []string{"total_fees_90_days"},
		Slug:     "total_fees",
		Width:    10,
		Height:   6,
		layout: layout{
			value: "total_fees_90_days",
		},
	},
	{
		ID:       "g",
		Title:    "Metric G: Top 10 Total Fees by Precinct - Past 90 Days",
		Subtitle: "Precincts",
		Query:    "SELECT * FROM gold_precinct_ticket_fee_sum_90_days LIMIT 10",
		Kind:     KindRankedBar,
		Columns:  []string{"police_precinct", "total_ticket_fees_usd"},
		Slug:     "fees_by_precinct",
		Width:    12,
		Height:   8,
		layout: layout{
			palette:   chart.Viridis,
			label:     "police_precinct",
			value:     "total_ticket_fees_usd",
			valueKind: chart.Currency,
			valueAxis: "Total Fees ($)",
			labelAxis: "Precinct",
			sortDesc:  true,
		},
	},
	{
		ID:      "h",
		Title:   "Metric H: 2023 Ticket Over Time (Monthly)",
		Query:   "SELECT * FROM gold_2023_ticket_counts_year_month",
		Kind:    KindMonthly,
		Columns: []string{"year_month", "ticket_count"},
		Slug:    "monthly_tickets",
		Width:   14,
		Height:  8,
		layout: layout{
			label:     "year_month",
			value:     "ticket_count",
			valueAxis: "Number of Tickets",
			labelAxis: "Month",
			color:     colorMonthly,
		},
	},
	{
		ID:      "i",
		Title:   "Metric I: 2023 Ticket Over Time (Weekly)",
		Query:   "SELECT * FROM gold_2023_ticket_counts_year_week WHERE year_week NOT IN ('2023-W52', '2023-W35')",
		Kind:    KindWeekly,
		Columns: []string{"year_week", "ticket_count"},
		Slug:    "weekly_tickets",
		Width:   16,
		Height:  18,
		layout: layout{
			label: "year_week",
			value: "ticket_count",
		},
	},
	{
		ID:      "j",
		Title:   "Metric J: Fee Summaries by Agency - Past 90 Days",
		Query:   "SELECT * FROM gold_2023_agency_fee_metrics WHERE ticket_count >= 100",
		Kind:    KindRankedBar,
		Columns: []string{"issuing_agency", "total_ticket_fees_usd", "average_fee_usd", "ticket_count"},
		Slug:    "agency_fee_summary",
		Width:   14,
		Height:  10,
		layout: layout{
			label:      "issuing_agency",
			value:      "total_ticket_fees_usd",
			valueKind:  chart.Currency,
			valueAxis:  "Total Fees (USD)",
			labelAxis:  "Agency",
			sortDesc:   true,
			annotation: agencyFeeLabel,
			color:      colorAgency,
		},
	},
	{
		ID:      "k",
		Title:   "Metric K: Weekly Violation Heatmap by Day of Week",
		Query:   "SELECT * FROM gold_2023_weekly_violations_day_of_week_heatmap WHERE year_week != '2023-W52'",
		Kind:    KindHeatmap,
		Columns: withWeekdays("year_week"),
		Slug:    "weekly_heatmap",
		Width:   18,
		Height:  14,
		layout: layout{
			label: "year_week",
		},
	},
	{
		ID:      "l",
		Title:   "Metric L: Precinct Violation Heatmap by Day of Week",
		Query:   "SELECT * FROM gold_2023_county_violations_day_of_week_heatmap",
		Kind:    KindHeatmap,
		Columns: withWeekdays("violation_county", "total_tickets"),
		Slug:    "county_heatmap",
		Width:   20,
		Height:  16,
		layout: layout{
			label:    "violation_county",
			value:    "total_tickets",
			sortDesc: true,
			totals:   true,
		},
	},
	{
		ID:      "m",
		Title:   "Metric M: Violation Heatmap by Day of Week",
		Query:   "SELECT * FROM gold_2023_violations_day_of_week_heatmap",
		Kind:    KindHeatmap,
		Columns: withWeekdays("violation_code", "violation_definition", "total_tickets"),
		Slug:    "violation_heatmap",
		Width:   20,
		Height:  16,
		layout: layout{
			value:        "total_tickets",
			sortDesc:     true,
			totals:       true,
			logScale:     true,
			rowLabelFunc: violationLabel,
			note:         "Note: Color intensity uses logarithmic scale to better show variation across all values.",
		},
	},
}

// Catalog returns the thirteen metrics in report order.
func Catalog() []Metric {
	return slices.Clone(catalog)
}

// IDs returns every metric ID in report order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, m := range catalog {
		ids[i] = m.ID
	}
	return ids
}

// Lookup finds a metric by its ID, ignoring case.
func Lookup(id string) (Metric, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}
