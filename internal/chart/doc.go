// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

/*
Package chart draws the report's figures with gonum/plot.

Every renderer takes a plain-data spec and an Output, draws one figure and
encodes it to an io.Writer as PNG or SVG. Renderers hold no state and never
open a display.

Figure kinds:

  - HorizontalBars: ranked categories, first item at the top, each bar
    annotated with its value and optionally colored one by one (Viridis).
  - VerticalBars: time series with value labels and an optional dashed
    average line.
  - WeeklyPanels: counts, absolute change and percent change stacked. The
    change panels only list weeks whose change is defined.
  - Heatmap: a row-by-weekday grid with annotated counts, a distinct no-data
    shade and an optional log color scale and totals column.
  - Scorecard: one large headline value.
  - Table: a text table for console or .txt output.

Number formatting helpers (FormatCurrency, FormatCompactCurrency, FormatCount,
FormatPercent) are shared by labels and axes.
*/
package chart
