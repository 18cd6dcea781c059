// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

/*
Package report renders the NYC parking violation report from the gold tables.

The report is a fixed, ordered catalog of thirteen metrics (a through m). Each
metric pairs a title with one SQL statement and a visual kind. Rendering a
metric runs its query through a Querier, checks the result against the
metric's column contract, draws the figure with package chart and writes the
artifact to a Sink.

Kinds:

  - table: the result printed as text, rows and columns untouched
  - ranked bars: one horizontal bar per row, query order kept
  - scorecard: one headline currency value
  - monthly / weekly: time series sorted by period
  - heatmap: rows by weekday, optional totals column and log scale

Batch runs are all-or-nothing: the first failing metric stops the run and is
returned as "metric <id>: <cause>". A successful run also writes
manifest.json describing every artifact.

Usage:

	helper := database.New(&cfg.Database)
	sink, _ := report.NewDirSink(cfg.Report.OutputDir)
	r := report.New(helper, sink, report.WithFormat("png"), report.WithConsole(os.Stdout))
	manifest, err := r.RunFullReport(ctx)
*/
package report
