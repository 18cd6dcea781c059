// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

// Package main is the entry point for the parkingreport command.
//
// parkingreport reads the NYC parking violation gold tables from a DuckDB
// file and writes one artifact per metric: a text table, a scorecard, bar
// charts, weekly panels or heatmaps. A manifest.json describing the run is
// written next to the artifacts once every metric has rendered.
//
// # Commands
//
//	parkingreport [report] [-metrics a,b] [-format png|svg] [-out DIR] [-scale N] [-console]
//	parkingreport load [-csv-dir DIR]
//	parkingreport list
//
// The report command is the default. It stops at the first metric that fails
// and exits non-zero; artifacts already written are left in place.
//
// The load command replaces the raw violation tables from CSV files with
// DuckDB's read_csv_auto. The gold tables themselves are built elsewhere.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command line flags (report and load only)
//   - Environment variables, optionally from a .env file
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Commonly used variables:
//   - DUCKDB_PATH: database file (default: data/nyc_parking_violations.db)
//   - REPORT_OUTPUT_DIR: artifact directory (default: report)
//   - REPORT_FORMAT: png or svg
//   - REPORT_METRICS: comma-separated metric IDs, empty for all
//   - METRICS_TEXTFILE: Prometheus textfile written after each command
//   - LOG_LEVEL, LOG_FORMAT: zerolog level and json or console output
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the running command. The metric in flight is
// abandoned without a retry and no manifest is written.
package main
