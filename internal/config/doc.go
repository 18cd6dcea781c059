// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

// Package config loads the parking report configuration.
//
// Configuration is layered with Koanf v2 (highest priority wins):
//
//  1. Environment variables, including a .env file in the working directory
//  2. YAML config file (CONFIG_PATH, ./config.yaml, /etc/parkingreport/config.yaml)
//  3. Built-in defaults
//
// # Environment Variables
//
// Database:
//   - DUCKDB_PATH: DuckDB file (default: data/nyc_parking_violations.db)
//   - DUCKDB_ACCESS_MODE: read_only or read_write (default: read_only)
//   - DUCKDB_THREADS: worker threads, 0 = NumCPU (default: 0)
//   - DUCKDB_MAX_MEMORY: memory limit (default: 1GB)
//   - DUCKDB_QUERY_TIMEOUT: per-attempt deadline, 0 = none (default: 0)
//
// Ingest:
//   - CSV_DIR: directory holding the two source CSV files (default: data)
//
// Report:
//   - REPORT_OUTPUT_DIR: artifact directory (default: report)
//   - REPORT_FORMAT: png or svg (default: png)
//   - REPORT_SCALE: figure size multiplier (default: 1.0)
//   - REPORT_METRICS: comma-separated metric IDs, empty = all (default: empty)
//   - REPORT_CONSOLE: echo tabular metrics to stdout (default: true)
//
// Metrics:
//   - METRICS_TEXTFILE: Prometheus textfile path, empty = disabled
//
// Logging:
//   - LOG_LEVEL, LOG_FORMAT (json or console), LOG_CALLER
//
// # Example config.yaml
//
//	database:
//	  path: /srv/parking/nyc_parking_violations.db
//	  max_memory: 2GB
//	report:
//	  output_dir: /srv/parking/report
//	  format: svg
//	  metrics: [b, f, g]
package config
