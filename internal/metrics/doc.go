// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

// Package metrics provides Prometheus instrumentation for report runs.
//
// The tool is a batch job rather than a server, so metrics are never scraped.
// Instead, main writes the default registry to a textfile after each command
// when METRICS_TEXTFILE is set:
//
//	defer metrics.WriteTextfile(cfg.Metrics.Textfile)
//
// All metric names carry the parkingreport_ prefix.
package metrics
