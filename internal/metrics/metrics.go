// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for report runs:
// - DuckDB query attempts, failures and retries
// - Per-metric render time and artifact size
// - Whole-run duration and outcome

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parkingreport_query_duration_seconds",
			Help:    "Duration of a single DuckDB query attempt in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "exec"
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkingreport_query_errors_total",
			Help: "Total number of failed DuckDB query attempts",
		},
		[]string{"operation", "error_type"},
	)

	DBQueryRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkingreport_query_retries_total",
			Help: "Total number of queries retried on a fresh connection",
		},
		[]string{"operation"},
	)

	DBRowsMaterialized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "parkingreport_rows_materialized_total",
			Help: "Total number of result rows copied into in-memory tables",
		},
	)

	// Rendering Metrics
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parkingreport_render_duration_seconds",
			Help:    "Time to query and render one metric in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"metric", "kind"},
	)

	RenderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parkingreport_render_errors_total",
			Help: "Total number of metrics that failed to render",
		},
		[]string{"metric"},
	)

	ArtifactBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "parkingreport_artifact_bytes",
			Help: "Size of the last artifact written for a metric",
		},
		[]string{"metric"},
	)

	// Run Metrics
	ReportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "parkingreport_run_duration_seconds",
			Help:    "Duration of a report run in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	ReportLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parkingreport_last_success_timestamp",
			Help: "Unix timestamp of the last fully successful report run",
		},
	)

	BulkLoadLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parkingreport_bulk_load_last_success_timestamp",
			Help: "Unix timestamp of the last successful CSV bulk load",
		},
	)
)

// RecordQuery records one query attempt.
func RecordQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, classifyError(err)).Inc()
	}
}

// RecordRetry records that a query is being retried on a fresh connection.
func RecordRetry(operation string) {
	DBQueryRetries.WithLabelValues(operation).Inc()
}

// RecordRender records the outcome of rendering one metric.
func RecordRender(metric, kind string, duration time.Duration, bytes int64, err error) {
	RenderDuration.WithLabelValues(metric, kind).Observe(duration.Seconds())
	if err != nil {
		RenderErrors.WithLabelValues(metric).Inc()
		return
	}
	ArtifactBytes.WithLabelValues(metric).Set(float64(bytes))
}

// RecordReport records a finished report run.
func RecordReport(duration time.Duration, err error) {
	ReportDuration.Observe(duration.Seconds())
	if err == nil {
		ReportLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// classifyError maps DuckDB error text onto a small, bounded label set.
func classifyError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "catalog error"), strings.Contains(msg, "does not exist"):
		return "catalog"
	case strings.Contains(msg, "parser error"), strings.Contains(msg, "syntax error"):
		return "parser"
	case strings.Contains(msg, "conversion error"), strings.Contains(msg, "binder error"):
		return "binder"
	case strings.Contains(msg, "io error"), strings.Contains(msg, "could not set lock"),
		strings.Contains(msg, "database is closed"), strings.Contains(msg, "bad connection"):
		return "connection"
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "context canceled"):
		return "timeout"
	default:
		return "other"
	}
}

// WriteTextfile writes the default registry in the Prometheus text format to
// path, for pickup by node_exporter's textfile collector. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
