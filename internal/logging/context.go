// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	metricIDKey contextKey = "metric_id"
)

// GenerateRunID creates a new unique report run ID.
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a new context carrying the report run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithMetricID returns a new context carrying the metric being rendered.
func ContextWithMetricID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, metricIDKey, id)
}

// MetricIDFromContext retrieves the metric ID from context.
func MetricIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(metricIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger with run_id and metric_id added when present.
//
//	logging.Ctx(ctx).Info().Msg("Rendering metric")
//	// Output: {"level":"info","run_id":"...","metric_id":"b","message":"Rendering metric"}
func Ctx(ctx context.Context) *zerolog.Logger {
	return fromContext(ctx, With())
}

// CtxWithComponent is Ctx with a component field, for packages that log on
// behalf of a report run.
//
//	logging.CtxWithComponent(ctx, "database").Warn().Msg("Query failed, retrying")
func CtxWithComponent(ctx context.Context, component string) *zerolog.Logger {
	return fromContext(ctx, With().Str("component", component))
}

func fromContext(ctx context.Context, logCtx zerolog.Context) *zerolog.Logger {
	if runID := RunIDFromContext(ctx); runID != "" {
		logCtx = logCtx.Str("run_id", runID)
	}
	if metricID := MetricIDFromContext(ctx); metricID != "" {
		logCtx = logCtx.Str("metric_id", metricID)
	}
	logger := logCtx.Logger()
	return &logger
}
