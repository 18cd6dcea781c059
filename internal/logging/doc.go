// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

// Package logging provides centralized zerolog-based structured logging for the
// parking report tool.
//
// The package keeps one global logger, configured once from main via Init, and
// exposes level helpers (Info, Warn, Fatal) that never need a logger to be
// threaded through call sites. Packages tag their lines with WithComponent,
// or CtxWithComponent when they hold a report context.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "console"})
//	logging.Info().Str("db_path", path).Msg("Configuration loaded")
//
// # Run Correlation
//
// Every report run gets a run ID. Attach it to the context once and every
// log line emitted through Ctx carries it:
//
//	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
//	logging.Ctx(ctx).Info().Msg("Report started")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send(), and prefer structured
// fields over formatted messages:
//
//	logging.Info().Str("metric", id).Int("rows", n).Msg("Rendered")  // Correct
//	logging.Info().Msgf("rendered %s with %d rows", id, n)            // Avoid
package logging
