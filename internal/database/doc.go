// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

// Package database is the data access layer between the report and the DuckDB
// file holding the precomputed gold_* tables.
//
// # Connection Discipline
//
// DuckDB allows one process to hold a file open at a time. The Helper never
// keeps a connection: every call opens the file, runs its SQL, copies the
// result into memory and closes the file before returning. Other tools can
// therefore open the same file between report metrics.
//
// On any failure the Helper closes the failed connection, opens exactly one
// fresh connection and retries the same SQL once. If the retry also fails the
// original error is logged and returned inside a *QueryError:
//
//	attempt 1: open -> query -> close   (fails)
//	attempt 2: open -> query -> close   (fails -> *QueryError{Err: attempt 1 error})
//
// # Results
//
// Query returns a *Table: named columns plus rows of normalized Go values
// (string, int64, float64, bool, time.Time or nil). Renderers bind columns by
// exact name through the typed accessors, which fail with ErrColumnNotFound
// instead of guessing:
//
//	fees, err := table.Float64s("total_ticket_fees_usd")
//
// # Bulk Load
//
// BulkLoad replaces the two raw tables, parking_violation_codes and
// parking_violations_2023, from their fixed CSV files using read_csv_auto with
// normalize_names enabled.
package database
