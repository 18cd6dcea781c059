// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package database

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/parkingreport/internal/logging"
)

var (
	// ErrColumnNotFound is returned when a result lacks a column its renderer requires.
	ErrColumnNotFound = errors.New("expected column not found")

	// ErrColumnType is returned when a column value cannot be converted to the requested type.
	ErrColumnType = errors.New("unexpected column type")

	// ErrEmptyResult is returned when a single-value query returns no rows.
	ErrEmptyResult = errors.New("query returned no rows")

	// ErrCSVNotFound is returned by BulkLoad when a source CSV is missing.
	ErrCSVNotFound = errors.New("csv file not found")
)

// ColumnError reports a column contract violation.
type ColumnError struct {
	Column    string
	Available []string
	Err       error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v: %q (available: %s)", e.Err, e.Column, strings.Join(e.Available, ", "))
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// QueryError is returned after both attempts of a statement failed.
// Err is the error of the first attempt.
type QueryError struct {
	SQL      string
	Attempts int
	Err      error
	RetryErr error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// closeWithLog closes a resource and logs any error.
// Use this for cleanup where errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		log := logging.WithComponent("database")
		log.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}
