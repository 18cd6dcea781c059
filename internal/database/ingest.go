// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/parkingreport/internal/logging"
	"github.com/tomtom215/parkingreport/internal/metrics"
)

// Raw tables replaced by BulkLoad, and the CSV files they are read from.
const (
	ViolationCodesTable = "parking_violation_codes"
	ViolationCodesCSV   = "dof_parking_violation_codes.csv"

	ViolationsTable = "parking_violations_2023"
	ViolationsCSV   = "parking_violations_issued_fiscal_year_2023_sample.csv"
)

// BulkSource pairs a base table with the CSV file that replaces it.
type BulkSource struct {
	Table string
	File  string
}

// BulkSources lists what BulkLoad replaces, in load order.
var BulkSources = []BulkSource{
	{Table: ViolationCodesTable, File: ViolationCodesCSV},
	{Table: ViolationsTable, File: ViolationsCSV},
}

// BulkLoad replaces the raw tables wholesale from the CSV files in csvDir.
// Column names are normalized by DuckDB (lowercase, underscores). Both
// statements run on one connection and are retried together once.
func (h *Helper) BulkLoad(ctx context.Context, csvDir string) error {
	statements := make([]string, 0, len(BulkSources))
	for _, src := range BulkSources {
		path := filepath.Join(csvDir, src.File)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrCSVNotFound, path)
		}
		statements = append(statements, bulkLoadStatement(src.Table, path))
	}

	start := time.Now()
	if err := h.Exec(ctx, statements...); err != nil {
		return fmt.Errorf("bulk load from %s: %w", csvDir, err)
	}

	metrics.BulkLoadLastSuccess.Set(float64(time.Now().Unix()))
	logging.CtxWithComponent(ctx, "database").Info().
		Str("csv_dir", csvDir).
		Dur("duration", time.Since(start)).
		Msg("Base tables replaced from CSV")
	return nil
}

// bulkLoadStatement builds the CREATE OR REPLACE statement for one source.
func bulkLoadStatement(table, csvPath string) string {
	return fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s, normalize_names=true)",
		quoteIdent(table), quoteLiteral(csvPath))
}

// TableCounts returns the row count of each named table.
func (h *Helper) TableCounts(ctx context.Context, tables ...string) (map[string]int64, error) {
	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		value, err := h.QueryValue(ctx, "SELECT COUNT(*) AS row_count FROM "+quoteIdent(table), "row_count")
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		n, ok := toFloat64(value)
		if !ok {
			return nil, fmt.Errorf("%w: count for %s is %T", ErrColumnType, table, value)
		}
		counts[table] = int64(n)
	}
	return counts, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// joinStatements renders a statement batch for error reports and logs.
func joinStatements(statements []string) string {
	return strings.Join(statements, ";\n")
}
