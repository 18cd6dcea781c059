// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package database

import (
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/duckdb/duckdb-go/v2"
)

// Column describes one result column.
type Column struct {
	Name         string
	DatabaseType string
}

// Table is a fully materialized query result. Rows hold normalized values:
// string, int64, float64, bool, time.Time or nil.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// NewTable builds a Table from column names and rows. It is used by tests and
// callers that fake query results.
func NewTable(columns []string, rows ...[]any) *Table {
	t := &Table{Columns: make([]Column, len(columns)), Rows: make([][]any, 0, len(rows))}
	for i, name := range columns {
		t.Columns[i] = Column{Name: name}
	}
	for _, row := range rows {
		normalized := make([]any, len(row))
		for i, v := range row {
			normalized[i] = normalizeValue(v)
		}
		t.Rows = append(t.Rows, normalized)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnNames returns the column names in result order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the column with exactly this name.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, nil
		}
	}
	return -1, &ColumnError{Column: name, Available: t.ColumnNames(), Err: ErrColumnNotFound}
}

// HasColumn reports whether the result carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, err := t.ColumnIndex(name)
	return err == nil
}

// Require checks that every named column is present.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if _, err := t.ColumnIndex(name); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the value at row for the named column.
func (t *Table) Value(row int, column string) (any, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= len(t.Rows) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, len(t.Rows))
	}
	return t.Rows[row][idx], nil
}

// Float64 returns one numeric cell. NULL is an error.
func (t *Table) Float64(row int, column string) (float64, error) {
	v, err := t.Value(row, column)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf("%w: %s is NULL in row %d", ErrColumnType, column, row)
	}
	f, ok := toFloat64(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s has %T in row %d", ErrColumnType, column, v, row)
	}
	return f, nil
}

// Text returns one cell as text. NULL becomes "".
func (t *Table) Text(row int, column string) (string, error) {
	v, err := t.Value(row, column)
	if err != nil || v == nil {
		return "", err
	}
	return FormatValue(v), nil
}

// Strings returns the column formatted as text. NULL becomes "".
func (t *Table) Strings(column string) ([]string, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if row[idx] != nil {
			out[i] = FormatValue(row[idx])
		}
	}
	return out, nil
}

// Float64s returns a numeric column. NULL or non-numeric values are errors.
func (t *Table) Float64s(column string) ([]float64, error) {
	values, valid, err := t.NullableFloat64s(column)
	if err != nil {
		return nil, err
	}
	for i, ok := range valid {
		if !ok {
			return nil, fmt.Errorf("%w: %s is NULL in row %d", ErrColumnType, column, i)
		}
	}
	return values, nil
}

// NullableFloat64s returns a numeric column and a parallel validity slice;
// NULL and NaN entries are reported as invalid with value 0.
func (t *Table) NullableFloat64s(column string) ([]float64, []bool, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, nil, err
	}
	values := make([]float64, len(t.Rows))
	valid := make([]bool, len(t.Rows))
	for i, row := range t.Rows {
		if row[idx] == nil {
			continue
		}
		f, ok := toFloat64(row[idx])
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s has %T in row %d", ErrColumnType, column, row[idx], i)
		}
		if math.IsNaN(f) {
			continue
		}
		values[i], valid[i] = f, true
	}
	return values, valid, nil
}

// Int64s returns an integer column. Floats are truncated.
func (t *Table) Int64s(column string) ([]int64, error) {
	floats, err := t.Float64s(column)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(floats))
	for i, f := range floats {
		out[i] = int64(f)
	}
	return out, nil
}

// SortedBy returns a copy of the table with rows stably reordered by cmp,
// which compares row indexes of the receiver. Rows are never dropped or duplicated.
func (t *Table) SortedBy(cmp func(a, b int) int) *Table {
	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, cmp)

	sorted := &Table{Columns: slices.Clone(t.Columns), Rows: make([][]any, len(t.Rows))}
	for i, src := range order {
		sorted.Rows[i] = t.Rows[src]
	}
	return sorted
}

// StringRows formats every cell for display, preserving column order.
func (t *Table) StringRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatValue(v)
		}
		out[i] = cells
	}
	return out
}

// FormatValue renders a normalized value the way the report prints it.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.DateTime)
	default:
		return fmt.Sprint(v)
	}
}

// scanTable copies every row of rows into a Table.
func scanTable(rows *sql.Rows) (*Table, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	t := &Table{Columns: make([]Column, len(types))}
	for i, ct := range types {
		t.Columns[i] = Column{Name: ct.Name(), DatabaseType: ct.DatabaseTypeName()}
	}

	raw := make([]any, len(types))
	dest := make([]any, len(types))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(t.Rows), err)
		}
		row := make([]any, len(raw))
		for i, v := range raw {
			row[i] = normalizeValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// normalizeValue collapses driver types onto the small set renderers handle.
func normalizeValue(v any) any {
	switch v := v.(type) {
	case nil, string, int64, float64, bool, time.Time:
		return v
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return float64(v)
		}
		return int64(v)
	case float32:
		return float64(v)
	case []byte:
		return string(v)
	case *big.Int:
		if v == nil {
			return nil
		}
		if v.IsInt64() {
			return v.Int64()
		}
		f, _ := new(big.Float).SetInt(v).Float64()
		return f
	case duckdb.Decimal:
		return v.Float64()
	case *duckdb.Decimal:
		if v == nil {
			return nil
		}
		return v.Float64()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// toFloat64 converts a normalized numeric value.
func toFloat64(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
