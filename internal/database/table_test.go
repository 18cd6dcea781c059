// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package database

import (
	"cmp"
	"errors"
	"math"
	"testing"
	"time"
)

func sampleTable() *Table {
	return NewTable(
		[]string{"police_precinct", "total_ticket_fees_usd", "ticket_count"},
		[]any{"14", 1250.5, int32(20)},
		[]any{"19", 9800.0, int32(150)},
		[]any{"1", 9800.0, int32(140)},
		[]any{"114", nil, int32(3)},
	)
}

func TestTable_ColumnIndex(t *testing.T) {
	table := sampleTable()

	idx, err := table.ColumnIndex("ticket_count")
	if err != nil || idx != 2 {
		t.Errorf("ColumnIndex(ticket_count) = %d, %v", idx, err)
	}

	_, err = table.ColumnIndex("precinct")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("error = %v, want ErrColumnNotFound", err)
	}
	var ce *ColumnError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not *ColumnError", err)
	}
	if ce.Column != "precinct" || len(ce.Available) != 3 {
		t.Errorf("ColumnError = %+v", ce)
	}
}

func TestTable_Require(t *testing.T) {
	table := sampleTable()

	if err := table.Require("police_precinct", "total_ticket_fees_usd"); err != nil {
		t.Errorf("Require() error = %v", err)
	}
	if err := table.Require("police_precinct", "Total_Ticket_Fees_USD"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Require() is case-sensitive, got %v", err)
	}
}

func TestTable_Float64s(t *testing.T) {
	table := sampleTable()

	if _, err := table.Float64s("total_ticket_fees_usd"); !errors.Is(err, ErrColumnType) {
		t.Errorf("Float64s() with NULL error = %v, want ErrColumnType", err)
	}

	values, valid, err := table.NullableFloat64s("total_ticket_fees_usd")
	if err != nil {
		t.Fatalf("NullableFloat64s() error = %v", err)
	}
	wantValid := []bool{true, true, true, false}
	for i := range wantValid {
		if valid[i] != wantValid[i] {
			t.Errorf("valid[%d] = %v, want %v", i, valid[i], wantValid[i])
		}
	}
	if values[0] != 1250.5 {
		t.Errorf("values[0] = %v", values[0])
	}

	counts, err := table.Int64s("ticket_count")
	if err != nil {
		t.Fatalf("Int64s() error = %v", err)
	}
	if counts[1] != 150 {
		t.Errorf("counts[1] = %d, want 150", counts[1])
	}

	if _, err := table.Float64s("police_precinct"); err != nil {
		t.Errorf("numeric strings should convert, got %v", err)
	}
}

func TestTable_NullableFloat64sNaN(t *testing.T) {
	table := NewTable([]string{"percent_change"}, []any{math.NaN()}, []any{12.5})

	_, valid, err := table.NullableFloat64s("percent_change")
	if err != nil {
		t.Fatalf("NullableFloat64s() error = %v", err)
	}
	if valid[0] || !valid[1] {
		t.Errorf("valid = %v, want [false true]", valid)
	}
}

func TestTable_NonNumericColumn(t *testing.T) {
	table := NewTable([]string{"county"}, []any{"NY"})

	if _, err := table.Float64s("county"); !errors.Is(err, ErrColumnType) {
		t.Errorf("Float64s() error = %v, want ErrColumnType", err)
	}
}

func TestTable_SortedBy(t *testing.T) {
	table := sampleTable()
	fees, valid, _ := table.NullableFloat64s("total_ticket_fees_usd")

	sorted := table.SortedBy(func(a, b int) int {
		if valid[a] != valid[b] {
			if valid[a] {
				return -1
			}
			return 1
		}
		return cmp.Compare(fees[b], fees[a])
	})

	if sorted.Len() != table.Len() {
		t.Fatalf("SortedBy changed row count: %d -> %d", table.Len(), sorted.Len())
	}

	precincts, _ := sorted.Strings("police_precinct")
	want := []string{"19", "1", "14", "114"}
	for i := range want {
		if precincts[i] != want[i] {
			t.Errorf("precincts[%d] = %q, want %q (stable order expected)", i, precincts[i], want[i])
		}
	}

	original, _ := table.Strings("police_precinct")
	if original[0] != "14" {
		t.Error("SortedBy must not reorder the receiver")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"abc", "abc"},
		{int64(42), "42"},
		{65.5, "65.5"},
		{true, "true"},
		{time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), "2023-06-30"},
		{time.Date(2023, 6, 30, 8, 15, 0, 0, time.UTC), "2023-06-30 08:15:00"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{int8(3), int64(3)},
		{uint16(7), int64(7)},
		{float32(1.5), float64(1.5)},
		{[]byte("x"), "x"},
	}

	for _, tt := range tests {
		if got := normalizeValue(tt.in); got != tt.want {
			t.Errorf("normalizeValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestTable_CellAccessors(t *testing.T) {
	table := sampleTable()

	fee, err := table.Float64(1, "total_ticket_fees_usd")
	if err != nil || fee != 9800 {
		t.Errorf("Float64(1) = %v, %v, want 9800", fee, err)
	}
	if _, err := table.Float64(3, "total_ticket_fees_usd"); !errors.Is(err, ErrColumnType) {
		t.Errorf("Float64 of NULL error = %v, want ErrColumnType", err)
	}

	precinct, err := table.Text(2, "police_precinct")
	if err != nil || precinct != "1" {
		t.Errorf("Text(2) = %q, %v, want 1", precinct, err)
	}
	if _, err := table.Text(9, "police_precinct"); err == nil {
		t.Error("out of range row should fail")
	}
}
