// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/parkingreport/internal/database"
)

// fakeQuerier returns canned tables keyed by SQL text.
type fakeQuerier struct {
	mu      sync.Mutex
	tables  map[string]*database.Table
	errs    map[string]error
	queries []string
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{tables: fixtureTables(), errs: make(map[string]error)}
}

func (f *fakeQuerier) Query(_ context.Context, sql string) (*database.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, sql)
	if err, ok := f.errs[sql]; ok {
		return nil, err
	}
	t, ok := f.tables[sql]
	if !ok {
		return nil, fmt.Errorf("no fixture for %q", sql)
	}
	return t, nil
}

func (f *fakeQuerier) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// queryOf returns the SQL of a catalog metric.
func queryOf(id string) string {
	m, ok := Lookup(id)
	if !ok {
		panic("unknown metric " + id)
	}
	return m.Query
}

func latestTickets() *database.Table {
	rows := make([][]any, 10)
	for i := range rows {
		rows[i] = []any{fmt.Sprintf("14%08d", i), fmt.Sprintf("PLT%03d", i), int64(21 + i), "2023-06-30"}
	}
	return database.NewTable([]string{"summons_number", "plate_id", "violation_code", "issue_date"}, rows...)
}

func weekdayRow(label any, days ...float64) []any {
	row := []any{label}
	for _, d := range days {
		row = append(row, d)
	}
	return row
}

func fixtureTables() map[string]*database.Table {
	days := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

	return map[string]*database.Table{
		queryOf("a"): latestTickets(),
		queryOf("b"): database.NewTable([]string{"violation_county", "ticket_count"},
			[]any{"NY", int64(3000)}, []any{"K", int64(2000)}, []any{"Q", int64(1500)}),
		queryOf("c"): database.NewTable([]string{"violation_definition", "ticket_count"},
			[]any{"NO PARKING-STREET CLEANING", int64(900)}, []any{"FAIL TO DSPLY MUNI METER RECPT", int64(700)}),
		queryOf("d"): database.NewTable([]string{"issuing_agency", "ticket_count"},
			[]any{"TRAFFIC", int64(5000)}, []any{"DEPARTMENT OF SANITATION", int64(800)}),
		queryOf("e"): database.NewTable([]string{"vehicle_make", "plate_type", "registration_state", "ticket_count"},
			[]any{"TOYOT", "PAS", "NY", int64(400)}, []any{"HONDA", "PAS", "NJ", int64(300)}),
		queryOf("f"): database.NewTable([]string{"total_fees_90_days"}, []any{1234567.891}),
		queryOf("g"): database.NewTable([]string{"police_precinct", "total_ticket_fees_usd"},
			[]any{"14", 250_000.0}, []any{"19", 900_000.0}, []any{"1", 600_000.0}),
		queryOf("h"): database.NewTable([]string{"year_month", "ticket_count"},
			[]any{"2023-02", int64(200)}, []any{"2023-01", int64(100)}, []any{"2023-03", int64(300)}),
		queryOf("i"): database.NewTable([]string{"year_week", "ticket_count"},
			[]any{"2023-W02", int64(120)}, []any{"2023-W01", int64(100)}, []any{"2023-W03", int64(90)}),
		queryOf("j"): database.NewTable([]string{"issuing_agency", "total_ticket_fees_usd", "average_fee_usd", "ticket_count"},
			[]any{"POLICE DEPARTMENT", 90_000.0, 65.0, int64(1385)}, []any{"TRAFFIC", 900_000.0, 64.5, int64(13953)}),
		queryOf("k"): database.NewTable(append([]string{"year_week"}, days...),
			weekdayRow("2023-W02", 1, 2, 3, 4, 5, 6, 7),
			weekdayRow("2023-W01", 3, 5, 0, 1, 8, 2, 4)),
		queryOf("l"): database.NewTable(append([]string{"violation_county"}, append(days, "total_tickets")...),
			append(weekdayRow("K", 1, 1, 1, 1, 1, 1, 1), int64(7)),
			append(weekdayRow("NY", 10, 20, 30, 40, 50, 60, 70), int64(280))),
		queryOf("m"): database.NewTable(append([]string{"violation_code", "violation_definition"}, append(days, "total_tickets")...),
			append([]any{int64(38)}, append(weekdayRow("FAILURE TO DISPLAY A VALID MUNI-METER RECEIPT OR PAY-AND-DISPLAY RECEIPT", 5, 500, 400, 300, 200, 100, 0), int64(1505))...),
			append([]any{int64(21)}, append(weekdayRow("NO PARKING-STREET CLEANING", 0, 9000, 8000, 7000, 6000, 5000, 0), int64(35000))...)),
	}
}
