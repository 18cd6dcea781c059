// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package chart

// Change is a period-over-period delta that may be undefined.
type Change struct {
	Value   float64
	Defined bool
}

// Defined returns a defined Change.
func Defined(v float64) Change {
	return Change{Value: v, Defined: true}
}

// WeekOverWeek derives absolute and percent changes from consecutive counts.
// The first period is undefined in both; percent is also undefined when the
// prior count is zero.
func WeekOverWeek(counts []float64) (abs, pct []Change) {
	abs = make([]Change, len(counts))
	pct = make([]Change, len(counts))
	for i := 1; i < len(counts); i++ {
		prev, cur := counts[i-1], counts[i]
		abs[i] = Defined(cur - prev)
		if prev != 0 {
			pct[i] = Defined((cur - prev) / prev * 100)
		}
	}
	return abs, pct
}

// countDefined returns how many changes are defined.
func countDefined(changes []Change) int {
	n := 0
	for _, c := range changes {
		if c.Defined {
			n++
		}
	}
	return n
}
