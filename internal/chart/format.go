// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package chart

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// CompactThreshold is the largest value a currency axis labels in full.
const CompactThreshold = 500_000

// FormatCurrency formats v as dollars and cents: 1234567.891 -> "$1,234,567.89".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-" + FormatCurrency(-v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatWholeCurrency formats v as whole dollars: 1234.5 -> "$1,235".
func FormatWholeCurrency(v float64) string {
	if v < 0 {
		return "-" + FormatWholeCurrency(-v)
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatCompactCurrency abbreviates large dollar amounts for axis ticks:
// 2500000 -> "$2.5M", 750000 -> "$750K", 999 -> "$999".
func FormatCompactCurrency(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.0fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// FormatCount formats v as a whole number with thousands separators.
func FormatCount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// FormatSignedCount is FormatCount with an explicit sign: "+20", "-30".
func FormatSignedCount(v float64) string {
	if v >= 0 {
		return "+" + FormatCount(v)
	}
	return FormatCount(v)
}

// FormatPercent formats a percentage with one decimal and a sign: "+20.0%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}
