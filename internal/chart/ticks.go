// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// ValueKind selects how a value axis and its bar labels are formatted.
type ValueKind int

const (
	// Count values are whole numbers with thousands separators.
	Count ValueKind = iota
	// Currency values are whole dollars, compacted on the axis above CompactThreshold.
	Currency
	// Percent values carry a trailing percent sign.
	Percent
)

// label formats a bar annotation.
func (k ValueKind) label(v float64) string {
	switch k {
	case Currency:
		return FormatWholeCurrency(v)
	case Percent:
		return FormatPercent(v)
	default:
		return FormatCount(v)
	}
}

// valueTicks relabels the default tick marks for a value axis.
type valueTicks struct {
	kind    ValueKind
	compact bool
}

func newValueTicks(kind ValueKind, maxValue float64) valueTicks {
	return valueTicks{kind: kind, compact: kind == Currency && maxValue > CompactThreshold}
}

// Ticks implements plot.Ticker.
func (t valueTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		v := ticks[i].Value
		switch {
		case t.compact:
			ticks[i].Label = FormatCompactCurrency(v)
		case t.kind == Currency:
			ticks[i].Label = FormatWholeCurrency(v)
		case t.kind == Percent:
			ticks[i].Label = fmt.Sprintf("%.0f%%", v)
		case v == math.Trunc(v):
			ticks[i].Label = FormatCount(v)
		}
	}
	return ticks
}
