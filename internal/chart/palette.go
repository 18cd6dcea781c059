// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package chart

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// viridisStops are viridis at 0, 0.25, 0.5, 0.75 and 1. Their lightness
// increases strictly, which moreland.NewLuminance requires.
var viridisStops = []color.Color{
	color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.RGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	color.RGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	color.RGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	color.RGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// viridisEnd keeps the palest yellow out of bar ramps.
const viridisEnd = 0.9

var viridis = mustLuminance(viridisStops)

func mustLuminance(stops []color.Color) palette.ColorMap {
	cm, err := moreland.NewLuminance(stops)
	if err != nil {
		panic(err)
	}
	cm.SetMin(0)
	cm.SetMax(1)
	return cm
}

// Viridis returns n colors spaced evenly along the viridis ramp, darkest
// first, for coloring ranked bars one by one.
func Viridis(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := range colors {
		v := 0.0
		if n > 1 {
			v = viridisEnd * float64(i) / float64(n-1)
		}
		c, err := viridis.At(v)
		if err != nil {
			// v is always inside [0, 1].
			c = viridisStops[0]
		}
		colors[i] = c
	}
	return colors
}
