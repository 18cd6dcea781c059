// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Image formats supported by every renderer.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

var (
	// ErrUnsupportedFormat is returned for image formats other than png and svg.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrNoData is returned when a figure has nothing to draw.
	ErrNoData = errors.New("no data to plot")

	// ErrLengthMismatch is returned when parallel series differ in length.
	ErrLengthMismatch = errors.New("series lengths differ")
)

// Named colors used across figures.
var (
	colorBar        = color.RGBA{R: 70, G: 130, B: 180, A: 255}  // steelblue
	colorAverage    = color.RGBA{R: 214, G: 39, B: 40, A: 255}   // red
	colorGain       = color.RGBA{R: 34, G: 139, B: 34, A: 255}   // forestgreen
	colorLoss       = color.RGBA{R: 220, G: 20, B: 60, A: 255}   // crimson
	colorPctGain    = color.RGBA{R: 255, G: 140, B: 0, A: 255}   // darkorange
	colorPctLoss    = color.RGBA{R: 128, G: 0, B: 128, A: 255}   // purple
	colorNoData     = color.RGBA{R: 245, G: 245, B: 245, A: 255} // whitesmoke
	colorGrid       = color.Gray{Y: 220}
	colorText       = color.Gray{Y: 30}
	colorMutedText  = color.Gray{Y: 110}
	colorScoreValue = color.RGBA{R: 46, G: 125, B: 50, A: 255}
)

// Output selects the encoding and physical size of a figure.
type Output struct {
	Format string
	Width  vg.Length
	Height vg.Length
}

// NewOutput returns an Output sized in inches.
func NewOutput(format string, widthIn, heightIn float64) Output {
	return Output{
		Format: format,
		Width:  vg.Length(widthIn) * vg.Inch,
		Height: vg.Length(heightIn) * vg.Inch,
	}
}

// Validate checks the format and size.
func (o Output) Validate() error {
	if o.Format != FormatPNG && o.Format != FormatSVG {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, o.Format)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid figure size %vx%v", o.Width, o.Height)
	}
	return nil
}

// writePlot encodes a single plot.
func writePlot(w io.Writer, p *plot.Plot, out Output) error {
	if err := out.Validate(); err != nil {
		return err
	}
	wt, err := p.WriterTo(out.Width, out.Height, out.Format)
	if err != nil {
		return fmt.Errorf("failed to create %s canvas: %w", out.Format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out.Format, err)
	}
	return nil
}

// newPlot returns a plot with the shared title styling.
func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(8)
	return p
}

// barWidth sizes bars so n of them fill about two thirds of span.
func barWidth(span vg.Length, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	w := span * 0.6 / vg.Length(n+1)
	if w < vg.Points(2) {
		return vg.Points(2)
	}
	return w
}
