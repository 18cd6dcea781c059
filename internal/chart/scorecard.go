// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ScorecardSpec describes a single headline number.
type ScorecardSpec struct {
	Title    string
	Value    string
	Subtitle string
}

// Scorecard draws the value large and centered with the title above it and
// the subtitle below.
func Scorecard(w io.Writer, spec ScorecardSpec, out Output) error {
	if err := out.Validate(); err != nil {
		return err
	}
	if spec.Value == "" {
		return ErrNoData
	}

	c, err := draw.NewFormattedCanvas(out.Width, out.Height, out.Format)
	if err != nil {
		return fmt.Errorf("failed to create %s canvas: %w", out.Format, err)
	}
	dc := draw.New(c)

	rect := dc.Rectangle
	cx := (rect.Min.X + rect.Max.X) / 2
	height := rect.Max.Y - rect.Min.Y

	dc.FillText(centered(colorText, vg.Points(16)), vg.Point{X: cx, Y: rect.Min.Y + height*0.82}, spec.Title)
	dc.FillText(centered(colorScoreValue, vg.Points(44)), vg.Point{X: cx, Y: rect.Min.Y + height*0.5}, spec.Value)
	if spec.Subtitle != "" {
		dc.FillText(centered(colorMutedText, vg.Points(14)), vg.Point{X: cx, Y: rect.Min.Y + height*0.22}, spec.Subtitle)
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out.Format, err)
	}
	return nil
}

func centered(c color.Color, size vg.Length) text.Style {
	return text.Style{
		Color:   c,
		Font:    font.From(plot.DefaultFont, size),
		Handler: plot.DefaultTextHandler,
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
	}
}
