// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen7seg draws a 7-segment display on the terminal using ANSI
// color codes.
//
// Useful to try animations before the display is wired, or with the
// simulated chip in package tm1637test.
package screen7seg

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/sevensegment/sevenseg"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for this display.
type Opts struct {
	// Digits shown, default 4.
	Digits int
	// Color of a lit segment at the highest level. Default red.
	Color   color.NRGBA
	Palette *ansi256.Palette
	// W receives the output. Default is a colorable stdout.
	W io.Writer

	_ struct{}
}

// glyph is the cell layout of one digit. The decimal point gets a column of
// its own on the last row.
var glyph = [...][4]byte{
	{0, sevenseg.A, sevenseg.A, 0},
	{sevenseg.F, 0, 0, sevenseg.B},
	{0, sevenseg.G, sevenseg.G, 0},
	{sevenseg.E, 0, 0, sevenseg.C},
	{0, sevenseg.D, sevenseg.D, 0},
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	dark  = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	black = color.NRGBA{A: 255}
)

// Dev is a 7-segment display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	color   color.NRGBA

	segs  []byte
	on    bool
	level int
	drawn bool

	lit, unlit, blank string
	buf               bytes.Buffer
}

// New returns a Dev that displays at the console. It starts on at the
// highest level. opts may be nil.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	digits := opts.Digits
	if digits <= 0 {
		digits = 4
	}
	c := opts.Color
	if c == (color.NRGBA{}) {
		c = red
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:       w,
		palette: *p,
		color:   c,
		segs:    make([]byte, digits),
		on:      true,
		level:   7,
	}
	d.blank = d.palette.Block(black)
	d.unlit = d.palette.Block(dark)
	d.lit = d.palette.Block(c)
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen7Seg{%d}", len(d.segs))
}

// Halt implements conn.Resource.
//
// It resets the colors and moves below the display so the terminal is not
// corrupted.
func (d *Dev) Halt() error {
	d.drawn = false
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Write displays segment patterns from the leftmost digit. Digits past the
// ones given are left untouched and patterns past the last digit are dropped.
func (d *Dev) Write(segs []byte) (int, error) {
	copy(d.segs, segs)
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return len(segs), nil
}

// Show replaces the whole panel and the display state at once, as found in
// the display registers of a chip.
func (d *Dev) Show(segs []byte, on bool, level int) error {
	clear(d.segs)
	copy(d.segs, segs)
	d.setBrightness(on, level)
	return d.refresh()
}

// SetBrightness dims the lit segments. level is 0 to 7, as on the chip.
func (d *Dev) SetBrightness(on bool, level int) error {
	d.setBrightness(on, level)
	return d.refresh()
}

func (d *Dev) setBrightness(on bool, level int) {
	level = max(0, min(level, 7))
	d.on = on
	if level == d.level {
		return
	}
	d.level = level
	f := uint32(level + 1)
	c := color.NRGBA{
		R: byte(uint32(d.color.R) * f / 8),
		G: byte(uint32(d.color.G) * f / 8),
		B: byte(uint32(d.color.B) * f / 8),
		A: 255,
	}
	d.lit = d.palette.Block(c)
}

func (d *Dev) cell(s, bit byte) string {
	switch {
	case bit == 0:
		return d.blank
	case d.on && s&bit != 0:
		return d.lit
	default:
		return d.unlit
	}
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.drawn {
		fmt.Fprintf(&d.buf, "\033[%dA", len(glyph))
	}
	for r, row := range glyph {
		_, _ = d.buf.WriteString("\r\033[0m")
		dp := byte(0)
		if r == len(glyph)-1 {
			dp = sevenseg.DP
		}
		for i, s := range d.segs {
			if i != 0 {
				_, _ = d.buf.WriteString(d.blank)
			}
			for _, bit := range row {
				_, _ = d.buf.WriteString(d.cell(s, bit))
			}
			_, _ = d.buf.WriteString(d.cell(s, dp))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ conn.Resource = &Dev{}
var _ io.Writer = &Dev{}
