// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segimage renders 7-segment patterns to an image.
//
// It is handy to preview what a display will show, for documentation or to
// check an animation frame by frame.
package segimage

import (
	"image"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/sevensegment/sevenseg"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Opts configures the rendering. The zero value draws red segments on
// black, 80 pixels high.
type Opts struct {
	// DigitHeight is the height of a digit in pixels. Default 80.
	DigitHeight int
	// On and Off are the colors of lit and unlit segments, Background the
	// color of everything else.
	On, Off, Background color.Color
	// Caption is written below the digits when not empty.
	Caption string
	// Face is used for the caption. Default is Go Regular.
	Face font.Face
}

var (
	defaultOn  = color.NRGBA{R: 255, A: 255}
	defaultOff = color.NRGBA{R: 48, A: 255}
)

// geometry is the layout of the digits in pixels.
type geometry struct {
	margin, w, h, t, pitch float64
}

func newGeometry(height int) geometry {
	h := float64(height)
	return geometry{
		margin: h / 5,
		w:      h / 2,
		h:      h,
		t:      h / 10,
		pitch:  h/2 + h/4,
	}
}

// origin returns the top left corner of digit i.
func (g geometry) origin(i int) (float64, float64) {
	return g.margin + float64(i)*g.pitch, g.margin
}

func (g geometry) size(digits int) (int, int) {
	w := 2*g.margin + float64(digits)*g.pitch - g.h/4 + g.t
	return int(w + 0.5), int(2*g.margin + g.h + 0.5)
}

// segment is a segment position in a digit box, as fractions of its width
// and height.
type segment struct {
	bit            byte
	x0, y0, x1, y1 float64
	horizontal     bool
}

var segments = []segment{
	{sevenseg.A, 0, 0, 1, 0, true},
	{sevenseg.B, 1, 0, 1, 0.5, false},
	{sevenseg.C, 1, 0.5, 1, 1, false},
	{sevenseg.D, 0, 1, 1, 1, true},
	{sevenseg.E, 0, 0.5, 0, 1, false},
	{sevenseg.F, 0, 0, 0, 0.5, false},
	{sevenseg.G, 0, 0.5, 1, 0.5, true},
}

// Draw renders segs, one pattern per digit, left to right.
func Draw(segs []byte, opts *Opts) image.Image {
	return draw(segs, opts).Image()
}

// EncodePNG renders segs as a PNG image to w.
func EncodePNG(w io.Writer, segs []byte, opts *Opts) error {
	return draw(segs, opts).EncodePNG(w)
}

// SavePNG renders segs to a PNG file.
func SavePNG(path string, segs []byte, opts *Opts) error {
	return draw(segs, opts).SavePNG(path)
}

func draw(segs []byte, opts *Opts) *gg.Context {
	if opts == nil {
		opts = &Opts{}
	}
	height := opts.DigitHeight
	if height <= 0 {
		height = 80
	}
	on, off, bg := opts.On, opts.Off, opts.Background
	if on == nil {
		on = defaultOn
	}
	if off == nil {
		off = defaultOff
	}
	if bg == nil {
		bg = color.Black
	}
	g := newGeometry(height)
	width, h := g.size(max(len(segs), 1))

	var face font.Face
	captionH := 0.0
	if opts.Caption != "" {
		face = captionFace(opts.Face, g.h/4)
		m := face.Metrics()
		captionH = float64((m.Ascent + m.Descent).Ceil()) + g.margin
	}

	dc := gg.NewContext(width, h+int(captionH+0.5))
	dc.SetColor(bg)
	dc.Clear()
	for i, s := range segs {
		ox, oy := g.origin(i)
		for _, seg := range segments {
			dc.SetColor(off)
			if s&seg.bit != 0 {
				dc.SetColor(on)
			}
			g.segment(dc, ox, oy, seg)
			dc.Fill()
		}
		dc.SetColor(off)
		if s&sevenseg.DP != 0 {
			dc.SetColor(on)
		}
		dc.DrawCircle(ox+g.w+g.t, oy+g.h, g.t/2)
		dc.Fill()
	}
	if face != nil {
		dc.SetFontFace(face)
		dc.SetColor(on)
		dc.DrawStringAnchored(opts.Caption, float64(width)/2, float64(h)+captionH/2-g.margin/2, 0.5, 0.5)
	}
	return dc
}

// segment traces one segment as an hexagon.
func (g geometry) segment(dc *gg.Context, ox, oy float64, s segment) {
	gap := g.t / 4
	half := g.t / 2
	x0, y0 := ox+s.x0*g.w, oy+s.y0*g.h
	x1, y1 := ox+s.x1*g.w, oy+s.y1*g.h
	if s.horizontal {
		x0 += gap
		x1 -= gap
		dc.MoveTo(x0, y0)
		dc.LineTo(x0+half, y0-half)
		dc.LineTo(x1-half, y1-half)
		dc.LineTo(x1, y1)
		dc.LineTo(x1-half, y1+half)
		dc.LineTo(x0+half, y0+half)
	} else {
		y0 += gap
		y1 -= gap
		dc.MoveTo(x0, y0)
		dc.LineTo(x0+half, y0+half)
		dc.LineTo(x1+half, y1-half)
		dc.LineTo(x1, y1)
		dc.LineTo(x1-half, y1-half)
		dc.LineTo(x0-half, y0+half)
	}
	dc.ClosePath()
}

// captionFace returns f, or Go Regular at the given size. basicfont is the
// last resort.
func captionFace(f font.Face, size float64) font.Face {
	if f != nil {
		return f
	}
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(ttf, &truetype.Options{Size: size})
}
