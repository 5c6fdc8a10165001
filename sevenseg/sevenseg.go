// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sevenseg maps characters to 7-segment LED patterns and transforms
// those patterns for displays mounted upside down or behind a mirror.
//
// A pattern is a single byte. Bits 0 to 6 drive segments A to G, bit 7
// drives the decimal point (or the colon, on clock style modules):
//
//	 --A--
//	|     |
//	F     B
//	|     |
//	 --G--
//	|     |
//	E     C
//	|     |
//	 --D--  DP
package sevenseg

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment bits.
const (
	A byte = 1 << iota
	B
	C
	D
	E
	F
	G
	DP
)

const (
	// Blank turns every segment of a digit off.
	Blank byte = 0
	// Minus is the pattern for '-'.
	Minus byte = G
	// Degree is a small raised circle, useful after a temperature.
	Degree byte = A | B | F | G
)

// Digits holds the patterns for 0-9.
var Digits = [10]byte{
	0b00111111, // 0
	0b00000110, // 1
	0b01011011, // 2
	0b01001111, // 3
	0b01100110, // 4
	0b01101101, // 5
	0b01111101, // 6
	0b00000111, // 7
	0b01111111, // 8
	0b01101111, // 9
}

// HexDigits holds the patterns for 0-9 and A-F. b and d are lowercase so
// they can't be mistaken for 8 and 0.
var HexDigits = [16]byte{
	Digits[0], Digits[1], Digits[2], Digits[3], Digits[4],
	Digits[5], Digits[6], Digits[7], Digits[8], Digits[9],
	0b01110111, // A
	0b01111100, // b
	0b00111001, // C
	0b01011110, // d
	0b01111001, // E
	0b01110001, // F
}

// UpsideDownDigits holds Digits rotated by 180 degrees.
var UpsideDownDigits = func() (d [10]byte) {
	for i, b := range Digits {
		d[i] = FlipMirror(b)
	}
	return
}()

// Circle lists the outer segments in clockwise order, starting at the top.
var Circle = [6]byte{A, B, C, D, E, F}

// ascii covers the characters that have a legible 7-segment rendering. Not
// all letters do; the ones missing from either case map to Blank.
var ascii = [128]byte{
	' ': Blank,
	'-': Minus,
	'_': D,
	'=': D | G,
	'?': A | B | E | G,

	'0': Digits[0], '1': Digits[1], '2': Digits[2], '3': Digits[3], '4': Digits[4],
	'5': Digits[5], '6': Digits[6], '7': Digits[7], '8': Digits[8], '9': Digits[9],

	'A': 0b01110111,
	'B': 0b01111111,
	'C': 0b00111001,
	'E': 0b01111001,
	'F': 0b01110001,
	'G': 0b00111101,
	'H': 0b01110110,
	'I': 0b00110000,
	'J': 0b00011110,
	'L': 0b00111000,
	'O': 0b00111111,
	'P': 0b01110011,
	'S': 0b01101101,
	'U': 0b00111110,
	'Z': 0b01011011,

	'a': 0b01011111,
	'b': 0b01111100,
	'c': 0b01011000,
	'd': 0b01011110,
	'e': 0b01111011,
	'g': 0b01101111,
	'h': 0b01110100,
	'i': 0b00010000,
	'n': 0b01010100,
	'o': 0b01011100,
	'q': 0b01100111,
	'r': 0b01010000,
	't': 0b01111000,
	'u': 0b00011100,
	'y': 0b01101110,
}

// FromASCII returns the pattern for c. Characters without a 7-segment
// rendering, including every byte above 0x7f, return Blank.
func FromASCII(c byte) byte {
	if c >= byte(len(ascii)) {
		return Blank
	}
	return ascii[c]
}

// Flip turns a pattern upside down by reflecting it across the horizontal
// axis: A and D, B and C, E and F trade places. G and DP are kept.
func Flip(b byte) byte {
	return b&(G|DP) |
		(b&A)<<3 | (b&D)>>3 |
		(b&B)<<1 | (b&C)>>1 |
		(b&E)<<1 | (b&F)>>1
}

// Mirror reflects a pattern across the vertical axis: B and F, C and E trade
// places. A, D, G and DP are kept.
func Mirror(b byte) byte {
	return b&(A|D|G|DP) |
		(b&B)<<4 | (b&F)>>4 |
		(b&C)<<2 | (b&E)>>2
}

// FlipMirror rotates a pattern by 180 degrees. Flip and Mirror commute, so
// the order they are applied in doesn't matter.
func FlipMirror(b byte) byte {
	return Mirror(Flip(b))
}

// Text converts s into patterns. See AppendText.
func Text(s string) []byte {
	return AppendText(make([]byte, 0, len(s)), s)
}

// AppendText appends the patterns for s to dst and returns the extended
// slice.
//
// A '.' lights the decimal point of the character before it, so "12.5"
// takes three digits. A '.' at the start of s or after another '.' takes a
// digit of its own.
func AppendText(dst []byte, s string) []byte {
	start := len(dst)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if len(dst) > start && s[i-1] != '.' {
				dst[len(dst)-1] |= DP
			} else {
				dst = append(dst, DP)
			}
			continue
		}
		dst = append(dst, FromASCII(c))
	}
	return dst
}

// Clock returns four digits showing hour and minute. Each value is taken
// modulo 100. If colon is true, the decimal point of the second digit is
// lit; that is where clock modules wire their colon.
func Clock(hour, minute int, colon bool) []byte {
	hour, minute = abs(hour)%100, abs(minute)%100
	b := []byte{
		Digits[hour/10],
		Digits[hour%10],
		Digits[minute/10],
		Digits[minute%10],
	}
	if colon {
		b[1] |= DP
	}
	return b
}

// Int returns v right aligned on width digits. A value that doesn't fit is
// shown as width dashes.
func Int(v, width int) []byte {
	s := fmt.Sprintf("%*d", width, v)
	if len(s) > width {
		return overflow(width)
	}
	return Text(s)
}

// Fixed returns v divided by 10^decimals, right aligned on width digits,
// with the decimal point lit after the integer part. A value that doesn't fit
// is shown as width dashes.
func Fixed(v, decimals, width int) []byte {
	if decimals <= 0 {
		return Int(v, width)
	}
	s := strconv.Itoa(abs(v))
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}
	s = s[:len(s)-decimals] + "." + s[len(s)-decimals:]
	if v < 0 {
		s = "-" + s
	}
	segs := Text(s)
	if len(segs) > width {
		return overflow(width)
	}
	return append(make([]byte, width-len(segs), width), segs...)
}

// Hex returns v as width zero padded hexadecimal digits. A value that
// doesn't fit is shown as width dashes.
func Hex(v uint64, width int) []byte {
	if width <= 0 {
		return nil
	}
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = HexDigits[v&0xf]
		v >>= 4
	}
	if v != 0 {
		return overflow(width)
	}
	return b
}

func overflow(width int) []byte {
	if width < 0 {
		width = 0
	}
	b := make([]byte, width)
	for i := range b {
		b[i] = Minus
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
