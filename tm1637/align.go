// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import "slices"

// Layout describes how the digits on the glass are wired to the chip's grid
// outputs.
type Layout int

const (
	// LayoutAuto picks LayoutSixDigit for 6 digit displays and LayoutLinear
	// otherwise.
	LayoutAuto Layout = iota
	// LayoutLinear wires digit i to grid i, as on the common 4 digit clock
	// modules.
	LayoutLinear
	// LayoutSixDigit is the wiring of the common 6 digit modules, which
	// connect the digits left to right to grids 2, 1, 0, 5, 4, 3.
	LayoutSixDigit
)

func (l Layout) String() string {
	switch l {
	case LayoutLinear:
		return "Linear"
	case LayoutSixDigit:
		return "SixDigit"
	default:
		return "Auto"
	}
}

// sixDigitOffset is the grid the reversed 6 byte burst starts at. The
// address counter wraps over the six grids, so the burst lands on grids 3, 4,
// 5, 0, 1, 2.
const sixDigitOffset = 3

// align maps a logical write to the grid address and bytes to transmit.
// dst is scratch space of at least maxDigits bytes.
func align(l Layout, dst []byte, pos int, segs []byte) (int, []byte) {
	if l != LayoutSixDigit {
		return pos, segs
	}
	if pos < 0 || pos >= 6 {
		return sixDigitOffset, dst[:0]
	}
	buf := dst[:6]
	clear(buf)
	copy(buf[pos:], segs)
	slices.Reverse(buf)
	return sixDigitOffset, buf
}
