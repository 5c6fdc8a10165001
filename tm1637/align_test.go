// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import (
	"bytes"
	"testing"
)

func TestAlign(t *testing.T) {
	data := []struct {
		name   string
		layout Layout
		pos    int
		segs   []byte
		offset int
		want   []byte
	}{
		{"linear", LayoutLinear, 2, []byte{1, 2, 3}, 2, []byte{1, 2, 3}},
		{"linear past the end", LayoutLinear, 7, []byte{1}, 7, []byte{1}},
		{"six", LayoutSixDigit, 0, []byte{0, 1, 2, 3, 4, 5}, 3, []byte{5, 4, 3, 2, 1, 0}},
		{"six padded", LayoutSixDigit, 1, []byte{1, 2}, 3, []byte{0, 0, 0, 2, 1, 0}},
		{"six truncated", LayoutSixDigit, 4, []byte{1, 2, 3, 4}, 3, []byte{2, 1, 0, 0, 0, 0}},
		{"six empty", LayoutSixDigit, 0, nil, 3, []byte{0, 0, 0, 0, 0, 0}},
		{"six out of range", LayoutSixDigit, 6, []byte{1}, 3, []byte{}},
		{"six negative", LayoutSixDigit, -1, []byte{1}, 3, []byte{}},
	}
	var dst [maxDigits]byte
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			offset, got := align(line.layout, dst[:], line.pos, line.segs)
			if offset != line.offset || !bytes.Equal(got, line.want) {
				t.Fatalf("align(%s, %d, %v) = %d, %v; want %d, %v", line.layout, line.pos, line.segs, offset, got, line.offset, line.want)
			}
		})
	}
}

func TestLayoutString(t *testing.T) {
	if s := LayoutSixDigit.String(); s != "SixDigit" {
		t.Fatal(s)
	}
	if s := LayoutAuto.String(); s != "Auto" {
		t.Fatal(s)
	}
}
