// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package window

import (
	"bytes"
	"fmt"
	"iter"
	"slices"
	"testing"

	"github.com/GermanBionicSystems/sevensegment/sevenseg"
)

func collect(seq iter.Seq[[]byte]) [][]byte {
	var frames [][]byte
	for f := range seq {
		frames = append(frames, bytes.Clone(f))
	}
	return frames
}

func verifyFrames(t *testing.T, found, expected [][]byte) {
	t.Helper()
	if len(found) != len(expected) {
		t.Fatalf("found %d frames, expected %d: %x", len(found), len(expected), found)
	}
	for i := range expected {
		if !bytes.Equal(found[i], expected[i]) {
			t.Errorf("frame %d: found %x expected %x", i, found[i], expected[i])
		}
	}
}

func TestWindowsEdgeCases(t *testing.T) {
	for _, style := range []Style{Linear, Circular} {
		for _, dir := range []Direction{LeftToRight, RightToLeft} {
			t.Run(fmt.Sprintf("%s/%s", style, dir), func(t *testing.T) {
				verifyFrames(t, collect(Windows(Bytes(nil), 4, style, dir)), [][]byte{{0, 0, 0, 0}})
				verifyFrames(t, collect(Windows(Bytes([]byte{1, 2}), 4, style, dir)), [][]byte{{1, 2, 0, 0}})
			})
		}
	}
	verifyFrames(t, collect(Windows(Bytes([]byte{1, 2, 3, 4}), 4, Linear, LeftToRight)), [][]byte{{1, 2, 3, 4}})
	verifyFrames(t, collect(Windows(Bytes([]byte{1, 2, 3, 4}), 4, Linear, RightToLeft)), [][]byte{{1, 2, 3, 4}})
	if frames := collect(Windows(Bytes([]byte{1, 2, 3, 4}), 4, Circular, LeftToRight)); len(frames) != 5 {
		t.Errorf("circular over exactly n bytes: %d frames, expected 5", len(frames))
	}
	if frames := collect(Windows(Bytes([]byte{1}), 0, Linear, LeftToRight)); len(frames) != 0 {
		t.Errorf("zero width window produced %d frames", len(frames))
	}
}

func TestWindowsLinear(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6}
	verifyFrames(t, collect(Windows(Bytes(src), 4, Linear, LeftToRight)), [][]byte{
		{1, 2, 3, 4},
		{2, 3, 4, 5},
		{3, 4, 5, 6},
	})
	verifyFrames(t, collect(Windows(Bytes(src), 4, Linear, RightToLeft)), [][]byte{
		{3, 4, 5, 6},
		{2, 3, 4, 5},
		{1, 2, 3, 4},
	})
}

func TestWindowsCircular(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5}
	ltr := collect(Windows(Bytes(src), 3, Circular, LeftToRight))
	verifyFrames(t, ltr, [][]byte{
		{1, 2, 3},
		{2, 3, 4},
		{3, 4, 5},
		{4, 5, 1},
		{5, 1, 2},
		{1, 2, 3},
	})
	if !bytes.Equal(ltr[0], ltr[len(ltr)-1]) {
		t.Error("circular windows must end on the starting frame")
	}
	rtl := collect(Windows(Bytes(src), 3, Circular, RightToLeft))
	slices.Reverse(rtl)
	verifyFrames(t, rtl, ltr)
}

func TestWindowsBreak(t *testing.T) {
	n := 0
	for range Windows(Bytes([]byte("abcdefgh")), 2, Circular, LeftToRight) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("expected to stop after 3 frames, got %d", n)
	}
}

func TestWindowsSingleUse(t *testing.T) {
	for _, style := range []Style{Circular, Linear} {
		for _, dir := range []Direction{LeftToRight, RightToLeft} {
			t.Run(fmt.Sprintf("%s/%s", style, dir), func(t *testing.T) {
				src := []byte{1, 2, 3, 4, 5}
				seq := Windows(Bytes(src), 3, style, dir)
				first := collect(seq)
				verifyFrames(t, first, collect(Windows(Bytes(src), 3, style, dir)))
				if again := collect(seq); len(again) != 0 {
					t.Fatalf("second range yielded %x", again)
				}
			})
		}
	}
}

func TestStream(t *testing.T) {
	verifyFrames(t, collect(Stream(slices.Values([]byte{1, 2, 3, 4, 5}), 3, Linear)), [][]byte{
		{1, 2, 3},
		{2, 3, 4},
		{3, 4, 5},
	})
	verifyFrames(t, collect(Stream(slices.Values([]byte{1, 2, 3, 4}), 3, Circular)),
		collect(Windows(Bytes([]byte{1, 2, 3, 4}), 3, Circular, LeftToRight)))
	verifyFrames(t, collect(Stream(slices.Values([]byte{7}), 3, Circular)), [][]byte{{7, 0, 0}})
	verifyFrames(t, collect(Stream(slices.Values([]byte(nil)), 2, Linear)), [][]byte{{0, 0}})

	// An unbounded source is consumed lazily.
	counter := func(yield func(byte) bool) {
		for i := byte(0); ; i++ {
			if !yield(i) {
				return
			}
		}
	}
	var last []byte
	n := 0
	for f := range Stream(counter, 4, Linear) {
		last = bytes.Clone(f)
		if n++; n == 100 {
			break
		}
	}
	if !bytes.Equal(last, []byte{99, 100, 101, 102}) {
		t.Errorf("unexpected 100th frame %v", last)
	}
}

func TestSpin(t *testing.T) {
	frames := collect(Spin(2, LeftToRight))
	if len(frames) != len(sevenseg.Circle) {
		t.Fatalf("expected %d frames, got %d", len(sevenseg.Circle), len(frames))
	}
	for i, f := range frames {
		if f[0] != sevenseg.Circle[i] || f[1] != sevenseg.Circle[i] {
			t.Errorf("frame %d = %x", i, f)
		}
	}
	back := collect(Spin(1, RightToLeft))
	if back[0][0] != sevenseg.F || back[5][0] != sevenseg.A {
		t.Errorf("counterclockwise spin = %x", back)
	}
}

func TestSource(t *testing.T) {
	s := Chain(Bytes([]byte{1, 2}), Take(Bytes([]byte{3, 4, 5}), 2))
	if s.Len() != 4 {
		t.Fatalf("Len() = %d", s.Len())
	}
	if v, _ := s.NextBack(); v != 4 {
		t.Errorf("NextBack() = %d, expected 4", v)
	}
	if v, _ := s.Next(); v != 1 {
		t.Errorf("Next() = %d, expected 1", v)
	}
	var rest []byte
	for {
		v, ok := s.NextBack()
		if !ok {
			break
		}
		rest = append(rest, v)
	}
	if !bytes.Equal(rest, []byte{3, 2}) {
		t.Errorf("remaining from the back %v", rest)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after draining", s.Len())
	}
}
