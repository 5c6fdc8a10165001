// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package window turns a sequence of segment bytes into the successive frames
// of a scrolling animation on an n digit display.
//
// Frames are produced lazily. The slice handed to the loop body is reused
// for the next frame; copy it to keep it.
package window

import (
	"iter"

	"github.com/GermanBionicSystems/sevensegment/sevenseg"
)

// Direction is the order in which a source is traversed.
type Direction int

const (
	// LeftToRight reveals the source from its first byte onwards; text moves
	// to the left.
	LeftToRight Direction = iota
	// RightToLeft reveals the source from its last byte backwards; text moves
	// to the right.
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "RightToLeft"
	}
	return "LeftToRight"
}

// Style selects what happens once the end of the source is reached.
type Style int

const (
	// Circular windows wrap around: the first bytes follow the last ones
	// until the starting frame shows again. A source of length l yields l+1
	// frames, the last one equal to the first.
	Circular Style = iota
	// Linear windows slide once over the source and stop at the last frame
	// that fits. A source of length l yields l-n+1 frames.
	Linear
)

func (s Style) String() string {
	if s == Linear {
		return "Linear"
	}
	return "Circular"
}

// Windows returns the frames of n bytes produced by sliding over src.
//
// A source shorter than n yields a single frame holding the source followed
// by zeros, whatever the style or direction. An empty source yields one blank
// frame.
//
// The sequence is single-use since it consumes src: ranging over it again
// yields nothing. Call Windows with a new Source to replay the animation.
func Windows(src Source, n int, style Style, dir Direction) iter.Seq[[]byte] {
	used := false
	return func(yield func([]byte) bool) {
		if used || n <= 0 {
			return
		}
		used = true
		cur := src
		frame := make([]byte, n)
		if cur.Len() < n {
			pad(frame, cur.Next)
			yield(frame)
			return
		}
		if style == Circular {
			cur = circular(cur, n)
		}
		if dir == RightToLeft {
			slideBack(frame, cur.NextBack, yield)
		} else {
			slide(frame, cur.Next, yield)
		}
	}
}

// Stream is Windows for a forward only source, which may be unbounded. The
// direction is always LeftToRight.
//
// A Circular stream keeps the first n bytes of seq so it can wrap around
// once seq is exhausted; it never ends when seq doesn't.
func Stream(seq iter.Seq[byte], n int, style Style) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if n <= 0 {
			return
		}
		next, stop := iter.Pull(seq)
		defer stop()
		frame := make([]byte, n)
		if pad(frame, next) < n {
			yield(frame)
			return
		}
		if style == Circular {
			head := make([]byte, n)
			copy(head, frame)
			rest := Bytes(head)
			inner := next
			next = func() (byte, bool) {
				if v, ok := inner(); ok {
					return v, true
				}
				return rest.Next()
			}
		}
		if !yield(frame) {
			return
		}
		for {
			c, ok := next()
			if !ok {
				return
			}
			copy(frame, frame[1:])
			frame[n-1] = c
			if !yield(frame) {
				return
			}
		}
	}
}

// Spin returns the six frames of a rotating circle drawn on n digits: every
// digit lights one outer segment, moving clockwise for LeftToRight and
// counterclockwise for RightToLeft.
func Spin(n int, dir Direction) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if n <= 0 {
			return
		}
		frame := make([]byte, n)
		last := len(sevenseg.Circle) - 1
		for i := range sevenseg.Circle {
			seg := sevenseg.Circle[i]
			if dir == RightToLeft {
				seg = sevenseg.Circle[last-i]
			}
			for j := range frame {
				frame[j] = seg
			}
			if !yield(frame) {
				return
			}
		}
	}
}

// circular extends src with its own first n bytes. Only the first n bytes
// are buffered, the rest of src is pulled lazily from whichever end is
// consumed.
func circular(src Source, n int) Source {
	head := make([]byte, n)
	for i := range head {
		head[i], _ = src.Next()
	}
	return Chain(Chain(Bytes(head), src), Bytes(head))
}

// pad fills frame from next, leaving zeros after the last byte. It returns
// the number of bytes pulled.
func pad(frame []byte, next func() (byte, bool)) int {
	clear(frame)
	for i := range frame {
		c, ok := next()
		if !ok {
			return i
		}
		frame[i] = c
	}
	return len(frame)
}

func slide(frame []byte, next func() (byte, bool), yield func([]byte) bool) {
	n := len(frame)
	if pad(frame, next) < n {
		return
	}
	for {
		if !yield(frame) {
			return
		}
		c, ok := next()
		if !ok {
			return
		}
		copy(frame, frame[1:])
		frame[n-1] = c
	}
}

func slideBack(frame []byte, next func() (byte, bool), yield func([]byte) bool) {
	n := len(frame)
	for i := n - 1; i >= 0; i-- {
		c, ok := next()
		if !ok {
			return
		}
		frame[i] = c
	}
	for {
		if !yield(frame) {
			return
		}
		c, ok := next()
		if !ok {
			return
		}
		copy(frame[1:], frame[:n-1])
		frame[0] = c
	}
}
