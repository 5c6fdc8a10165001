// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import (
	"fmt"
	"iter"
	"time"

	"github.com/GermanBionicSystems/sevensegment/window"
)

// AnimationKind selects how RenderOpts.Content is shown.
type AnimationKind int

const (
	// Static writes the content once.
	Static AnimationKind = iota
	// Scroll slides the content through the digits from Position onwards.
	Scroll
	// Spin draws a rotating circle on the digits from Position onwards; the
	// content is ignored.
	Spin
)

// DefaultFrameDelay is the time each animation frame stays up when
// Animation.Delay is zero.
const DefaultFrameDelay = 300 * time.Millisecond

// Animation configures Scroll and Spin.
type Animation struct {
	Kind      AnimationKind
	Style     window.Style
	Direction window.Direction
	// Delay is how long each frame stays up. Default DefaultFrameDelay.
	Delay time.Duration
}

// RenderOpts describes what Render shows.
type RenderOpts struct {
	// Position is the first digit used, counted from the left.
	Position int
	// Content holds segment patterns, see package sevenseg.
	Content []byte
	// Flip renders for a display mounted upside down.
	Flip      bool
	Animation Animation
}

// Render shows r on the display and returns the number of frames written.
// It returns once the animation, if any, is over.
func (d *Dev) Render(r *RenderOpts) (int, error) {
	if d.released {
		return 0, ErrReleased
	}
	width := d.digits - r.Position
	if r.Position < 0 || width <= 0 {
		return 0, nil
	}
	write := d.WriteAtUnchecked
	if r.Flip {
		write = d.WriteAtReversed
	}
	delay := r.Animation.Delay
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	var frames iter.Seq[[]byte]
	switch r.Animation.Kind {
	case Static:
		if r.Flip {
			return 1, d.WriteAtReversed(r.Position, r.Content)
		}
		return 1, d.WriteAt(r.Position, r.Content)
	case Scroll:
		frames = window.Windows(window.Bytes(r.Content), width, r.Animation.Style, r.Animation.Direction)
	case Spin:
		frames = window.Spin(width, r.Animation.Direction)
	default:
		return 0, fmt.Errorf("tm1637: unknown animation %d", r.Animation.Kind)
	}
	return d.animate(r.Position, delay, frames, write)
}
