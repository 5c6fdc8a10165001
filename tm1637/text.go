// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import (
	"fmt"

	"github.com/GermanBionicSystems/sevensegment/sevenseg"
	"periph.io/x/conn/v3/display"
)

// Not supported by this device. Returns display.ErrNotImplemented
func (d *Dev) AutoScroll(enabled bool) error {
	return fmt.Errorf("tm1637: %w", display.ErrNotImplemented)
}

// Return the number of columns, which is the number of digits.
func (d *Dev) Cols() int {
	return d.digits
}

// Return the number of rows. Always 1.
func (d *Dev) Rows() int {
	return 1
}

// Return the min column position.
func (d *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (d *Dev) MinRow() int {
	return 1
}

// There is no cursor to show, so only CursorOff is accepted. Other modes
// return display.ErrNotImplemented
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
		case display.CursorUnderline, display.CursorBlock, display.CursorBlink:
			return fmt.Errorf("tm1637: %w", display.ErrNotImplemented)
		default:
			return fmt.Errorf("tm1637: unexpected cursor: %d", mode)
		}
	}
	return nil
}

// Move the cursor to the first digit.
func (d *Dev) Home() error {
	d.col = 0
	d.hasLast = false
	return nil
}

// Move the cursor forward or backward by one digit.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Forward:
		if d.col < d.digits {
			d.col++
		}
	case display.Backward:
		if d.col > 0 {
			d.col--
		}
	default:
		return fmt.Errorf("tm1637: %w", display.ErrNotImplemented)
	}
	d.hasLast = false
	return nil
}

// Move the cursor to arbitrary position.
func (d *Dev) MoveTo(row, col int) error {
	if row != d.MinRow() || col < d.MinCol() || col > d.digits {
		return fmt.Errorf("tm1637: MoveTo(%d,%d) value out of range", row, col)
	}
	d.col = col - d.MinCol()
	d.hasLast = false
	return nil
}

// Write renders ASCII text at the cursor and moves the cursor past it. A '.'
// lights the decimal point of the previous character, including one written
// by the previous Write call. Text past the last digit is dropped.
func (d *Dev) Write(p []byte) (int, error) {
	s := string(p)
	if len(s) != 0 && s[0] == '.' && d.hasLast && d.last&sevenseg.DP == 0 {
		if err := d.WriteAt(d.col-1, []byte{d.last | sevenseg.DP}); err != nil {
			return 0, err
		}
		d.last |= sevenseg.DP
		s = s[1:]
	}
	var buf [2 * maxDigits]byte
	segs := sevenseg.AppendText(buf[:0], s)
	if len(segs) == 0 {
		return len(p), nil
	}
	if err := d.WriteAt(d.col, segs); err != nil {
		return 0, err
	}
	d.hasLast = d.col+len(segs) <= d.digits
	if d.hasLast {
		d.last = segs[len(segs)-1]
	}
	d.col = min(d.col+len(segs), d.digits)
	return len(p), nil
}

// WriteString is Write for a string.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Turn the display on or off.
func (d *Dev) Display(on bool) error {
	if on {
		return d.On()
	}
	return d.Off()
}

// Backlight maps intensity (0-255) to a brightness level; 0 turns the
// display off.
// The stored brightness is only changed for non zero intensities.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if intensity <= 0 {
		return d.Off()
	}
	return d.SetBrightness(L0 + Brightness(min(int(intensity)/32, 7)))
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
