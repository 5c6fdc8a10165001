// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tm1637 drives the Titan Micro TM1637 LED controller found on the
// common 4 and 6 digit 7-segment modules.
//
// The chip is driven by bit-banging two GPIO lines, CLK and DIO. The wiring
// looks like I2C but the protocol is not: there is no device address and
// bytes go out LSB first, so any two GPIO pins will do.
//
// # Datasheet
//
// https://www.makerguides.com/wp-content/uploads/2019/08/TM1637-Datasheet.pdf
package tm1637

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/GermanBionicSystems/sevensegment/sevenseg"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Brightness is the display control command: the on bit and a level.
type Brightness byte

// Levels L0 (dimmest) to L7 light the display. Off blanks it without
// touching the display registers.
const (
	L0 Brightness = 0x88 + iota
	L1
	L2
	L3
	L4
	L5
	L6
	L7

	Off Brightness = 0x80
)

// Level returns the 0-7 brightness level.
func (b Brightness) Level() int {
	return int(b & 0x07)
}

// IsOn reports whether b lights the display.
func (b Brightness) IsOn() bool {
	return b&0x08 != 0
}

func (b Brightness) String() string {
	if !b.IsOn() {
		return "Off"
	}
	return fmt.Sprintf("L%d", b.Level())
}

const (
	// maxDigits is the number of grid outputs on the chip.
	maxDigits = 6

	// DefaultBitDelay is the half bit period. Long wires may need more.
	DefaultBitDelay = 10 * time.Microsecond
)

// ErrReleased is returned by every operation once Release has been called.
var ErrReleased = errors.New("tm1637: device released")

// Opts holds the configuration of a display. The zero value is a 4 digit
// module at the dimmest level, without acknowledgment checks.
type Opts struct {
	// Digits on the module, 1 to 6. Default 4.
	Digits int
	// Brightness applied by Init and On. Default L0.
	Brightness Brightness
	// BitDelay is the wait after every line transition. Default
	// DefaultBitDelay.
	BitDelay time.Duration
	// Ack checks that the chip acknowledges every byte. DIO must then be a
	// gpio.PinIO.
	Ack bool
	// AckPolls is how many times DIO is sampled before failing with ErrNoAck.
	// Default DefaultAckPolls.
	AckPolls int
	// Layout of the digits. Default LayoutAuto.
	Layout Layout
	// Delayer paces the protocol and animations. Default Blocking.
	Delayer Delayer
}

// Dev is a handle to a TM1637 display.
//
// Dev is not safe for concurrent use. Have one goroutine own it.
type Dev struct {
	bus        bus
	digits     int
	layout     Layout
	brightness Brightness
	on         bool
	released   bool

	// col is the cursor for the display.TextDisplay methods. last is the
	// digit left of it when it was put there by Write.
	col     int
	last    byte
	hasLast bool

	aligned  [maxDigits]byte
	reversed [maxDigits]byte
	blank    [maxDigits]byte
}

// New returns a Dev for the display wired to clk and dio. opts may be nil.
//
// Nothing is sent to the display; call Init before using it.
func New(clk, dio gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	if clk == nil || dio == nil {
		return nil, errors.New("tm1637: CLK and DIO pins are required")
	}
	digits := opts.Digits
	if digits == 0 {
		digits = 4
	}
	if digits < 1 || digits > maxDigits {
		return nil, fmt.Errorf("tm1637: invalid number of digits %d, must be 1 to %d", digits, maxDigits)
	}
	layout := opts.Layout
	switch layout {
	case LayoutAuto:
		layout = LayoutLinear
		if digits == 6 {
			layout = LayoutSixDigit
		}
	case LayoutLinear:
	case LayoutSixDigit:
		if digits != 6 {
			return nil, fmt.Errorf("tm1637: layout %s needs 6 digits, not %d", layout, digits)
		}
	default:
		return nil, fmt.Errorf("tm1637: unknown layout %d", layout)
	}
	brightness := opts.Brightness
	if brightness == 0 {
		brightness = L0
	}
	if brightness&0xf0 != 0x80 {
		return nil, fmt.Errorf("tm1637: invalid brightness 0x%02x", byte(brightness))
	}
	d := &Dev{
		bus: bus{
			clk:      clk,
			dio:      dio,
			polls:    opts.AckPolls,
			bitDelay: opts.BitDelay,
			delayer:  opts.Delayer,
		},
		digits:     digits,
		layout:     layout,
		brightness: brightness,
	}
	if d.bus.polls <= 0 {
		d.bus.polls = DefaultAckPolls
	}
	if d.bus.bitDelay <= 0 {
		d.bus.bitDelay = DefaultBitDelay
	}
	if d.bus.delayer == nil {
		d.bus.delayer = Blocking{}
	}
	if opts.Ack {
		p, ok := dio.(gpio.PinIO)
		if !ok {
			return nil, errors.New("tm1637: acknowledgment checks need DIO to be a gpio.PinIO")
		}
		d.bus.ack = p
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("TM1637{CLK: %s, DIO: %s, Digits: %d}", d.bus.clk, d.bus.dio, d.digits)
}

// Digits returns the number of digits on the display.
func (d *Dev) Digits() int {
	return d.digits
}

// Init blanks the display and turns it on at the configured brightness. The
// display registers hold garbage at power up.
func (d *Dev) Init() error {
	if err := d.Clear(); err != nil {
		return err
	}
	return d.On()
}

// Clear blanks every digit and moves the cursor home.
func (d *Dev) Clear() error {
	d.col = 0
	d.hasLast = false
	return d.WriteAt(0, d.blank[:d.digits])
}

// On lights the display at the stored brightness.
func (d *Dev) On() error {
	return d.sendBrightness(d.brightness)
}

// Off blanks the display. The stored brightness is kept for the next On.
func (d *Dev) Off() error {
	return d.sendBrightness(Off)
}

// Brightness returns the stored brightness.
func (d *Dev) Brightness() Brightness {
	return d.brightness
}

// IsOn reports whether the last display control command lit the display.
func (d *Dev) IsOn() bool {
	return d.on
}

// SetBrightness stores b and sends it right away. Setting Off is the same as
// calling Off, except that a later On stays dark.
func (d *Dev) SetBrightness(b Brightness) error {
	if b&0xf0 != 0x80 {
		return fmt.Errorf("tm1637: invalid brightness 0x%02x", byte(b))
	}
	if d.released {
		return ErrReleased
	}
	d.brightness = b
	return d.sendBrightness(b)
}

func (d *Dev) sendBrightness(b Brightness) error {
	if d.released {
		return ErrReleased
	}
	if err := d.bus.writeCmd(byte(b)); err != nil {
		return err
	}
	d.on = b.IsOn()
	return nil
}

// WriteAt writes segment patterns starting at digit pos, counted from the
// left. Patterns that don't fit are dropped; a pos past the last digit writes
// nothing.
func (d *Dev) WriteAt(pos int, segs []byte) error {
	if d.released {
		return ErrReleased
	}
	if pos < 0 || pos >= d.digits {
		return nil
	}
	if n := d.digits - pos; len(segs) > n {
		segs = segs[:n]
	}
	return d.WriteAtUnchecked(pos, segs)
}

// WriteAtUnchecked is WriteAt without bounds handling. Bytes addressed past
// the last grid are left for the chip to ignore.
func (d *Dev) WriteAtUnchecked(pos int, segs []byte) error {
	if d.released {
		return ErrReleased
	}
	addr, segs := align(d.layout, d.aligned[:], pos, segs)
	if err := d.bus.writeCmd(cmdData); err != nil {
		return err
	}
	return d.bus.writeData(addr, segs)
}

// WriteAtReversed is WriteAt for a display mounted upside down: pos counts
// from the physical right edge and every pattern is rotated by 180 degrees.
func (d *Dev) WriteAtReversed(pos int, segs []byte) error {
	if d.released {
		return ErrReleased
	}
	if pos < 0 || pos >= d.digits {
		return nil
	}
	n := min(len(segs), d.digits-pos)
	buf := d.reversed[:n]
	for i := range buf {
		buf[i] = sevenseg.FlipMirror(segs[n-1-i])
	}
	return d.WriteAtUnchecked(d.digits-pos-n, buf)
}

// Animate writes every frame at pos, waiting delay after each one. It returns
// the number of frames written.
//
// To stop early, break out of frames or use a Cooperative Delayer and cancel
// its context.
func (d *Dev) Animate(pos int, delay time.Duration, frames iter.Seq[[]byte]) (int, error) {
	return d.animate(pos, delay, frames, d.WriteAtUnchecked)
}

func (d *Dev) animate(pos int, delay time.Duration, frames iter.Seq[[]byte], write func(int, []byte) error) (int, error) {
	steps := 0
	for f := range frames {
		if err := write(pos, f); err != nil {
			return steps, err
		}
		steps++
		if err := d.bus.delayer.Delay(delay); err != nil {
			return steps, err
		}
	}
	return steps, nil
}

// Halt blanks the display and turns it off.
func (d *Dev) Halt() error {
	if d.released {
		return nil
	}
	if err := d.Clear(); err != nil {
		return err
	}
	return d.Off()
}

// Release hands the pins and the Delayer back to the caller, for example to
// rebuild the Dev with another Delayer. The Dev can't be used afterwards.
func (d *Dev) Release() (clk, dio gpio.PinOut, delayer Delayer) {
	d.released = true
	return d.bus.clk, d.bus.dio, d.bus.delayer
}

var _ conn.Resource = &Dev{}
