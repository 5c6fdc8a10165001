// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tm1637test simulates a TM1637 on fake GPIO pins.
//
// The simulated chip decodes the line transitions the driver produces, so
// tests check what the chip would see instead of a log of pin calls.
package tm1637test

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// ErrLine is returned by a Pin once the Chip's FailAfter is reached.
var ErrLine = errors.New("tm1637test: line failure")

// Grids is the number of display registers on the chip.
const Grids = 6

// Wiring returns the grid driving each digit, left to right, on the common
// modules with the given number of digits.
func Wiring(digits int) []int {
	if digits == 6 {
		return []int{2, 1, 0, 5, 4, 3}
	}
	w := make([]int, digits)
	for i := range w {
		w[i] = i
	}
	return w
}

// Chip is a TM1637 connected to CLK and DIO.
//
// Chip is not safe for concurrent use.
type Chip struct {
	CLK *Pin
	DIO *Pin

	// NoAck makes the chip leave DIO high on the ninth clock, as if nothing
	// was connected.
	NoAck bool
	// FailAfter, when positive, makes every pin operation from that one on
	// (counting from 1, see Ops) fail with ErrLine.
	FailAfter int
	// Wiring maps each digit on the glass, left to right, to its grid.
	Wiring []int
	// OnFrame is called with each complete frame.
	OnFrame func(frame []byte)

	// Frames holds the bytes of each complete start to stop transaction.
	Frames [][]byte
	// RAM is the display registers, indexed by grid.
	RAM [Grids]byte
	// On and Level are the last display control command.
	On    bool
	Level int
	// Reads counts DIO reads. Ops counts Out and In calls on both pins.
	Reads int
	Ops   int

	inFrame bool
	frame   []byte
	bit     int
	cur     byte
	acking  bool
	writing bool
	fixed   bool
	addr    int
}

// New returns a Chip for a module with the given number of digits. Both
// lines start idle high.
func New(digits int) *Chip {
	c := &Chip{Wiring: Wiring(digits)}
	c.CLK = &Pin{Pin: gpiotest.Pin{N: "CLK", Num: 1, L: gpio.High}, chip: c, clk: true}
	c.DIO = &Pin{Pin: gpiotest.Pin{N: "DIO", Num: 2, L: gpio.High}, chip: c}
	return c
}

// Panel returns the segments shown on each digit, left to right.
func (c *Chip) Panel() []byte {
	out := make([]byte, len(c.Wiring))
	for i, g := range c.Wiring {
		out[i] = c.RAM[g]
	}
	return out
}

// Reset forgets the recorded frames and counters. RAM and display state are
// kept.
func (c *Chip) Reset() {
	c.Frames = nil
	c.Reads = 0
	c.Ops = 0
}

func (c *Chip) op() error {
	c.Ops++
	if c.FailAfter > 0 && c.Ops >= c.FailAfter {
		return ErrLine
	}
	return nil
}

// clock handles a CLK transition. Bits are sampled on the rising edge; the
// chip acknowledges from the falling edge after the eighth bit until the
// falling edge of the ninth clock.
func (c *Chip) clock(prev, l gpio.Level) {
	if prev == l || !c.inFrame {
		return
	}
	if l == gpio.High {
		switch {
		case c.bit < 8:
			if c.DIO.Pin.Read() == gpio.High {
				c.cur |= 1 << c.bit
			}
			c.bit++
			if c.bit == 8 {
				c.receive(c.cur)
			}
		case c.bit == 8:
			c.bit = 9
		}
		return
	}
	switch c.bit {
	case 8:
		c.acking = true
	case 9:
		c.acking = false
		c.bit = 0
		c.cur = 0
	}
}

// data handles a DIO transition. While CLK is high, a falling edge is a start
// condition and a rising edge is a stop condition.
func (c *Chip) data(prev, l gpio.Level) {
	if prev == l || c.CLK.Pin.Read() == gpio.Low {
		return
	}
	if l == gpio.Low {
		c.inFrame = true
		c.frame = nil
		c.bit = 0
		c.cur = 0
		c.acking = false
		c.writing = false
		return
	}
	if c.inFrame && len(c.frame) != 0 {
		c.Frames = append(c.Frames, c.frame)
		if c.OnFrame != nil {
			c.OnFrame(c.frame)
		}
	}
	c.inFrame = false
	c.frame = nil
	c.acking = false
}

func (c *Chip) receive(b byte) {
	c.frame = append(c.frame, b)
	if len(c.frame) > 1 {
		if c.writing {
			c.store(b)
		}
		return
	}
	switch b & 0xc0 {
	case 0x40:
		c.fixed = b&0x04 != 0
	case 0x80:
		c.On = b&0x08 != 0
		c.Level = int(b & 0x07)
	case 0xc0:
		c.writing = true
		c.addr = int(b & 0x07)
	}
}

// store writes b at the address counter. Addresses 6 and 7 don't exist and
// are dropped. In auto increment mode the counter wraps from the last grid to
// the first.
func (c *Chip) store(b byte) {
	if c.addr < Grids {
		c.RAM[c.addr] = b
	}
	if c.fixed {
		return
	}
	c.addr++
	if c.addr == Grids {
		c.addr = 0
	}
}

// Pin is one of the chip's two lines.
type Pin struct {
	gpiotest.Pin
	chip  *Chip
	clk   bool
	input bool
}

// In implements gpio.PinIn. Releasing DIO lets the chip drive it.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if err := p.chip.op(); err != nil {
		return err
	}
	prev := p.Pin.Read()
	if err := p.Pin.In(pull, edge); err != nil {
		return err
	}
	p.input = true
	p.changed(prev, p.Pin.Read())
	return nil
}

// Read implements gpio.PinIn.
func (p *Pin) Read() gpio.Level {
	if p.clk {
		return p.Pin.Read()
	}
	p.chip.Reads++
	if p.input && p.chip.acking && !p.chip.NoAck {
		return gpio.Low
	}
	return p.Pin.Read()
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if err := p.chip.op(); err != nil {
		return err
	}
	prev := p.Pin.Read()
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	p.input = false
	p.changed(prev, l)
	return nil
}

func (p *Pin) changed(prev, l gpio.Level) {
	if p.clk {
		p.chip.clock(prev, l)
	} else {
		p.chip.data(prev, l)
	}
}

// Delay counts waits without sleeping.
type Delay struct {
	Calls int
	Total time.Duration
	// Err is returned by every call past the first After ones.
	Err   error
	After int
}

// Delay implements tm1637.Delayer.
func (d *Delay) Delay(t time.Duration) error {
	d.Calls++
	if d.Err != nil && d.Calls > d.After {
		return d.Err
	}
	d.Total += t
	return nil
}

var _ gpio.PinIO = &Pin{}
