// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

const (
	// Data command: write to display registers, auto increment address.
	cmdData byte = 0x40
	// Address command, OR'd with the grid address.
	cmdAddress  byte = 0xc0
	addressMask byte = 0x07

	// DefaultAckPolls is how many times DIO is sampled, one bit delay apart,
	// waiting for the chip to acknowledge a byte.
	DefaultAckPolls = 255
)

// ErrNoAck is returned when acknowledgment checking is enabled and the chip
// didn't pull DIO low after a byte. It usually means the display is missing
// or miswired rather than a transient fault.
var ErrNoAck = errors.New("tm1637: no acknowledgment from display")

// PinError is returned when driving or reading one of the two lines fails.
// The transmission in progress is abandoned without a stop condition.
type PinError struct {
	Pin string
	Op  string
	Err error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("tm1637: %s %s: %v", e.Op, e.Pin, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// bus bit-bangs the chip's two wire protocol. It looks like I2C on a scope
// but bytes are sent LSB first and there is no device address.
type bus struct {
	clk gpio.PinOut
	dio gpio.PinOut
	// ack is dio, when acknowledgments are checked.
	ack      gpio.PinIO
	polls    int
	bitDelay time.Duration
	delayer  Delayer
}

// set drives p to l then waits one bit delay.
func (b *bus) set(p gpio.PinOut, l gpio.Level) error {
	if err := p.Out(l); err != nil {
		return &PinError{Pin: b.name(p), Op: "out", Err: err}
	}
	return b.delayer.Delay(b.bitDelay)
}

func (b *bus) name(p gpio.PinOut) string {
	if p == b.clk {
		return "CLK"
	}
	return "DIO"
}

// start pulls DIO low while CLK is high.
func (b *bus) start() error {
	if err := b.set(b.dio, gpio.High); err != nil {
		return err
	}
	if err := b.set(b.clk, gpio.High); err != nil {
		return err
	}
	if err := b.set(b.dio, gpio.Low); err != nil {
		return err
	}
	return b.set(b.clk, gpio.Low)
}

// stop releases DIO while CLK is high, leaving both lines high.
func (b *bus) stop() error {
	if err := b.set(b.clk, gpio.Low); err != nil {
		return err
	}
	if err := b.set(b.dio, gpio.Low); err != nil {
		return err
	}
	if err := b.set(b.clk, gpio.High); err != nil {
		return err
	}
	return b.set(b.dio, gpio.High)
}

// writeByte clocks v out LSB first, then gives the chip a ninth clock to
// acknowledge on.
func (b *bus) writeByte(v byte) error {
	for range 8 {
		if err := b.set(b.clk, gpio.Low); err != nil {
			return err
		}
		if err := b.set(b.dio, v&1 != 0); err != nil {
			return err
		}
		if err := b.set(b.clk, gpio.High); err != nil {
			return err
		}
		v >>= 1
	}

	if err := b.set(b.clk, gpio.Low); err != nil {
		return err
	}
	if b.ack != nil {
		if err := b.ack.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return &PinError{Pin: "DIO", Op: "in", Err: err}
		}
		if err := b.delayer.Delay(b.bitDelay); err != nil {
			return err
		}
	} else if err := b.set(b.dio, gpio.High); err != nil {
		return err
	}
	if err := b.set(b.clk, gpio.High); err != nil {
		return err
	}
	if b.ack != nil {
		if err := b.waitAck(); err != nil {
			return err
		}
	}
	return b.set(b.clk, gpio.Low)
}

// waitAck samples DIO exactly polls times before giving up.
func (b *bus) waitAck() error {
	for range b.polls {
		if b.ack.Read() == gpio.Low {
			return nil
		}
		if err := b.delayer.Delay(b.bitDelay); err != nil {
			return err
		}
	}
	return ErrNoAck
}

// writeCmd sends a single command byte in its own frame.
func (b *bus) writeCmd(cmd byte) error {
	if err := b.start(); err != nil {
		return err
	}
	if err := b.writeByte(cmd); err != nil {
		return err
	}
	return b.stop()
}

// writeData sends segs to consecutive grids starting at address pos.
func (b *bus) writeData(pos int, segs []byte) error {
	if err := b.start(); err != nil {
		return err
	}
	if err := b.writeByte(cmdAddress | byte(pos)&addressMask); err != nil {
		return err
	}
	for _, s := range segs {
		if err := b.writeByte(s); err != nil {
			return err
		}
	}
	return b.stop()
}
