// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637test

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
)

// send bit-bangs one transaction and returns the level read on each ninth
// clock.
func send(t *testing.T, c *Chip, data ...byte) []gpio.Level {
	t.Helper()
	out := func(p *Pin, l gpio.Level) {
		if err := p.Out(l); err != nil {
			t.Fatal(err)
		}
	}
	out(c.DIO, gpio.High)
	out(c.CLK, gpio.High)
	out(c.DIO, gpio.Low)
	out(c.CLK, gpio.Low)
	var acks []gpio.Level
	for _, b := range data {
		for i := range 8 {
			out(c.CLK, gpio.Low)
			out(c.DIO, b&(1<<i) != 0)
			out(c.CLK, gpio.High)
		}
		out(c.CLK, gpio.Low)
		if err := c.DIO.In(gpio.PullUp, gpio.NoEdge); err != nil {
			t.Fatal(err)
		}
		out(c.CLK, gpio.High)
		acks = append(acks, c.DIO.Read())
		out(c.CLK, gpio.Low)
	}
	out(c.CLK, gpio.Low)
	out(c.DIO, gpio.Low)
	out(c.CLK, gpio.High)
	out(c.DIO, gpio.High)
	return acks
}

func TestChip_Frames(t *testing.T) {
	c := New(4)
	var seen int
	c.OnFrame = func([]byte) { seen++ }
	acks := send(t, c, 0x40)
	send(t, c, 0xc1, 0x06, 0x5b)
	send(t, c, 0x8b)

	want := [][]byte{{0x40}, {0xc1, 0x06, 0x5b}, {0x8b}}
	if len(c.Frames) != len(want) {
		t.Fatalf("got %d frames, want %d", len(c.Frames), len(want))
	}
	for i := range want {
		if !bytes.Equal(c.Frames[i], want[i]) {
			t.Errorf("frame %d: got %x, want %x", i, c.Frames[i], want[i])
		}
	}
	if seen != 3 {
		t.Errorf("OnFrame called %d times", seen)
	}
	if len(acks) != 1 || acks[0] != gpio.Low {
		t.Errorf("expected an acknowledgment, got %v", acks)
	}
	if got := c.Panel(); !bytes.Equal(got, []byte{0, 0x06, 0x5b, 0}) {
		t.Errorf("Panel() = %x", got)
	}
	if !c.On || c.Level != 3 {
		t.Errorf("On=%t Level=%d", c.On, c.Level)
	}
	send(t, c, 0x80)
	if c.On || c.Level != 0 {
		t.Errorf("On=%t Level=%d", c.On, c.Level)
	}
}

func TestChip_AddressWraps(t *testing.T) {
	c := New(6)
	send(t, c, 0x40)
	send(t, c, 0xc3, 5, 4, 3, 2, 1, 0)
	if want := [Grids]byte{2, 1, 0, 5, 4, 3}; c.RAM != want {
		t.Fatalf("RAM = %v, want %v", c.RAM, want)
	}
	if got := c.Panel(); !bytes.Equal(got, []byte{0, 1, 2, 3, 4, 5}) {
		t.Fatalf("Panel() = %v", got)
	}
}

func TestChip_FixedAddress(t *testing.T) {
	c := New(4)
	send(t, c, 0x44)
	send(t, c, 0xc2, 1, 2, 3)
	if want := [Grids]byte{0, 0, 3}; c.RAM != want {
		t.Fatalf("RAM = %v, want %v", c.RAM, want)
	}
}

func TestChip_MissingGrid(t *testing.T) {
	c := New(4)
	send(t, c, 0x40)
	send(t, c, 0xc6, 1, 2)
	if c.RAM != [Grids]byte{} {
		t.Fatalf("RAM = %v", c.RAM)
	}
}

func TestChip_NoAck(t *testing.T) {
	c := New(4)
	c.NoAck = true
	acks := send(t, c, 0x40, 0x01)
	for i, l := range acks {
		if l != gpio.High {
			t.Errorf("byte %d acknowledged", i)
		}
	}
	if c.Reads != 2 {
		t.Errorf("Reads = %d", c.Reads)
	}
}

func TestChip_FailAfter(t *testing.T) {
	c := New(4)
	c.FailAfter = 3
	if err := c.DIO.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := c.CLK.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := c.DIO.Out(gpio.Low); !errors.Is(err, ErrLine) {
		t.Fatalf("got %v", err)
	}
	if err := c.DIO.In(gpio.PullUp, gpio.NoEdge); !errors.Is(err, ErrLine) {
		t.Fatalf("got %v", err)
	}
	c.Reset()
	if c.Ops != 0 || c.Frames != nil {
		t.Fatal("Reset() didn't clear counters")
	}
}

func TestWiring(t *testing.T) {
	if got := Wiring(4); len(got) != 4 || got[3] != 3 {
		t.Fatalf("Wiring(4) = %v", got)
	}
	if got := Wiring(6); got[0] != 2 || got[3] != 5 {
		t.Fatalf("Wiring(6) = %v", got)
	}
}

func TestDelay(t *testing.T) {
	errStop := errors.New("stop")
	d := Delay{Err: errStop, After: 2}
	for i := range 2 {
		if err := d.Delay(10); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if err := d.Delay(10); err != errStop {
		t.Fatalf("got %v", err)
	}
	if d.Calls != 3 || d.Total != 20 {
		t.Fatalf("Calls=%d Total=%s", d.Calls, d.Total)
	}
}
