// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"

	"github.com/GermanBionicSystems/sevensegment/sevenseg"
	"github.com/GermanBionicSystems/sevensegment/tm1637"
	"github.com/goburrow/modbus"
)

// registerReader is the part of modbus.Client used by the meter.
type registerReader interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
}

// dialMeter connects to the Modbus TCP endpoint of m.
func dialMeter(m *MeterConfig) (registerReader, func() error, error) {
	if m.Endpoint == "" {
		return nil, nil, errors.New("meter: endpoint required")
	}
	h := modbus.NewTCPClientHandler(m.Endpoint)
	h.Timeout = m.Timeout
	h.SlaveId = m.UnitID
	if err := h.Connect(); err != nil {
		return nil, nil, err
	}
	return modbus.NewClient(h), h.Close, nil
}

// readMeter reads the register described by m and formats it on digits.
func readMeter(r registerReader, m *MeterConfig, digits int) ([]byte, error) {
	qty := uint16(m.Words)
	var b []byte
	var err error
	if m.Input {
		b, err = r.ReadInputRegisters(m.Register, qty)
	} else {
		b, err = r.ReadHoldingRegisters(m.Register, qty)
	}
	if err != nil {
		return nil, err
	}
	if len(b) != 2*int(qty) {
		return nil, fmt.Errorf("meter: got %d bytes for %d registers", len(b), qty)
	}
	var v int64
	if qty == 1 {
		u := binary.BigEndian.Uint16(b)
		v = int64(u)
		if m.Signed {
			v = int64(int16(u))
		}
	} else {
		u := binary.BigEndian.Uint32(b)
		v = int64(u)
		if m.Signed {
			v = int64(int32(u))
		}
	}
	return sevenseg.Fixed(int(v), m.Decimals, digits), nil
}

// runMeter shows the register until wait fails. Read errors are logged and
// shown as "Err" on the display.
func runMeter(dev *tm1637.Dev, r registerReader, m *MeterConfig, flipped bool, wait tm1637.Delayer) error {
	for {
		segs, err := readMeter(r, m, dev.Digits())
		if err != nil {
			log.Printf("meter: %v", err)
			segs = sevenseg.Text("Err")
			segs = append(segs, make([]byte, max(dev.Digits()-len(segs), 0))...)
		}
		if _, err := dev.Render(&tm1637.RenderOpts{Content: segs, Flip: flipped}); err != nil {
			return err
		}
		if err := wait.Delay(m.Interval); err != nil {
			return err
		}
	}
}
