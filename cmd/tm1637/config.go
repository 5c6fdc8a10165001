// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GermanBionicSystems/sevensegment/tm1637"
	"github.com/GermanBionicSystems/sevensegment/window"
	"gopkg.in/yaml.v3"
)

// Config is the content of the configuration file. Flags override it.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Animation AnimationConfig `yaml:"animation"`
	Meter     MeterConfig     `yaml:"meter"`
}

type DisplayConfig struct {
	CLK        string        `yaml:"clk"`
	DIO        string        `yaml:"dio"`
	Digits     int           `yaml:"digits"`
	Brightness int           `yaml:"brightness"`
	BitDelay   time.Duration `yaml:"bit_delay"`
	Ack        bool          `yaml:"ack"`
	Layout     string        `yaml:"layout"`
	Flip       bool          `yaml:"flip"`
}

type AnimationConfig struct {
	Style     string        `yaml:"style"`
	Direction string        `yaml:"direction"`
	Delay     time.Duration `yaml:"delay"`
}

// MeterConfig describes the Modbus register shown by the meter command.
type MeterConfig struct {
	Endpoint string `yaml:"endpoint"`
	UnitID   uint8  `yaml:"unit_id"`
	Register uint16 `yaml:"register"`
	// Words is 1 for a 16 bit value, 2 for a 32 bit big endian one.
	Words    int           `yaml:"words"`
	Input    bool          `yaml:"input"`
	Signed   bool          `yaml:"signed"`
	Decimals int           `yaml:"decimals"`
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			CLK:        "GPIO23",
			DIO:        "GPIO24",
			Digits:     4,
			Brightness: 2,
			BitDelay:   tm1637.DefaultBitDelay,
			Layout:     "auto",
		},
		Animation: AnimationConfig{
			Style:     "circular",
			Direction: "ltr",
			Delay:     tm1637.DefaultFrameDelay,
		},
		Meter: MeterConfig{
			UnitID:   1,
			Words:    1,
			Interval: time.Second,
			Timeout:  2 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration without changing it.
func Validate(cfg *Config) error {
	d := &cfg.Display
	if d.CLK == "" || d.DIO == "" {
		return errors.New("display: clk and dio are required")
	}
	if d.Digits < 1 || d.Digits > 6 {
		return fmt.Errorf("display: digits must be 1 to 6, got %d", d.Digits)
	}
	if d.Brightness < 0 || d.Brightness > 7 {
		return fmt.Errorf("display: brightness must be 0 to 7, got %d", d.Brightness)
	}
	if d.BitDelay < 0 {
		return fmt.Errorf("display: negative bit_delay %s", d.BitDelay)
	}
	if _, err := parseLayout(d.Layout); err != nil {
		return err
	}
	if _, err := parseStyle(cfg.Animation.Style); err != nil {
		return err
	}
	if _, err := parseDirection(cfg.Animation.Direction); err != nil {
		return err
	}
	if cfg.Animation.Delay < 0 {
		return fmt.Errorf("animation: negative delay %s", cfg.Animation.Delay)
	}
	m := &cfg.Meter
	if m.Words != 1 && m.Words != 2 {
		return fmt.Errorf("meter: words must be 1 or 2, got %d", m.Words)
	}
	if m.Decimals < 0 || m.Decimals >= d.Digits {
		return fmt.Errorf("meter: decimals must be 0 to %d, got %d", d.Digits-1, m.Decimals)
	}
	if m.Interval <= 0 {
		return fmt.Errorf("meter: interval must be positive, got %s", m.Interval)
	}
	return nil
}

// Opts returns the driver options. cfg must be valid.
func (d *DisplayConfig) Opts() *tm1637.Opts {
	l, _ := parseLayout(d.Layout)
	return &tm1637.Opts{
		Digits:     d.Digits,
		Brightness: tm1637.L0 + tm1637.Brightness(d.Brightness),
		BitDelay:   d.BitDelay,
		Ack:        d.Ack,
		Layout:     l,
	}
}

// Animation returns the animation settings for kind. cfg must be valid.
func (a *AnimationConfig) Animation(kind tm1637.AnimationKind) tm1637.Animation {
	s, _ := parseStyle(a.Style)
	dir, _ := parseDirection(a.Direction)
	return tm1637.Animation{Kind: kind, Style: s, Direction: dir, Delay: a.Delay}
}

func parseLayout(s string) (tm1637.Layout, error) {
	switch s {
	case "", "auto":
		return tm1637.LayoutAuto, nil
	case "linear":
		return tm1637.LayoutLinear, nil
	case "six", "sixdigit":
		return tm1637.LayoutSixDigit, nil
	}
	return 0, fmt.Errorf("display: unknown layout %q", s)
}

func parseStyle(s string) (window.Style, error) {
	switch s {
	case "", "circular":
		return window.Circular, nil
	case "linear":
		return window.Linear, nil
	}
	return 0, fmt.Errorf("animation: unknown style %q", s)
}

func parseDirection(s string) (window.Direction, error) {
	switch s {
	case "", "ltr":
		return window.LeftToRight, nil
	case "rtl":
		return window.RightToLeft, nil
	}
	return 0, fmt.Errorf("animation: unknown direction %q", s)
}
