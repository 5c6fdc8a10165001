// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GermanBionicSystems/sevensegment/tm1637"
	"github.com/GermanBionicSystems/sevensegment/window"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tm1637.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := writeConfig(t, `
display:
  clk: GPIO5
  dio: GPIO6
  digits: 6
  brightness: 7
  bit_delay: 50us
  ack: true
animation:
  style: linear
  direction: rtl
  delay: 100ms
meter:
  endpoint: 127.0.0.1:502
  register: 12
  decimals: 1
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	d := cfg.Display
	if d.CLK != "GPIO5" || d.DIO != "GPIO6" || d.Digits != 6 || d.BitDelay != 50*time.Microsecond || !d.Ack {
		t.Fatalf("display %+v", d)
	}
	// Defaults are kept for the keys not in the file.
	if d.Layout != "auto" || cfg.Meter.Words != 1 || cfg.Meter.Interval != time.Second {
		t.Fatalf("defaults lost: %+v %+v", d, cfg.Meter)
	}

	opts := d.Opts()
	if opts.Digits != 6 || opts.Brightness != tm1637.L7 || opts.Layout != tm1637.LayoutAuto || !opts.Ack {
		t.Fatalf("opts %+v", opts)
	}
	a := cfg.Animation.Animation(tm1637.Scroll)
	if a.Kind != tm1637.Scroll || a.Style != window.Linear || a.Direction != window.RightToLeft || a.Delay != 100*time.Millisecond {
		t.Fatalf("animation %+v", a)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	empty, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if *empty != *cfg {
		t.Fatalf("empty file: %+v", empty)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
	if _, err := Load(writeConfig(t, "display:\n  pins: 3\n")); err == nil {
		t.Fatal("expected error for an unknown key")
	}
	if _, err := Load(writeConfig(t, "display: [")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	data := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"no clk", func(c *Config) { c.Display.CLK = "" }, "clk and dio"},
		{"digits", func(c *Config) { c.Display.Digits = 7 }, "digits"},
		{"brightness", func(c *Config) { c.Display.Brightness = 8 }, "brightness"},
		{"bit delay", func(c *Config) { c.Display.BitDelay = -1 }, "bit_delay"},
		{"layout", func(c *Config) { c.Display.Layout = "spiral" }, "layout"},
		{"style", func(c *Config) { c.Animation.Style = "bounce" }, "style"},
		{"direction", func(c *Config) { c.Animation.Direction = "up" }, "direction"},
		{"delay", func(c *Config) { c.Animation.Delay = -time.Second }, "delay"},
		{"words", func(c *Config) { c.Meter.Words = 3 }, "words"},
		{"decimals", func(c *Config) { c.Meter.Decimals = 4 }, "decimals"},
		{"interval", func(c *Config) { c.Meter.Interval = 0 }, "interval"},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			cfg := Default()
			line.modify(cfg)
			err := Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), line.want) {
				t.Fatalf("got %v, want an error about %s", err, line.want)
			}
		})
	}
}
