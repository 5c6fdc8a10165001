// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tm1637 shows text, numbers, a clock or animations on a TM1637 display.
//
// Usage:
//
//	tm1637 [options] <command> [arguments]
//
// Commands:
//
//	text <message>      Display text, scrolled if it doesn't fit
//	int <n>             Display a decimal number
//	hex <n>             Display a hexadecimal number
//	clock               Display the time until interrupted
//	scroll <message>    Scroll text through the display
//	spin                Draw a rotating circle
//	meter               Display a Modbus TCP register until interrupted
//	brightness <0-7>    Set the brightness
//	off                 Blank the display and turn it off
//	selftest            Exercise the display as a text display
//
// With -sim, the display is simulated on the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/sevensegment/screen7seg"
	"github.com/GermanBionicSystems/sevensegment/segimage"
	"github.com/GermanBionicSystems/sevensegment/sevenseg"
	"github.com/GermanBionicSystems/sevensegment/tm1637"
	"github.com/GermanBionicSystems/sevensegment/tm1637/tm1637test"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/display/displaytest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/host/v3"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	clkName    = flag.String("clk", "", "CLK pin name")
	dioName    = flag.String("dio", "", "DIO pin name")
	digits     = flag.Int("digits", 4, "Number of digits")
	brightness = flag.Int("brightness", 2, "Brightness, 0 to 7")
	flip       = flag.Bool("flip", false, "Display mounted upside down")
	sim        = flag.Bool("sim", false, "Simulate the display on the terminal")
	pngPath    = flag.String("png", "", "Also render the content to this PNG file")
	repeat     = flag.Int("repeat", 1, "Times to play animations, 0 for ever")
	verbose    = flag.Bool("v", false, "Log every pin operation")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [arguments]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  text <message>      Display text, scrolled if it doesn't fit")
		fmt.Fprintln(os.Stderr, "  int <n>             Display a decimal number")
		fmt.Fprintln(os.Stderr, "  hex <n>             Display a hexadecimal number")
		fmt.Fprintln(os.Stderr, "  clock               Display the time until interrupted")
		fmt.Fprintln(os.Stderr, "  scroll <message>    Scroll text through the display")
		fmt.Fprintln(os.Stderr, "  spin                Draw a rotating circle")
		fmt.Fprintln(os.Stderr, "  meter               Display a Modbus TCP register until interrupted")
		fmt.Fprintln(os.Stderr, "  brightness <0-7>    Set the brightness")
		fmt.Fprintln(os.Stderr, "  off                 Blank the display and turn it off")
		fmt.Fprintln(os.Stderr, "  selftest            Exercise the display as a text display")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	applyFlags(cfg)
	if err := Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = mainImpl(ctx, cfg, flag.Args())
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// applyFlags overrides the configuration with the flags set on the command
// line.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "clk":
			cfg.Display.CLK = *clkName
		case "dio":
			cfg.Display.DIO = *dioName
		case "digits":
			cfg.Display.Digits = *digits
		case "brightness":
			cfg.Display.Brightness = *brightness
		case "flip":
			cfg.Display.Flip = *flip
		}
	})
}

func mainImpl(ctx context.Context, cfg *Config, args []string) error {
	opts := cfg.Display.Opts()
	clk, dio, err := openPins(cfg, opts)
	if err != nil {
		return err
	}
	opts.Delayer = tm1637.NewCooperative(ctx)
	dev, err := tm1637.New(clk, dio, opts)
	if err != nil {
		return err
	}
	if err := dev.Init(); err != nil {
		return err
	}
	err = run(ctx, dev, cfg, args)
	if errors.Is(err, context.Canceled) {
		// The context is done so the device can't send anything anymore.
		// Rebuild it with a blocking Delayer to turn the display off.
		clk, dio, _ := dev.Release()
		opts.Delayer = tm1637.Blocking{}
		if d, err := tm1637.New(clk, dio, opts); err == nil {
			_ = d.Halt()
		}
	}
	return err
}

// openPins returns the CLK and DIO lines, either real ones or a simulated
// chip drawn on the terminal.
func openPins(cfg *Config, opts *tm1637.Opts) (gpio.PinIO, gpio.PinIO, error) {
	var clk, dio gpio.PinIO
	if *sim {
		chip := tm1637test.New(cfg.Display.Digits)
		if opts.Layout == tm1637.LayoutLinear {
			for i := range chip.Wiring {
				chip.Wiring[i] = i
			}
		}
		screen := screen7seg.New(&screen7seg.Opts{Digits: cfg.Display.Digits})
		chip.OnFrame = func(frame []byte) {
			// Data commands don't change what is shown.
			if frame[0]&0xc0 != 0x40 {
				_ = screen.Show(chip.Panel(), chip.On, chip.Level)
			}
		}
		opts.BitDelay = time.Nanosecond
		clk, dio = chip.CLK, chip.DIO
	} else {
		if _, err := host.Init(); err != nil {
			return nil, nil, err
		}
		if clk = gpioreg.ByName(cfg.Display.CLK); clk == nil {
			return nil, nil, fmt.Errorf("unknown CLK pin %q", cfg.Display.CLK)
		}
		if dio = gpioreg.ByName(cfg.Display.DIO); dio == nil {
			return nil, nil, fmt.Errorf("unknown DIO pin %q", cfg.Display.DIO)
		}
	}
	if *verbose {
		clk = &gpiotest.LogPinIO{PinIO: clk}
		dio = &gpiotest.LogPinIO{PinIO: dio}
	}
	return clk, dio, nil
}

func run(ctx context.Context, dev *tm1637.Dev, cfg *Config, args []string) error {
	flipped := cfg.Display.Flip
	arg := strings.Join(args[1:], " ")
	switch args[0] {
	case "text":
		segs := sevenseg.Text(arg)
		if len(segs) <= dev.Digits() {
			return show(dev, segs, flipped, args)
		}
		a := cfg.Animation.Animation(tm1637.Scroll)
		return play(dev, &tm1637.RenderOpts{Content: segs, Flip: flipped, Animation: a}, args)
	case "int":
		v, err := strconv.Atoi(arg)
		if err != nil {
			return err
		}
		return show(dev, sevenseg.Int(v, dev.Digits()), flipped, args)
	case "hex":
		v, err := strconv.ParseUint(strings.TrimPrefix(arg, "0x"), 16, 64)
		if err != nil {
			return err
		}
		return show(dev, sevenseg.Hex(v, dev.Digits()), flipped, args)
	case "clock":
		return runClock(dev, flipped, tm1637.NewCooperative(ctx))
	case "scroll":
		a := cfg.Animation.Animation(tm1637.Scroll)
		return play(dev, &tm1637.RenderOpts{Content: sevenseg.Text(arg), Flip: flipped, Animation: a}, args)
	case "spin":
		a := cfg.Animation.Animation(tm1637.Spin)
		return play(dev, &tm1637.RenderOpts{Flip: flipped, Animation: a}, args)
	case "meter":
		r, closeMeter, err := dialMeter(&cfg.Meter)
		if err != nil {
			return err
		}
		defer closeMeter()
		return runMeter(dev, r, &cfg.Meter, flipped, tm1637.NewCooperative(ctx))
	case "brightness":
		l, err := strconv.Atoi(arg)
		if err != nil || l < 0 || l > 7 {
			return fmt.Errorf("brightness must be 0 to 7, got %q", arg)
		}
		return dev.SetBrightness(tm1637.L0 + tm1637.Brightness(l))
	case "off":
		return dev.Halt()
	case "selftest":
		for _, err := range displaytest.TestTextDisplay(dev, true) {
			if !errors.Is(err, display.ErrNotImplemented) {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func show(dev *tm1637.Dev, segs []byte, flipped bool, args []string) error {
	if _, err := dev.Render(&tm1637.RenderOpts{Content: segs, Flip: flipped}); err != nil {
		return err
	}
	return savePNG(segs, args)
}

// play renders r -repeat times.
func play(dev *tm1637.Dev, r *tm1637.RenderOpts, args []string) error {
	if err := savePNG(r.Content, args); err != nil {
		return err
	}
	for i := 0; *repeat <= 0 || i < *repeat; i++ {
		if _, err := dev.Render(r); err != nil {
			return err
		}
	}
	return nil
}

func runClock(dev *tm1637.Dev, flipped bool, wait tm1637.Delayer) error {
	for colon := true; ; colon = !colon {
		now := time.Now()
		segs := sevenseg.Clock(now.Hour(), now.Minute(), colon)
		if _, err := dev.Render(&tm1637.RenderOpts{Content: segs, Flip: flipped}); err != nil {
			return err
		}
		if err := wait.Delay(500 * time.Millisecond); err != nil {
			return err
		}
	}
}

func savePNG(segs []byte, args []string) error {
	if *pngPath == "" || len(segs) == 0 {
		return nil
	}
	return segimage.SavePNG(*pngPath, segs, &segimage.Opts{Caption: strings.Join(args, " ")})
}
