// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sevensegment is a container for the TM1637 7-segment LED driver
// and its companion packages.
//
// tm1637 is the driver. sevenseg maps characters to segment patterns,
// window builds scrolling animations, screen7seg and segimage preview
// patterns on a terminal or as an image, and cmd/tm1637 drives a display
// from the command line.
package sevensegment
