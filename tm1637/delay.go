// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import (
	"context"
	"runtime"
	"time"
)

// Delayer paces the protocol and animations. It is called after every line
// transition and after every animation frame.
//
// A Delayer that returns an error aborts the transmission in progress, which
// leaves the bus framing undefined until the next start condition.
type Delayer interface {
	Delay(d time.Duration) error
}

// Blocking sleeps on the calling goroutine and never fails.
type Blocking struct{}

// Delay implements Delayer.
func (Blocking) Delay(d time.Duration) error {
	time.Sleep(d)
	return nil
}

// Cooperative suspends the caller on a timer so a cancelled context stops the
// device at the next transition or frame.
type Cooperative struct {
	ctx context.Context
}

// NewCooperative returns a Delayer bound to ctx.
func NewCooperative(ctx context.Context) *Cooperative {
	return &Cooperative{ctx: ctx}
}

// Delay implements Delayer. It returns ctx.Err() once ctx is done.
func (c *Cooperative) Delay(d time.Duration) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		runtime.Gosched()
		return c.ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-c.ctx.Done():
		return c.ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ Delayer = Blocking{}
var _ Delayer = &Cooperative{}
