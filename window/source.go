// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package window

// Source is a byte sequence of known length that can be consumed from
// either end. Len reports the number of bytes not yet consumed.
type Source interface {
	Len() int
	Next() (byte, bool)
	NextBack() (byte, bool)
}

// Bytes returns a Source over b. b is not copied.
func Bytes(b []byte) Source {
	return &slice{b: b}
}

type slice struct {
	b []byte
}

func (s *slice) Len() int {
	return len(s.b)
}

func (s *slice) Next() (byte, bool) {
	if len(s.b) == 0 {
		return 0, false
	}
	c := s.b[0]
	s.b = s.b[1:]
	return c, true
}

func (s *slice) NextBack() (byte, bool) {
	if len(s.b) == 0 {
		return 0, false
	}
	c := s.b[len(s.b)-1]
	s.b = s.b[:len(s.b)-1]
	return c, true
}

// Chain returns a Source yielding a then b.
func Chain(a, b Source) Source {
	return &chain{a: a, b: b}
}

type chain struct {
	a, b Source
}

func (c *chain) Len() int {
	return c.a.Len() + c.b.Len()
}

func (c *chain) Next() (byte, bool) {
	if v, ok := c.a.Next(); ok {
		return v, true
	}
	return c.b.Next()
}

func (c *chain) NextBack() (byte, bool) {
	if v, ok := c.b.NextBack(); ok {
		return v, true
	}
	return c.a.NextBack()
}

// Take returns a Source limited to the first n bytes of s. Pulling from the
// back discards whatever lies beyond those n bytes.
func Take(s Source, n int) Source {
	if n < 0 {
		n = 0
	}
	return &take{s: s, n: n}
}

type take struct {
	s Source
	n int
}

func (t *take) Len() int {
	return min(t.n, t.s.Len())
}

func (t *take) Next() (byte, bool) {
	if t.n == 0 {
		return 0, false
	}
	v, ok := t.s.Next()
	if ok {
		t.n--
	}
	return v, ok
}

func (t *take) NextBack() (byte, bool) {
	if t.n == 0 {
		return 0, false
	}
	for t.s.Len() > t.n {
		if _, ok := t.s.NextBack(); !ok {
			break
		}
	}
	v, ok := t.s.NextBack()
	if ok {
		t.n--
	}
	return v, ok
}
