/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2026 fengmingdev
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package xsize

import (
	"fmt"
	"math"
)

// mulValue multiplies s by m, rounding to the nearest byte and saturating at
// math.MaxUint64. The second return value reports whether the multiplication
// overflowed.
func (s Size) mulValue(m float64) (uint64, bool) {
	if m < 0 {
		m = 0
	}

	v := float64(s) * m
	if math.IsInf(v, 0) || v > math.MaxUint64 {
		return math.MaxUint64, true
	}

	r := math.Round(v)
	if r > math.MaxUint64 {
		return math.MaxUint64, true
	}

	return uint64(r), false
}

// Mul multiplies s in place by m. Negative multipliers are treated as 0.
// Overflow saturates at the maximum representable size.
func (s *Size) Mul(m float64) {
	v, _ := s.mulValue(m)
	*s = Size(v)
}

// MulErr is Mul, but reports an overflow instead of silently saturating.
func (s *Size) MulErr(m float64) error {
	v, overflow := s.mulValue(m)
	*s = Size(v)
	if overflow {
		return fmt.Errorf("size: multiplication overflow")
	}
	return nil
}

// divValue divides s by d, rounding to the nearest byte. A non-positive
// divisor is rejected outright since it either panics or makes no sense for
// a byte count.
func (s Size) divValue(d float64) (uint64, error) {
	if d <= 0 {
		return uint64(s), fmt.Errorf("size: invalid diviser %v", d)
	}

	v := float64(s) / d
	if math.IsInf(v, 0) || v > math.MaxUint64 {
		return math.MaxUint64, nil
	}
	if v < 0 {
		v = 0
	}

	return uint64(math.Round(v)), nil
}

// Div divides s in place by d. A non-positive divisor leaves s unchanged.
func (s *Size) Div(d float64) {
	if v, err := s.divValue(d); err == nil {
		*s = Size(v)
	}
}

// DivErr is Div, but reports an invalid (non-positive) divisor as an error.
func (s *Size) DivErr(d float64) error {
	v, err := s.divValue(d)
	*s = Size(v)
	return err
}

// Add adds a to s in place, saturating at the maximum representable size.
func (s *Size) Add(a uint64) {
	v := uint64(*s)
	if math.MaxUint64-v < a {
		*s = Size(math.MaxUint64)
		return
	}
	*s = Size(v + a)
}

// AddErr is Add, but reports an overflow instead of silently saturating.
func (s *Size) AddErr(a uint64) error {
	v := uint64(*s)
	if math.MaxUint64-v < a {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: addition overflow")
	}
	*s = Size(v + a)
	return nil
}

// Sub subtracts a from s in place, flooring at SizeNul.
func (s *Size) Sub(a uint64) {
	v := uint64(*s)
	if v < a {
		*s = SizeNul
		return
	}
	*s = Size(v - a)
}

// SubErr is Sub, but reports an underflow instead of silently flooring.
func (s *Size) SubErr(a uint64) error {
	v := uint64(*s)
	if v < a {
		*s = SizeNul
		return fmt.Errorf("size: invalid substractor, %d is greater than current size %d", a, v)
	}
	*s = Size(v - a)
	return nil
}
