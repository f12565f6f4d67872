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

import "math"

// ParseInt64 converts a signed byte count to a Size, taking the absolute
// value. Uses unsigned negation so math.MinInt64 doesn't overflow.
func ParseInt64(i int64) Size {
	if i < 0 {
		return Size(-uint64(i))
	}
	return Size(i)
}

// SizeFromInt64 is an alias for ParseInt64.
func SizeFromInt64(i int64) Size {
	return ParseInt64(i)
}

// ParseUint64 converts an unsigned byte count to a Size.
func ParseUint64(i uint64) Size {
	return Size(i)
}

// ParseFloat64 converts a floating-point byte count to a Size: it floors
// towards negative infinity first, then takes the absolute value, then
// saturates at the maximum representable size.
func ParseFloat64(f float64) Size {
	f = math.Floor(f)
	if f < 0 {
		f = -f
	}
	if math.IsInf(f, 0) || f >= math.MaxUint64 {
		return Size(math.MaxUint64)
	}
	return Size(uint64(f))
}

// SizeFromFloat64 is an alias for ParseFloat64.
func SizeFromFloat64(f float64) Size {
	return ParseFloat64(f)
}

// Uint64 returns s as a uint64.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// Uint32 returns s as a uint32, saturating at math.MaxUint32.
func (s Size) Uint32() uint32 {
	if uint64(s) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(s)
}

// Uint returns s as a uint, saturating at math.MaxUint.
func (s Size) Uint() uint {
	if uint64(s) > math.MaxUint {
		return math.MaxUint
	}
	return uint(s)
}

// Int64 returns s as an int64, saturating at math.MaxInt64.
func (s Size) Int64() int64 {
	if uint64(s) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(s)
}

// Int32 returns s as an int32, saturating at math.MaxInt32.
func (s Size) Int32() int32 {
	if uint64(s) > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(s)
}

// Int returns s as an int, saturating at math.MaxInt.
func (s Size) Int() int {
	if uint64(s) > uint64(math.MaxInt) {
		return math.MaxInt
	}
	return int(s)
}

// Float64 returns s as a float64.
func (s Size) Float64() float64 {
	return float64(s)
}

// Float32 returns s as a float32, saturating at math.MaxFloat32.
func (s Size) Float32() float32 {
	f := float64(s)
	if f > math.MaxFloat32 {
		return math.MaxFloat32
	}
	return float32(f)
}
