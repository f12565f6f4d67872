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

// Package xsize implements a byte-count type that carries its own unit
// formatting, parsing and arithmetic, so buffer sizes, pool limits and
// rate-limit quotas can be configured as "256MB" instead of raw integers.
package xsize

// Size is a count of bytes. The zero value is SizeNul, an empty size.
type Size uint64

// Byte-unit scale, powers of 1024.
const (
	SizeNul  Size = 0
	SizeUnit Size = 1
	SizeKilo Size = SizeUnit << 10
	SizeMega Size = SizeKilo << 10
	SizeGiga Size = SizeMega << 10
	SizeTera Size = SizeGiga << 10
	SizePeta Size = SizeTera << 10
	SizeExa  Size = SizePeta << 10
)

// Format strings for Size.Format, one decimal digit per precision level.
const (
	FormatRound0 = "%.0f"
	FormatRound1 = "%.1f"
	FormatRound2 = "%.2f"
	FormatRound3 = "%.3f"
)

var prefixes = [...]string{"", "K", "M", "G", "T", "P", "E"}

// defaultUnit is the rune appended by Code when called with 0. It starts at
// 'B' and is only ever changed by SetDefaultUnit.
var defaultUnit rune = 'B'

// SetDefaultUnit changes the rune used by Code when called without an
// explicit override. Passing 0 resets it to 'B'.
func SetDefaultUnit(r rune) {
	if r == 0 {
		r = 'B'
	}
	defaultUnit = r
}

// level returns the index into prefixes matching s's magnitude: 0 for plain
// bytes, up to 6 for exabytes.
func (s Size) level() int {
	v := uint64(s)
	lvl := 0
	for v >= 1024 && lvl < len(prefixes)-1 {
		v /= 1024
		lvl++
	}
	return lvl
}
