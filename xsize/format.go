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

// String renders s at its natural unit (two decimal digits), e.g. "5.25MB".
func (s Size) String() string {
	return s.Format(FormatRound2) + s.Unit(0)
}

// Format renders s's magnitude at its natural unit using the given
// fmt verb/precision, e.g. FormatRound2 ("%.2f"). It does not include the
// unit suffix, see Unit/Code for that.
func (s Size) Format(format string) string {
	lvl := s.level()
	div := math.Pow(1024, float64(lvl))
	return fmt.Sprintf(format, float64(s)/div)
}

// Unit returns s's unit suffix at its natural scale. Passing 0 returns the
// canonical "B"-suffixed form (B, KB, MB, ...); passing any other rune
// replaces the trailing "B" with that rune (Ki, Mx, ...).
func (s Size) Unit(u rune) string {
	lvl := s.level()
	if u == 0 {
		return prefixes[lvl] + "B"
	}
	return prefixes[lvl] + string(u)
}

// Code is like Unit, but 0 resolves to the process-wide default set by
// SetDefaultUnit instead of the canonical "B".
func (s Size) Code(u rune) string {
	if u == 0 {
		u = defaultUnit
	}
	lvl := s.level()
	return prefixes[lvl] + string(u)
}

// KiloBytes returns s expressed as a whole number of kilobytes, floored.
func (s Size) KiloBytes() uint64 {
	return uint64(s) / uint64(SizeKilo)
}

// MegaBytes returns s expressed as a whole number of megabytes, floored.
func (s Size) MegaBytes() uint64 {
	return uint64(s) / uint64(SizeMega)
}

// GigaBytes returns s expressed as a whole number of gigabytes, floored.
func (s Size) GigaBytes() uint64 {
	return uint64(s) / uint64(SizeGiga)
}

// TeraBytes returns s expressed as a whole number of terabytes, floored.
func (s Size) TeraBytes() uint64 {
	return uint64(s) / uint64(SizeTera)
}

// PetaBytes returns s expressed as a whole number of petabytes, floored.
func (s Size) PetaBytes() uint64 {
	return uint64(s) / uint64(SizePeta)
}

// ExaBytes returns s expressed as a whole number of exabytes, floored.
func (s Size) ExaBytes() uint64 {
	return uint64(s) / uint64(SizeExa)
}
