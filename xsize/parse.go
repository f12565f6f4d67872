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
	"regexp"
	"strconv"
	"strings"
)

var (
	reSizeNumber = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?`)
	reSizeUnit   = regexp.MustCompile(`^[A-Za-z]+`)
)

// unitMultiplier resolves a unit token (case-insensitive, single or double
// letter) to the byte count it represents.
func unitMultiplier(u string) (float64, bool) {
	switch strings.ToUpper(u) {
	case "B":
		return float64(SizeUnit), true
	case "K", "KB":
		return float64(SizeKilo), true
	case "M", "MB":
		return float64(SizeMega), true
	case "G", "GB":
		return float64(SizeGiga), true
	case "T", "TB":
		return float64(SizeTera), true
	case "P", "PB":
		return float64(SizePeta), true
	case "E", "EB":
		return float64(SizeExa), true
	default:
		return 0, false
	}
}

// Parse parses a human-readable size such as "5MB", "1.5 GB" or the compound
// "1GB500MB" into a Size. Leading/trailing whitespace and a single pair of
// surrounding quotes are stripped; a leading '+' is accepted, a leading '-'
// is rejected.
func Parse(raw string) (Size, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)

	if s == "" {
		return SizeNul, fmt.Errorf("size: invalid size: empty input %q", raw)
	}

	if strings.HasPrefix(s, "-") {
		return SizeNul, fmt.Errorf("size: negative sizes are not allowed: %q", raw)
	}
	s = strings.TrimPrefix(s, "+")

	var (
		total   float64
		matched bool
	)

	for len(s) > 0 {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}

		num := reSizeNumber.FindString(s)
		if num == "" {
			return SizeNul, fmt.Errorf("size: invalid size: %q", raw)
		}
		s = strings.TrimLeft(s[len(num):], " \t")

		unit := reSizeUnit.FindString(s)
		if unit == "" {
			return SizeNul, fmt.Errorf("size: missing unit in %q", raw)
		}
		s = s[len(unit):]

		mul, ok := unitMultiplier(unit)
		if !ok {
			return SizeNul, fmt.Errorf("size: unknown unit %q in %q", unit, raw)
		}

		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return SizeNul, fmt.Errorf("size: invalid size: %w", err)
		}

		total += v * mul
		matched = true
	}

	if !matched {
		return SizeNul, fmt.Errorf("size: invalid size: %q", raw)
	}

	if math.IsInf(total, 0) || total > math.MaxUint64 {
		return SizeNul, fmt.Errorf("size: value overflow parsing %q", raw)
	}

	return Size(total), nil
}

// ParseByte is Parse over a byte slice, for callers decoding from a wire
// format or a file that already has raw bytes in hand.
func ParseByte(b []byte) (Size, error) {
	return Parse(string(b))
}

// ParseSize is a deprecated alias for Parse, kept for callers migrating from
// the pre-Size-type configuration format.
//
// Deprecated: use Parse.
func ParseSize(raw string) (Size, error) {
	return Parse(raw)
}

// ParseByteAsSize is a deprecated alias for ParseByte.
//
// Deprecated: use ParseByte.
func ParseByteAsSize(b []byte) (Size, error) {
	return ParseByte(b)
}

// GetSize is a deprecated, error-swallowing variant of Parse for callers
// that only want a success flag.
//
// Deprecated: use Parse.
func GetSize(raw string) (Size, bool) {
	s, err := Parse(raw)
	if err != nil {
		return SizeNul, false
	}
	return s, true
}
