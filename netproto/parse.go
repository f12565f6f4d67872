/*
 * MIT License
 *
 * Copyright (c) 2026 fengmingdev
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package netproto

import "strings"

const quoteCutset = "\"'`"

// Parse maps a net.Dial/net.Listen network string to its NetworkProtocol,
// case-insensitively and tolerant of surrounding whitespace and quoting
// (handy when the value round-tripped through a shell or a config file).
// An unrecognised string returns NetworkEmpty.
func Parse(raw string) NetworkProtocol {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, quoteCutset)
	s = strings.ToLower(s)

	return namesToProtocol[s]
}

// ParseBytes is Parse over a byte slice, for decoding wire values without
// an intermediate string allocation by the caller.
func ParseBytes(b []byte) NetworkProtocol {
	return Parse(string(b))
}

// ParseInt64 maps a stable ordinal (as produced by Int64) back to its
// NetworkProtocol, or NetworkEmpty if out of range.
func ParseInt64(i int64) NetworkProtocol {
	if i <= 0 || i > int64(NetworkUnixGram) {
		return NetworkEmpty
	}
	return NetworkProtocol(i)
}

// ParseUint64 is ParseInt64 over an unsigned ordinal.
func ParseUint64(u uint64) NetworkProtocol {
	if u == 0 || u > uint64(NetworkUnixGram) {
		return NetworkEmpty
	}
	return NetworkProtocol(u)
}
