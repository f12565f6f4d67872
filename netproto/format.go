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

// String returns the net.Dial/net.Listen network string, or "" for
// NetworkEmpty and any value outside the known range.
func (p NetworkProtocol) String() string {
	return protocolNames[p]
}

// Int returns 0 for NetworkEmpty or an out-of-range value, otherwise the
// protocol's stable ordinal.
func (p NetworkProtocol) Int() int {
	if _, ok := protocolNames[p]; !ok {
		return 0
	}
	return int(p)
}

// Int64 is Int as an int64.
func (p NetworkProtocol) Int64() int64 {
	return int64(p.Int())
}

// Uint returns 0 for NetworkEmpty or an out-of-range value, otherwise the
// protocol's stable ordinal.
func (p NetworkProtocol) Uint() uint {
	if _, ok := protocolNames[p]; !ok {
		return 0
	}
	return uint(p)
}

// Uint64 is Uint as a uint64.
func (p NetworkProtocol) Uint64() uint64 {
	return uint64(p.Uint())
}
