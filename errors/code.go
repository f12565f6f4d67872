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
 */

package errors

import (
	"fmt"
	"math"
	"strconv"
)

// CodeError is a numeric error kind, in the spirit of an HTTP status code.
type CodeError uint16

// UnknownError is the zero-value code, used when no taxonomy entry applies.
const UnknownError CodeError = 0

// Taxonomy codes from the connection core's error design (see spec §7).
// Values are arbitrary but stable; do not renumber once referenced by callers.
const (
	ConnectionRefused CodeError = iota + 100
	NotConnected
	InvalidStateTransition
	TimeoutConnect
	TimeoutRead
	TimeoutWrite
	TimeoutRequest
	TimeoutAcquire
	BufferOverflow
	InvalidFrame
	ProtocolViolation
	EncodingFailed
	DecodingFailed
	AuthenticationFailed
	TLSError
	ProxyError
	RateLimited
	PoolExhausted
	PoolDraining
	PoolClosed
	Cancelled
	NetworkUnreachable
	InvalidEndpoint
	ResourceExhausted
)

var codeMessage = map[CodeError]string{
	ConnectionRefused:      "connection refused",
	NotConnected:           "not connected",
	InvalidStateTransition: "invalid state transition",
	TimeoutConnect:         "timeout: connect",
	TimeoutRead:            "timeout: read",
	TimeoutWrite:           "timeout: write",
	TimeoutRequest:         "timeout: request",
	TimeoutAcquire:         "timeout: acquire",
	BufferOverflow:         "buffer overflow",
	InvalidFrame:           "invalid frame",
	ProtocolViolation:      "protocol violation",
	EncodingFailed:         "encoding failed",
	DecodingFailed:         "decoding failed",
	AuthenticationFailed:   "authentication failed",
	TLSError:               "tls error",
	ProxyError:             "proxy error",
	RateLimited:            "rate limited",
	PoolExhausted:          "pool exhausted",
	PoolDraining:           "pool draining",
	PoolClosed:             "pool closed",
	Cancelled:              "cancelled",
	NetworkUnreachable:     "network unreachable",
	InvalidEndpoint:        "invalid endpoint",
	ResourceExhausted:      "resource exhausted",
}

// ParseCodeError clamps i into the valid CodeError range.
func ParseCodeError(i int64) CodeError {
	if i < 0 {
		return UnknownError
	} else if i >= int64(math.MaxUint16) {
		return math.MaxUint16
	}
	return CodeError(i)
}

// Uint16 returns the code as a uint16.
func (c CodeError) Uint16() uint16 { return uint16(c) }

// Int returns the code as an int.
func (c CodeError) Int() int { return int(c) }

// String renders the numeric code.
func (c CodeError) String() string { return strconv.Itoa(c.Int()) }

// Message returns the registered description for the code, or UnknownError's.
func (c CodeError) Message() string {
	if m, ok := codeMessage[c]; ok {
		return m
	}
	return "unknown error"
}

// Error builds a new Error from this code, capturing the call site and
// recording the given parents.
func (c CodeError) Error(parent ...error) Error {
	e := &ers{
		c: c.Uint16(),
		e: c.Message(),
		t: getFrame(),
	}
	e.Add(parent...)
	return e
}

// Errorf is Error with a custom formatted message instead of the registered one.
func (c CodeError) Errorf(format string, args ...interface{}) Error {
	return New(c, fmt.Sprintf(format, args...), nil)
}

// IfError returns a new Error for this code if any of the given errors is
// non-nil, otherwise nil. Useful to collapse a slice of fallible results.
func (c CodeError) IfError(e ...error) Error {
	for _, v := range e {
		if v != nil {
			return c.Error(e...)
		}
	}
	return nil
}

// unicCodeSlice returns s with duplicate codes removed, preserving order.
func unicCodeSlice(s []CodeError) []CodeError {
	seen := make(map[CodeError]struct{}, len(s))
	res := make([]CodeError, 0, len(s))

	for _, c := range s {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		res = append(res, c)
	}

	return res
}
