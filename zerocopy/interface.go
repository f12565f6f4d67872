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

// Package zerocopy provides non-owning views over byte buffers, so a
// decoded frame's payload can be handed to a sink without copying it out
// of the buffer it arrived in.
//
// A Reference is only valid until Transfer (or a fallback copy) consumes
// it; reusing a consumed Reference is a programming error the package
// reports rather than silently tolerates.
package zerocopy

import "errors"

// ErrConsumed is returned by Transfer/ScatterGather when called on a
// Reference that has already been consumed.
var ErrConsumed = errors.New("zerocopy: reference already consumed")

// Sink receives a slice during a Transfer or ScatterGather call. It must
// not retain the slice beyond the call: the backing array may be reused
// or overwritten afterwards.
type Sink func(p []byte) error

// Borrower is implemented by a source type that can hand out a slice
// without copying, e.g. the buffer package's Buffer. Types that cannot be
// borrowed safely (an io.Reader with no addressable backing array) are
// only ever used through Copy, never Reference.
type Borrower interface {
	// Borrow returns a slice view of [offset, offset+length) without
	// copying, or ok=false if the range cannot be borrowed (out of
	// bounds, or the source doesn't support borrowing here).
	Borrow(offset, length int) (p []byte, ok bool)
}

// Reference is a non-owning view over a []byte or a Borrower.
type Reference interface {
	// Transfer hands the referenced bytes to sink, then marks the
	// reference consumed. Returns ErrConsumed if already consumed.
	Transfer(sink Sink) error

	// Len reports the length of the referenced range.
	Len() int

	// Consumed reports whether Transfer has already run.
	Consumed() bool
}

// Stats snapshots the cumulative transfer activity of a Tracker.
type Stats struct {
	TotalTransfers    uint64
	ZeroCopyTransfers uint64
	FallbackTransfers uint64
	BytesTransferred  uint64
	BytesCopied       uint64
}

// ZeroCopyRate returns ZeroCopyTransfers / TotalTransfers, or 0 if no
// transfer has happened yet.
func (s Stats) ZeroCopyRate() float64 {
	if s.TotalTransfers == 0 {
		return 0
	}
	return float64(s.ZeroCopyTransfers) / float64(s.TotalTransfers)
}

// CopySavings returns the fraction of transferred bytes that avoided a
// copy: (BytesTransferred - BytesCopied) / BytesTransferred.
func (s Stats) CopySavings() float64 {
	if s.BytesTransferred == 0 {
		return 0
	}
	return float64(s.BytesTransferred-s.BytesCopied) / float64(s.BytesTransferred)
}

// Tracker accumulates Stats across every Reference it creates.
type Tracker interface {
	// MakeReference returns a Reference over source[offset:offset+length].
	// If source implements Borrower, the view borrows directly; otherwise
	// it falls back to a copy.
	MakeReference(source any, offset, length int) Reference

	// ScatterGather hands sink the slice from each live reference without
	// concatenating them, consuming every reference in order. A reference
	// already consumed is skipped.
	ScatterGather(refs []Reference, sink func([][]byte) error) error

	// Gather concatenates every reference's bytes into one copy and
	// consumes each reference in order.
	Gather(refs []Reference) ([]byte, error)

	// Stats reports cumulative transfer activity.
	Stats() Stats
}

// New returns a Tracker with zeroed statistics.
func New() Tracker {
	return &tracker{}
}
