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

// Package buffer implements an incremental, append-and-drain byte buffer
// for framing partial network reads.
//
// Unlike bytes.Buffer, a Buffer keeps its read index explicit so a caller
// can peek, search, or skip ahead without consuming, and compacts its
// backing array only once unread slack crosses a threshold rather than on
// every read - cheap when a full frame already sits in the buffer head.
package buffer

import "github.com/fengmingdev/nexuskit/xsize"

// Stats snapshots a Buffer's occupancy at a point in time.
type Stats struct {
	// Total is the number of bytes currently held, read plus unread.
	Total xsize.Size
	// ReadIndex is the offset of the next unread byte.
	ReadIndex xsize.Size
	// Available is Total minus ReadIndex: bytes ready to be read.
	Available xsize.Size
	// UsageRatio is Total relative to Max, in [0,1].
	UsageRatio float64
	// NeedsCompact reports whether ReadIndex has crossed the compaction
	// threshold.
	NeedsCompact bool
}

// Buffer is an incremental read buffer with explicit compaction.
//
// All methods are safe to call concurrently; each call is serialised
// against every other call on the same Buffer.
type Buffer interface {
	// Append adds p to the buffer, compacting first if the read index has
	// crossed the compaction threshold. Returns a BufferOverflow error if
	// the resulting size would exceed Max.
	Append(p []byte) error

	// Read returns a copy of the next n unread bytes and advances the read
	// index past them. The second return is false if fewer than n bytes
	// are available, in which case the buffer is left untouched.
	Read(n int) ([]byte, bool)

	// Peek behaves like Read but never advances the read index.
	Peek(n int) ([]byte, bool)

	// ReadAll returns a copy of every unread byte and advances the read
	// index to the end.
	ReadAll() []byte

	// Skip advances the read index by n bytes without copying them. It
	// clamps to the number of unread bytes available.
	Skip(n int)

	// Find returns the offset of pattern within the unread region,
	// relative to the read index, or -1 if not present.
	Find(pattern []byte) int

	// Borrow returns a slice view of the unread region
	// [offset, offset+length), without copying, satisfying
	// zerocopy.Borrower. The returned slice aliases the buffer's own
	// backing array: it is only valid until the next call to Append,
	// Read, ReadAll, ReadUntil, Skip or Reset on this Buffer, since any of
	// those may compact or grow the array out from under it.
	Borrow(offset, length int) (p []byte, ok bool)

	// ReadUntil returns the unread bytes preceding the first occurrence of
	// delim, advances the read index past delim, and reports whether delim
	// was found. The buffer is left untouched when it is not found.
	ReadUntil(delim []byte) ([]byte, bool)

	// Stats reports the buffer's current occupancy.
	Stats() Stats

	// Reset discards all held bytes, read and unread alike.
	Reset()
}

// Option configures a Buffer at construction time.
type Option func(*buf)

// WithMax sets the maximum number of bytes the buffer will hold before
// Append starts failing. Zero means unbounded.
func WithMax(max xsize.Size) Option {
	return func(b *buf) { b.max = max }
}

// WithCompactThreshold sets how many consumed-but-retained bytes trigger
// compaction on the next Append. The default is 4 KiB.
func WithCompactThreshold(threshold xsize.Size) Option {
	return func(b *buf) { b.compactAt = threshold }
}

// New returns an empty Buffer configured by opts.
func New(opts ...Option) Buffer {
	b := &buf{compactAt: 4 * 1024}
	for _, o := range opts {
		o(b)
	}
	return b
}
