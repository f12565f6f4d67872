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

package buffer

import (
	"bytes"
	"sync"

	liberr "github.com/fengmingdev/nexuskit/errors"
	"github.com/fengmingdev/nexuskit/xsize"
	"github.com/fengmingdev/nexuskit/zerocopy"
)

type buf struct {
	mu sync.Mutex

	data      []byte
	readIndex int

	max       xsize.Size
	compactAt xsize.Size
}

var _ zerocopy.Borrower = (*buf)(nil)

func (b *buf) Append(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if xsize.Size(b.readIndex) >= b.compactAt {
		b.compactLocked()
	}

	if b.max > 0 && xsize.Size(len(b.data)+len(p)) > b.max {
		return liberr.New(liberr.BufferOverflow, "buffer: append exceeds max size", nil)
	}

	b.data = append(b.data, p...)
	return nil
}

// compactLocked drops already-read bytes, shifting unread bytes to the
// front of the backing array. Caller must hold b.mu.
func (b *buf) compactLocked() {
	if b.readIndex == 0 {
		return
	}
	b.data = append(b.data[:0], b.data[b.readIndex:]...)
	b.readIndex = 0
}

func (b *buf) Read(n int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n < 0 || b.readIndex+n > len(b.data) {
		return nil, false
	}

	out := make([]byte, n)
	copy(out, b.data[b.readIndex:b.readIndex+n])
	b.readIndex += n

	return out, true
}

func (b *buf) Peek(n int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n < 0 || b.readIndex+n > len(b.data) {
		return nil, false
	}

	out := make([]byte, n)
	copy(out, b.data[b.readIndex:b.readIndex+n])

	return out, true
}

func (b *buf) ReadAll() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]byte, len(b.data)-b.readIndex)
	copy(out, b.data[b.readIndex:])
	b.readIndex = len(b.data)

	return out
}

func (b *buf) Skip(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n < 0 {
		return
	}

	avail := len(b.data) - b.readIndex
	if n > avail {
		n = avail
	}
	b.readIndex += n
}

func (b *buf) Find(pattern []byte) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(pattern) == 0 {
		return 0
	}

	idx := bytes.Index(b.data[b.readIndex:], pattern)
	return idx
}

func (b *buf) ReadUntil(delim []byte) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(delim) == 0 {
		return nil, false
	}

	idx := bytes.Index(b.data[b.readIndex:], delim)
	if idx < 0 {
		return nil, false
	}

	out := make([]byte, idx)
	copy(out, b.data[b.readIndex:b.readIndex+idx])
	b.readIndex += idx + len(delim)

	return out, true
}

func (b *buf) Borrow(offset, length int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || length < 0 {
		return nil, false
	}

	start := b.readIndex + offset
	end := start + length
	if end > len(b.data) {
		return nil, false
	}

	return b.data[start:end], true
}

func (b *buf) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := xsize.Size(len(b.data))
	read := xsize.Size(b.readIndex)

	var ratio float64
	if b.max > 0 {
		ratio = float64(total) / float64(b.max)
	}

	return Stats{
		Total:        total,
		ReadIndex:    read,
		Available:    total - read,
		UsageRatio:   ratio,
		NeedsCompact: read >= b.compactAt,
	}
}

func (b *buf) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = b.data[:0]
	b.readIndex = 0
}
