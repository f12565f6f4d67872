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

package zerocopy

import (
	"sync"
	"sync/atomic"
)

type reference struct {
	p        []byte
	borrowed bool
	tracker  *tracker

	consumed atomic.Bool
}

func (r *reference) Transfer(sink Sink) error {
	if !r.consumed.CompareAndSwap(false, true) {
		return ErrConsumed
	}
	if r.tracker != nil {
		r.tracker.record(r, len(r.p))
	}
	return sink(r.p)
}

func (r *reference) Len() int { return len(r.p) }

func (r *reference) Consumed() bool { return r.consumed.Load() }

type tracker struct {
	mu sync.Mutex

	totalTransfers    uint64
	zeroCopyTransfers uint64
	fallbackTransfers uint64
	bytesTransferred  uint64
	bytesCopied       uint64
}

func (t *tracker) MakeReference(source any, offset, length int) Reference {
	if b, ok := source.(Borrower); ok {
		if p, ok := b.Borrow(offset, length); ok {
			return &reference{p: p, borrowed: true, tracker: t}
		}
	}

	// fall back to a copy when the source can't be borrowed, e.g. a plain
	// []byte whose backing array the caller still owns.
	if p, ok := source.([]byte); ok {
		if offset < 0 || length < 0 || offset+length > len(p) {
			return &reference{p: nil, borrowed: false, tracker: t}
		}
		out := make([]byte, length)
		copy(out, p[offset:offset+length])
		return &reference{p: out, borrowed: false, tracker: t}
	}

	return &reference{p: nil, borrowed: false, tracker: t}
}

func (t *tracker) record(ref *reference, copied int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalTransfers++
	t.bytesTransferred += uint64(len(ref.p))

	if ref.borrowed {
		t.zeroCopyTransfers++
	} else {
		t.fallbackTransfers++
		t.bytesCopied += uint64(copied)
	}
}

func (t *tracker) ScatterGather(refs []Reference, sink func([][]byte) error) error {
	slices := make([][]byte, 0, len(refs))

	for _, r := range refs {
		ref, ok := r.(*reference)
		if !ok || ref.Consumed() {
			continue
		}

		var captured []byte
		if err := ref.Transfer(func(p []byte) error {
			captured = p
			return nil
		}); err != nil {
			return err
		}

		slices = append(slices, captured)
	}

	return sink(slices)
}

func (t *tracker) Gather(refs []Reference) ([]byte, error) {
	var total int
	captured := make([][]byte, 0, len(refs))

	for _, r := range refs {
		ref, ok := r.(*reference)
		if !ok || ref.Consumed() {
			continue
		}

		var p []byte
		if err := ref.Transfer(func(b []byte) error {
			p = b
			return nil
		}); err != nil {
			return nil, err
		}

		captured = append(captured, p)
		total += len(p)
	}

	out := make([]byte, 0, total)
	for _, p := range captured {
		out = append(out, p...)
	}

	return out, nil
}

func (t *tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		TotalTransfers:    t.totalTransfers,
		ZeroCopyTransfers: t.zeroCopyTransfers,
		FallbackTransfers: t.fallbackTransfers,
		BytesTransferred:  t.bytesTransferred,
		BytesCopied:       t.bytesCopied,
	}
}
