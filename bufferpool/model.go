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

package bufferpool

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fengmingdev/nexuskit/runner/ticker"
	"github.com/fengmingdev/nexuskit/xsize"
)

// tier is a bounded free list of same-capacity byte slices.
type tier struct {
	size xsize.Size
	free chan []byte
}

func newTier(size xsize.Size, maxPerTier int) *tier {
	return &tier{
		size: size,
		free: make(chan []byte, maxPerTier),
	}
}

func (t *tier) take() ([]byte, bool) {
	select {
	case b := <-t.free:
		return b[:0], true
	default:
		return make([]byte, 0, t.size.Int()), false
	}
}

// give attempts to return buf to the tier's free list, reporting whether
// it was retained.
func (t *tier) give(buf []byte) bool {
	select {
	case t.free <- buf:
		return true
	default:
		return false
	}
}

// drain removes up to max buffers from the tier's free list, returning the
// number of bytes freed.
func (t *tier) drain(max xsize.Size) xsize.Size {
	var freed xsize.Size
	for freed < max {
		select {
		case <-t.free:
			freed += t.size
		default:
			return freed
		}
	}
	return freed
}

type pool struct {
	tierSizes    []xsize.Size
	maxPerTier   int
	maxPoolSize  xsize.Size
	trimInterval time.Duration

	tiers []*tier

	mu          sync.Mutex
	totalPooled xsize.Size
	peak        xsize.Size

	allocations atomic.Uint64
	hits        atomic.Uint64
	misses      atomic.Uint64
	bytesReused atomic.Uint64

	trimmer ticker.Ticker
}

func (p *pool) init() {
	sizes := append([]xsize.Size(nil), p.tierSizes...)
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	p.tierSizes = sizes

	p.tiers = make([]*tier, len(sizes))
	for i, s := range sizes {
		p.tiers[i] = newTier(s, p.maxPerTier)
	}

	if p.trimInterval > 0 {
		p.trimmer = ticker.New(p.trimInterval, func(ctx context.Context, tck *time.Ticker) error {
			p.Trim()
			return nil
		})
		_ = p.trimmer.Start(context.Background())
	}
}

// tierFor returns the index of the smallest tier able to hold size bytes,
// saturating to the last tier when size exceeds every tier.
func (p *pool) tierFor(size xsize.Size) int {
	for i, s := range p.tierSizes {
		if s >= size {
			return i
		}
	}
	return len(p.tierSizes) - 1
}

func (p *pool) Acquire(size xsize.Size) []byte {
	idx := p.tierFor(size)
	t := p.tiers[idx]

	buf, hit := t.take()

	p.allocations.Add(1)
	if hit {
		p.hits.Add(1)
		p.bytesReused.Add(t.size.Uint64())

		p.mu.Lock()
		p.totalPooled -= t.size
		p.mu.Unlock()
	} else {
		p.misses.Add(1)
	}

	return buf
}

func (p *pool) Release(buf []byte) {
	idx := p.tierForCapacity(xsize.Size(cap(buf)))
	if idx < 0 {
		return
	}
	t := p.tiers[idx]

	p.mu.Lock()
	if p.maxPoolSize > 0 && p.totalPooled+t.size > p.maxPoolSize {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	if t.give(buf) {
		p.mu.Lock()
		p.totalPooled += t.size
		if p.totalPooled > p.peak {
			p.peak = p.totalPooled
		}
		p.mu.Unlock()
	}
}

// tierForCapacity finds the tier whose size exactly matches buf's
// capacity, i.e. the tier it was originally acquired from. Returns -1 for
// a slice this pool never produced.
func (p *pool) tierForCapacity(c xsize.Size) int {
	for i, s := range p.tierSizes {
		if s == c {
			return i
		}
	}
	return -1
}

func (p *pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		Allocations: p.allocations.Load(),
		Hits:        p.hits.Load(),
		Misses:      p.misses.Load(),
		Peak:        p.peak,
		BytesReused: xsize.Size(p.bytesReused.Load()),
	}
}

// Trim reduces total pooled bytes to at most MaxPoolSize/2, draining the
// largest tiers first since they free the most bytes per buffer dropped.
func (p *pool) Trim() {
	p.mu.Lock()
	target := p.maxPoolSize / 2
	toFree := xsize.Size(0)
	if p.totalPooled > target {
		toFree = p.totalPooled - target
	}
	p.mu.Unlock()

	if toFree == 0 {
		return
	}

	var freed xsize.Size
	for i := len(p.tiers) - 1; i >= 0 && freed < toFree; i-- {
		freed += p.tiers[i].drain(toFree - freed)
	}

	p.mu.Lock()
	p.totalPooled -= freed
	p.mu.Unlock()
}
