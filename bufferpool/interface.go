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

// Package bufferpool implements a size-tiered, reusable []byte cache.
//
// Buffers are bucketed into power-of-two tiers so a caller asking for 3 KiB
// and another asking for 3.9 KiB share the same 4 KiB tier instead of each
// allocating a bespoke size that can never be reused by the other.
package bufferpool

import (
	"time"

	"github.com/fengmingdev/nexuskit/xsize"
)

// DefaultTiers is the default set of power-of-two tier sizes.
var DefaultTiers = []xsize.Size{
	256, 1024, 4096, 16384, 65536, 262144, 1048576,
}

// Stats snapshots a Pool's lifetime usage.
type Stats struct {
	Allocations uint64
	Hits        uint64
	Misses      uint64
	Peak        xsize.Size
	BytesReused xsize.Size
}

// HitRate returns Hits / (Hits + Misses), or 0 if nothing has been
// acquired yet.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Pool is a size-tiered cache of byte slices.
//
// All methods are safe for concurrent use.
type Pool interface {
	// Acquire returns a []byte of at least size bytes, picking the
	// smallest tier that fits (the largest tier if size exceeds it). The
	// returned slice has length 0 and capacity equal to the tier size.
	Acquire(size xsize.Size) []byte

	// Release returns buf to its tier, if the tier has room under
	// MaxPerTier and the pool as a whole is under MaxPoolSize. Otherwise
	// buf is dropped. Releasing the same backing array twice is a no-op:
	// once returned, buf must not be used again by the caller.
	Release(buf []byte)

	// Stats reports the pool's lifetime counters.
	Stats() Stats

	// Trim drops idle buffers, largest tiers first, until the total pooled
	// bytes are at most MaxPoolSize/2, freeing memory back to the runtime.
	Trim()
}

// Option configures a Pool at construction time.
type Option func(*pool)

// WithTiers overrides the default power-of-two tier sizes. Sizes are
// sorted ascending; duplicates are ignored.
func WithTiers(tiers ...xsize.Size) Option {
	return func(p *pool) { p.tierSizes = tiers }
}

// WithMaxPerTier caps how many idle buffers a single tier retains. The
// default is 64.
func WithMaxPerTier(n int) Option {
	return func(p *pool) { p.maxPerTier = n }
}

// WithMaxPoolSize caps the total bytes held across all tiers. Zero means
// unbounded. The default is 64 MiB.
func WithMaxPoolSize(max xsize.Size) Option {
	return func(p *pool) { p.maxPoolSize = max }
}

// WithTrimInterval starts a background goroutine calling Trim every
// interval. Zero (the default) disables background trimming; the caller
// may still call Trim directly.
func WithTrimInterval(interval time.Duration) Option {
	return func(p *pool) { p.trimInterval = interval }
}

// New returns a Pool ready to serve Acquire/Release.
func New(opts ...Option) Pool {
	p := &pool{
		tierSizes:   DefaultTiers,
		maxPerTier:  64,
		maxPoolSize: 64 * 1024 * 1024,
	}
	for _, o := range opts {
		o(p)
	}
	p.init()
	return p
}
