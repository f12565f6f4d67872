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

package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/juju/ratelimit"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	liberr "github.com/fengmingdev/nexuskit/errors"
)

// ---- token bucket (golang.org/x/time/rate) ----

type tokenBucket struct {
	capacity float64
	rateSec  float64
	lim      *rate.Limiter
}

// NewTokenBucket returns a Limiter that refills continuously at ratePerSec
// units/second up to capacity, per spec §4.11's token bucket.
func NewTokenBucket(capacity float64, ratePerSec float64) Limiter {
	return &tokenBucket{
		capacity: capacity,
		rateSec:  ratePerSec,
		lim:      rate.NewLimiter(rate.Limit(ratePerSec), int(capacity)),
	}
}

func (t *tokenBucket) Acquire(ctx context.Context, cost float64, deadline time.Time) error {
	n := int(cost)
	if n <= 0 {
		n = 1
	}

	if !deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}

	if err := t.lim.WaitN(ctx, n); err != nil {
		return liberr.RateLimited.Errorf("ratelimit: token bucket: %v", err)
	}
	return nil
}

func (t *tokenBucket) Current() Status {
	avail := t.lim.TokensAt(time.Now())
	return Status{Available: avail, Capacity: t.capacity, Utilisation: 1 - avail/t.capacity}
}

func (t *tokenBucket) Reset() {
	t.lim = rate.NewLimiter(rate.Limit(t.rateSec), int(t.capacity))
}

// ---- leaky bucket (github.com/juju/ratelimit) ----

type leakyBucket struct {
	capacity float64
	leakSec  float64
	bucket   *ratelimit.Bucket
}

// NewLeakyBucket returns a Limiter that drains at leakPerSec units/second,
// rejecting or waiting once level+cost would exceed capacity.
func NewLeakyBucket(capacity float64, leakPerSec float64) Limiter {
	return &leakyBucket{
		capacity: capacity,
		leakSec:  leakPerSec,
		bucket:   ratelimit.NewBucketWithRate(leakPerSec, int64(capacity)),
	}
}

func (l *leakyBucket) Acquire(ctx context.Context, cost float64, deadline time.Time) error {
	n := int64(cost)
	if n <= 0 {
		n = 1
	}

	var maxWait time.Duration
	if !deadline.IsZero() {
		maxWait = time.Until(deadline)
		if maxWait < 0 {
			maxWait = 0
		}
	} else {
		maxWait = time.Hour
	}

	if !l.bucket.WaitMaxDuration(n, maxWait) {
		return liberr.RateLimited.Errorf("ratelimit: leaky bucket: would exceed max wait")
	}
	return nil
}

func (l *leakyBucket) Current() Status {
	avail := float64(l.bucket.Available())
	return Status{Available: avail, Capacity: l.capacity, Utilisation: 1 - avail/l.capacity}
}

func (l *leakyBucket) Reset() {
	l.bucket = ratelimit.NewBucketWithRate(l.leakSec, int64(l.capacity))
}

// ---- fixed window ----

type fixedWindow struct {
	max    int
	window time.Duration

	mu        sync.Mutex
	count     int
	windowEnd time.Time
}

// NewFixedWindow returns a Limiter rejecting once max requests have been
// granted within the current window; the window resets wholesale every
// window duration.
func NewFixedWindow(max int, window time.Duration) Limiter {
	return &fixedWindow{max: max, window: window}
}

func (f *fixedWindow) Acquire(_ context.Context, _ float64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	if now.After(f.windowEnd) {
		f.count = 0
		f.windowEnd = now.Add(f.window)
	}

	if f.count >= f.max {
		return liberr.RateLimited.Errorf("ratelimit: fixed window exhausted")
	}
	f.count++
	return nil
}

func (f *fixedWindow) Current() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	avail := float64(f.max - f.count)
	return Status{Available: avail, Capacity: float64(f.max), Utilisation: float64(f.count) / float64(f.max)}
}

func (f *fixedWindow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count = 0
	f.windowEnd = time.Time{}
}

// ---- sliding window ----

type slidingWindow struct {
	max    int
	window time.Duration

	mu         sync.Mutex
	timestamps []time.Time
}

// NewSlidingWindow returns a Limiter rejecting once max requests occurred
// within the trailing window, tracked as an explicit queue of timestamps.
func NewSlidingWindow(max int, window time.Duration) Limiter {
	return &slidingWindow{max: max, window: window}
}

func (s *slidingWindow) evictLocked(now time.Time) {
	cut := now.Add(-s.window)
	i := 0
	for ; i < len(s.timestamps); i++ {
		if s.timestamps[i].After(cut) {
			break
		}
	}
	s.timestamps = s.timestamps[i:]
}

func (s *slidingWindow) Acquire(_ context.Context, _ float64, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.evictLocked(now)

	if len(s.timestamps) >= s.max {
		return liberr.RateLimited.Errorf("ratelimit: sliding window exhausted")
	}
	s.timestamps = append(s.timestamps, now)
	return nil
}

func (s *slidingWindow) Current() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(time.Now())
	avail := float64(s.max - len(s.timestamps))
	return Status{Available: avail, Capacity: float64(s.max), Utilisation: float64(len(s.timestamps)) / float64(s.max)}
}

func (s *slidingWindow) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timestamps = nil
}

// ---- concurrency gate (golang.org/x/sync/semaphore) ----

type concurrencyGate struct {
	max int64
	sem *semaphore.Weighted

	mu      sync.Mutex
	current int64
}

// NewConcurrencyGate returns a Limiter admitting at most maxConcurrent
// in-flight operations at once. cost is the number of permits an
// individual Acquire call consumes; callers must release by calling
// Acquire's companion Release once the guarded operation completes - see
// Releaser.
func NewConcurrencyGate(maxConcurrent int64) Limiter {
	return &concurrencyGate{max: maxConcurrent, sem: semaphore.NewWeighted(maxConcurrent)}
}

func (g *concurrencyGate) Acquire(ctx context.Context, cost float64, deadline time.Time) error {
	n := int64(cost)
	if n <= 0 {
		n = 1
	}

	if !deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}

	if err := g.sem.Acquire(ctx, n); err != nil {
		return liberr.RateLimited.Errorf("ratelimit: concurrency gate: %v", err)
	}

	g.mu.Lock()
	g.current += n
	g.mu.Unlock()
	return nil
}

// Release returns cost permits to the gate. Every successful Acquire must
// be paired with exactly one Release of the same cost.
func (g *concurrencyGate) Release(cost float64) {
	n := int64(cost)
	if n <= 0 {
		n = 1
	}
	g.sem.Release(n)

	g.mu.Lock()
	g.current -= n
	g.mu.Unlock()
}

func (g *concurrencyGate) Current() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	avail := float64(g.max - g.current)
	return Status{Available: avail, Capacity: float64(g.max), Utilisation: float64(g.current) / float64(g.max)}
}

func (g *concurrencyGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sem = semaphore.NewWeighted(g.max)
	g.current = 0
}
