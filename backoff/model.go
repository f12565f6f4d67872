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

package backoff

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

type fixed struct {
	interval    time.Duration
	maxAttempts uint
	should      FuncShouldReconnect
}

func (f *fixed) NextDelay(attempt uint, _ error) (time.Duration, bool) {
	if f.maxAttempts > 0 && attempt > f.maxAttempts {
		return 0, false
	}
	return f.interval, true
}

func (f *fixed) ShouldReconnect(err error) bool { return f.should(err) }

type linear struct {
	interval    time.Duration
	max         time.Duration
	maxAttempts uint
	should      FuncShouldReconnect
}

func (l *linear) NextDelay(attempt uint, _ error) (time.Duration, bool) {
	if l.maxAttempts > 0 && attempt > l.maxAttempts {
		return 0, false
	}
	d := l.interval * time.Duration(attempt)
	if l.max > 0 && d > l.max {
		d = l.max
	}
	return d, true
}

func (l *linear) ShouldReconnect(err error) bool { return l.should(err) }

type exponential struct {
	initial     time.Duration
	maxInterval time.Duration
	multiplier  float64
	maxAttempts uint
	jitter      float64
	should      FuncShouldReconnect

	mu   sync.Mutex
	rand *rand.Rand
}

// NextDelay computes min(initial * multiplier^(attempt-1), maxInterval),
// then (if Jitter > 0) scales the result by a uniform factor in
// [1-Jitter, 1+Jitter] before re-applying the maxInterval cap, so jitter
// never pushes the delay past the configured ceiling - only below it.
func (e *exponential) NextDelay(attempt uint, _ error) (time.Duration, bool) {
	if e.maxAttempts > 0 && attempt > e.maxAttempts {
		return 0, false
	}
	if attempt == 0 {
		attempt = 1
	}

	raw := float64(e.initial) * math.Pow(e.multiplier, float64(attempt-1))
	if e.maxInterval > 0 && raw > float64(e.maxInterval) {
		raw = float64(e.maxInterval)
	}

	if e.jitter > 0 {
		e.mu.Lock()
		factor := 1 - e.jitter + 2*e.jitter*e.rand.Float64()
		e.mu.Unlock()
		raw *= factor
		if e.maxInterval > 0 && raw > float64(e.maxInterval) {
			raw = float64(e.maxInterval)
		}
	}

	if raw < 0 {
		raw = 0
	}
	return time.Duration(raw), true
}

func (e *exponential) ShouldReconnect(err error) bool { return e.should(err) }
