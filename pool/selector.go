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

package pool

import (
	"math/rand"
	"sync/atomic"
	"time"
)

type roundRobin struct{ next uint64 }

func (r *roundRobin) Select(n int, usage []uint64, lastUsed []time.Time) int {
	if n == 0 {
		return -1
	}
	i := atomic.AddUint64(&r.next, 1) - 1
	return int(i % uint64(n))
}

type leastConnections struct{}

func (leastConnections) Select(n int, usage []uint64, lastUsed []time.Time) int {
	if n == 0 {
		return -1
	}
	best := 0
	for i := 1; i < n; i++ {
		if usage[i] < usage[best] {
			best = i
		}
	}
	return best
}

type randomSelector struct{}

func (randomSelector) Select(n int, usage []uint64, lastUsed []time.Time) int {
	if n == 0 {
		return -1
	}
	return rand.Intn(n)
}

type leastRecentlyUsed struct{}

func (leastRecentlyUsed) Select(n int, usage []uint64, lastUsed []time.Time) int {
	if n == 0 {
		return -1
	}
	best := 0
	for i := 1; i < n; i++ {
		if lastUsed[i].Before(lastUsed[best]) {
			best = i
		}
	}
	return best
}
