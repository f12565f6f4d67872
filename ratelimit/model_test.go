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

package ratelimit_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/fengmingdev/nexuskit/errors"
	"github.com/fengmingdev/nexuskit/ratelimit"
)

var _ = Describe("TokenBucket", func() {
	It("grants immediately up to capacity and throttles the remainder (spec S5)", func() {
		lim := ratelimit.NewTokenBucket(1000, 1000)

		start := time.Now()
		Expect(lim.Acquire(context.Background(), 1000, time.Time{})).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically("<", 100*time.Millisecond))

		start = time.Now()
		Expect(lim.Acquire(context.Background(), 500, time.Time{})).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically(">=", 400*time.Millisecond))
	})

	It("rejects with RateLimited once the deadline is exceeded", func() {
		lim := ratelimit.NewTokenBucket(10, 1)
		Expect(lim.Acquire(context.Background(), 10, time.Time{})).To(Succeed())

		err := lim.Acquire(context.Background(), 10, time.Now().Add(20*time.Millisecond))
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.RateLimited)).To(BeTrue())
	})
})

var _ = Describe("LeakyBucket", func() {
	It("grants up to capacity immediately", func() {
		lim := ratelimit.NewLeakyBucket(100, 50)
		Expect(lim.Acquire(context.Background(), 100, time.Time{})).To(Succeed())
	})

	It("rejects once the max wait would be exceeded", func() {
		lim := ratelimit.NewLeakyBucket(10, 1)
		Expect(lim.Acquire(context.Background(), 10, time.Time{})).To(Succeed())
		err := lim.Acquire(context.Background(), 10, time.Now().Add(10*time.Millisecond))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("FixedWindow", func() {
	It("rejects once max is reached within the window", func() {
		lim := ratelimit.NewFixedWindow(2, time.Minute)
		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())
		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())

		err := lim.Acquire(context.Background(), 1, time.Time{})
		Expect(err).To(HaveOccurred())
		Expect(liberr.Is(err, liberr.RateLimited)).To(BeTrue())
	})

	It("resets the count once the window rolls over", func() {
		lim := ratelimit.NewFixedWindow(1, 10*time.Millisecond)
		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())
		Eventually(func() error {
			return lim.Acquire(context.Background(), 1, time.Time{})
		}, time.Second, 5*time.Millisecond).Should(Succeed())
	})
})

var _ = Describe("SlidingWindow", func() {
	It("rejects once max occurrences exist within the trailing window", func() {
		lim := ratelimit.NewSlidingWindow(2, time.Minute)
		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())
		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())

		err := lim.Acquire(context.Background(), 1, time.Time{})
		Expect(err).To(HaveOccurred())
	})

	It("evicts timestamps older than the window", func() {
		lim := ratelimit.NewSlidingWindow(1, 20*time.Millisecond)
		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())
		Eventually(func() error {
			return lim.Acquire(context.Background(), 1, time.Time{})
		}, time.Second, 5*time.Millisecond).Should(Succeed())
	})
})

var _ = Describe("ConcurrencyGate", func() {
	It("admits up to maxConcurrent and blocks beyond that until Release", func() {
		lim := ratelimit.NewConcurrencyGate(2)
		releaser := lim.(ratelimit.Releaser)

		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())
		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())

		err := lim.Acquire(context.Background(), 1, time.Now().Add(20*time.Millisecond))
		Expect(err).To(HaveOccurred())

		releaser.Release(1)
		Expect(lim.Acquire(context.Background(), 1, time.Time{})).To(Succeed())
	})
})
