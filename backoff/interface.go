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

// Package backoff produces the next-delay decisions a reconnection loop
// consumes: how long to wait before the next attempt, and whether to try
// at all given the error that just occurred.
//
// Strategies are pure: next-delay depends only on the attempt number (and,
// for jittered exponential, an injected random source), never on wall-clock
// state the caller would otherwise have to thread through. This mirrors the
// shape of hashicorp/go-retryablehttp's DefaultBackoff/Backoff function
// type, generalised into an interface with a Strategy-level "should we even
// retry this error" hook the retryablehttp shape leaves to its CheckRetry
// callback.
package backoff

import (
	"math/rand"
	"time"
)

// Strategy decides the delay before the next reconnection attempt.
//
// Implementations must be safe for concurrent use: a connection pool may
// share one Strategy across many connections.
type Strategy interface {
	// NextDelay returns the delay before attempt (1-based) should run, and
	// ok=false if reconnection should stop entirely (attempt exceeds the
	// strategy's configured maximum).
	NextDelay(attempt uint, lastErr error) (delay time.Duration, ok bool)

	// ShouldReconnect reports whether err warrants a retry at all. The
	// default for every built-in strategy is true for any non-nil err;
	// WithShouldReconnect overrides this (e.g. never retry on an
	// AuthenticationFailed error).
	ShouldReconnect(err error) bool
}

// FuncShouldReconnect decides whether a given error should be retried.
type FuncShouldReconnect func(err error) bool

func alwaysReconnect(error) bool { return true }

// Fixed waits a constant Interval between attempts, up to MaxAttempts (0
// means unlimited).
func Fixed(interval time.Duration, maxAttempts uint, opts ...Option) Strategy {
	s := &fixed{interval: interval, maxAttempts: maxAttempts, should: alwaysReconnect}
	for _, o := range opts {
		o.applyFixed(s)
	}
	return s
}

// Linear waits Interval*attempt (capped at Max), up to MaxAttempts (0
// means unlimited).
func Linear(interval, max time.Duration, maxAttempts uint, opts ...Option) Strategy {
	s := &linear{interval: interval, max: max, maxAttempts: maxAttempts, should: alwaysReconnect}
	for _, o := range opts {
		o.applyLinear(s)
	}
	return s
}

// Exponential waits min(Initial*Multiplier^(attempt-1), MaxInterval), up to
// MaxAttempts (0 means unlimited). When Jitter is non-zero, the delay is
// scaled by a uniform random factor in [1-Jitter, 1+Jitter] before the
// MaxInterval cap is applied, so the cap remains a hard ceiling.
func Exponential(initial, maxInterval time.Duration, multiplier float64, maxAttempts uint, opts ...Option) Strategy {
	if multiplier <= 1 {
		multiplier = 2
	}
	s := &exponential{
		initial:     initial,
		maxInterval: maxInterval,
		multiplier:  multiplier,
		maxAttempts: maxAttempts,
		should:      alwaysReconnect,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o.applyExponential(s)
	}
	return s
}

// Option configures the built-in strategies. Not every option applies to
// every strategy constructor; an Option that doesn't apply to the
// constructor it's passed to is silently ignored.
type Option struct {
	should  FuncShouldReconnect
	jitter  float64
	hasJit  bool
}

func (o Option) applyFixed(s *fixed) {
	if o.should != nil {
		s.should = o.should
	}
}

func (o Option) applyLinear(s *linear) {
	if o.should != nil {
		s.should = o.should
	}
}

func (o Option) applyExponential(s *exponential) {
	if o.should != nil {
		s.should = o.should
	}
	if o.hasJit {
		s.jitter = o.jitter
	}
}

// WithShouldReconnect overrides ShouldReconnect for any built-in strategy.
func WithShouldReconnect(fn FuncShouldReconnect) Option {
	return Option{should: fn}
}

// WithJitter sets Exponential's jitter fraction (e.g. 0.2 for ±20%).
func WithJitter(jitter float64) Option {
	return Option{jitter: jitter, hasJit: true}
}
