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

// Package ticker wraps a periodic function into a restartable,
// concurrency-safe runner built on top of time.Ticker.
//
// Where startstop supervises a function that blocks until told to stop,
// ticker supervises one that fires on a fixed interval - a heartbeat, a
// connection-health probe, a periodic stats flush. Start launches the tick
// loop in its own goroutine and returns immediately; Stop cancels it and
// blocks until the loop has observed the cancellation.
package ticker

import (
	"context"
	"time"
)

// defaultDuration is used whenever New is given an interval too small to be
// a meaningful tick rate.
const defaultDuration = 30 * time.Second

// minDuration is the smallest interval New accepts as given; anything
// below it falls back to defaultDuration.
const minDuration = time.Millisecond

// FuncTick is invoked on every tick. tck is the underlying time.Ticker, so a
// slow tick function can call tck.Reset to change its own cadence. ctx is
// done once Stop is called.
type FuncTick func(ctx context.Context, tck *time.Ticker) error

// Ticker supervises a FuncTick on a fixed interval across a restartable
// lifecycle. All methods are safe for concurrent use.
type Ticker interface {
	// Start stops any instance already running, then ticks fn every
	// interval in a new goroutine derived from ctx. It returns an error if
	// ctx is nil; a nil fn or an error returned by fn on a given tick is
	// recorded instead of propagated, retrievable via ErrorsLast/ErrorsList,
	// and does not stop subsequent ticks.
	Start(ctx context.Context) error

	// Stop cancels the running instance and blocks until its goroutine has
	// exited, waiting at most two seconds; it returns nil even if the
	// goroutine is still running then. It is a no-op, returning nil, if
	// nothing is running.
	Stop(ctx context.Context) error

	// Restart stops the running instance, if any, then starts a new one.
	Restart(ctx context.Context) error

	// IsRunning reports whether an instance is currently active.
	IsRunning() bool

	// Uptime returns how long the current instance has been running, or
	// zero if nothing is running.
	Uptime() time.Duration

	// ErrorsLast returns the most recent error recorded by the current
	// run, or nil if none occurred.
	ErrorsLast() error

	// ErrorsList returns every error recorded by the current run.
	ErrorsList() []error
}

// New returns a Ticker invoking fn every interval. If interval is zero,
// negative, or smaller than a millisecond, defaultDuration is used instead.
// fn is not invoked until Start is called.
func New(interval time.Duration, fn FuncTick) Ticker {
	if interval < minDuration {
		interval = defaultDuration
	}

	return newTicker(interval, fn)
}
