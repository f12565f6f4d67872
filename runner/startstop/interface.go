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

// Package startstop wraps a pair of start/stop functions into a restartable,
// concurrency-safe runner with uptime tracking and error capture.
//
// A connection's background loop (read pump, heartbeat, reconnect watcher...)
// is typically just a function that blocks until told to stop. This package
// gives that function a consistent lifecycle: Start launches it in its own
// goroutine and returns immediately, Stop cancels it and waits for the
// configured teardown function to run, and Restart does both in sequence.
// IsRunning and Uptime let a supervisor poll liveness without the caller
// having to plumb its own atomic bookkeeping through every loop it manages.
package startstop

import (
	"context"
	"time"
)

// FuncStart is invoked in its own goroutine when Start is called. It should
// block until ctx is done, returning the reason it stopped (nil on a clean
// shutdown).
type FuncStart func(ctx context.Context) error

// FuncStop is invoked synchronously by Stop/Restart once the running
// FuncStart has been signalled to exit, to release whatever FuncStart
// acquired (close a socket, drain a queue...).
type FuncStop func(ctx context.Context) error

// StartStop supervises one FuncStart/FuncStop pair across a restartable
// lifecycle. All methods are safe for concurrent use.
type StartStop interface {
	// Start stops any instance already running, then launches start in a
	// new goroutine derived from ctx. It always returns nil; a nil start
	// function or an error returned by start is recorded instead of
	// propagated, retrievable via ErrorsLast/ErrorsList.
	Start(ctx context.Context) error

	// Stop cancels the running instance and calls stop with ctx. It is a
	// no-op, returning nil, if nothing is running. Concurrent Stop calls
	// only invoke stop once.
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

// New returns a StartStop supervising the given start/stop pair. Neither
// function is invoked until Start is called.
func New(start FuncStart, stop FuncStop) StartStop {
	return newRunner(start, stop)
}
