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

// Package correlator matches correlation-id-bearing responses to pending
// requests (spec §4.6). A request id is allocated from a monotone wrapping
// u32 counter, skipping the reserved 0 and 0xFFFF values the reference
// binary framer (frame.Binary) treats specially; a response, a timeout, or
// the owning connection leaving Connected resolves exactly one pending
// waiter, never more than once.
package correlator

import (
	"context"
	"time"
)

// Result is what a pending request resolves to.
type Result struct {
	Payload []byte
	Err     error
}

// Correlator tracks in-flight requests awaiting a correlated response.
//
// All methods are safe for concurrent use.
type Correlator interface {
	// Send allocates a request id, registers a pending waiter with the
	// given deadline, and returns the id plus a channel that receives
	// exactly one Result: a successful Deliver, a Timeout error once
	// deadline elapses, a Cancelled error if Cancel is called first, or a
	// NotConnected error if CloseAll runs first. Returns
	// errors.ResourceExhausted if every id is already pending (should not
	// happen under normal rate x RTT per spec §4.6).
	Send(ctx context.Context, deadline time.Time) (id uint32, result <-chan Result, err error)

	// Deliver resolves the pending request for id with payload. Reports
	// false if no such request is pending (already resolved, or never
	// existed - a response for an unknown/expired id is simply dropped by
	// the caller).
	Deliver(id uint32, payload []byte) bool

	// Cancel resolves the pending request for id, if any, with a
	// Cancelled error, and removes it.
	Cancel(id uint32) bool

	// CloseAll resolves every pending request with the given error
	// (typically errors.NotConnected) and clears the table. Called when
	// the owning connection leaves Connected.
	CloseAll(err error)

	// Pending reports the number of requests currently awaiting a
	// response.
	Pending() int
}

// New returns an empty Correlator.
func New() Correlator {
	return newCorrelator()
}
