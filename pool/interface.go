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

// Package pool implements the generic resource pool (spec §4.10):
// acquire/release/validate/evict over a caller-supplied resource type, with
// a pluggable selection strategy, idle/lifetime eviction, and a background
// health task.
package pool

import (
	"context"
	"time"

	"github.com/fengmingdev/nexuskit/logger"
)

// Resource is anything a Pool can manage: created on demand, validated
// before reuse, and closed when evicted or drained. Resource embeds
// comparable so a Pool can key its internal bookkeeping directly off the
// value Acquire returned to the caller; implementations are expected to be
// pointer types, as golib's own pooled-connection wrappers are.
type Resource interface {
	comparable

	// Validate reports whether the resource is still usable. A pool never
	// calls Validate concurrently with itself on the same resource.
	Validate(ctx context.Context) bool
	// Close releases the resource's underlying handle. Close is called at
	// most once per resource.
	Close() error
}

// Factory creates a new Resource for the pool to manage.
type Factory[T Resource] func(ctx context.Context) (T, error)

// Selector picks one available resource index out of n for Acquire. It
// must be safe for concurrent use; RoundRobin's counter is the only
// built-in selector carrying state across calls.
type Selector interface {
	// Select returns an index in [0, n). usage and lastUsed are parallel
	// slices of length n describing each candidate.
	Select(n int, usage []uint64, lastUsed []time.Time) int
}

// State is a pool's lifecycle stage.
type State uint8

const (
	StateOpen State = iota
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Config configures a Pool. Validate reports the same field-level errors
// golib's socket/config.Validate does: one aggregated error naming every
// invalid field, not just the first.
type Config struct {
	Min                 int
	Max                 int
	AcquireTimeout      time.Duration
	IdleTimeout         time.Duration
	MaxLifetime         time.Duration
	ValidateOnAcquire   bool
	ValidateOnRelease   bool
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
	WaitWhenFull        bool
	Selector            Selector
}

// Validate checks field-level invariants and returns a single aggregated
// error describing every violation found.
func (c Config) Validate() error {
	return validateConfig(c)
}

// Stats is a point-in-time view of pool occupancy.
type Stats struct {
	Active int
	Idle   int
	Waiters int
}

// Pool manages a fixed-capacity set of resources of type T.
//
// All methods are safe for concurrent use.
type Pool[T Resource] interface {
	// Acquire returns a validated resource, creating one if under Max and
	// none is idle, or waiting up to Config.AcquireTimeout (or ctx's
	// deadline, whichever is sooner) if WaitWhenFull and the pool is at
	// Max. Returns a PoolExhausted error immediately if !WaitWhenFull and
	// none is available, or PoolDraining/PoolClosed once the pool has left
	// StateOpen.
	Acquire(ctx context.Context) (T, error)

	// Release returns a resource acquired from this pool. Releasing a
	// resource not currently checked out is a programming error (no-op,
	// logged). If ValidateOnRelease is set and the resource fails
	// validation, it is closed and evicted instead of returned to the idle
	// set.
	Release(r T)

	// Drain transitions the pool to StateDraining (rejecting new Acquire
	// calls with PoolDraining), waits for every in-use resource to be
	// released, closes them all, and transitions to StateClosed.
	Drain(ctx context.Context) error

	Stats() Stats
	State() State
}

// New returns a Pool creating resources with factory according to cfg,
// which must already satisfy Validate. log follows golib's dependency
// injection idiom: called lazily, never stored as a package global.
func New[T Resource](cfg Config, factory Factory[T], log logger.FuncLog) (Pool[T], error) {
	return newPool(cfg, factory, log)
}

// RoundRobin selects candidates in rotating order via an atomic counter.
func RoundRobin() Selector { return &roundRobin{} }

// LeastConnections selects the candidate with the smallest usage count,
// breaking ties in favor of the first (lowest index).
func LeastConnections() Selector { return leastConnections{} }

// Random selects a uniformly random candidate.
func Random() Selector { return randomSelector{} }

// LeastRecentlyUsed selects the candidate with the oldest lastUsed,
// breaking ties in favor of the first (lowest index).
func LeastRecentlyUsed() Selector { return leastRecentlyUsed{} }
