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

package startstop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fengmingdev/nexuskit/errors/collector"
)

var (
	errNilStart = errors.New("startstop: invalid start function: nil function")
	errNilStop  = errors.New("startstop: invalid stop function: nil function")
)

type runner struct {
	start FuncStart
	stop  FuncStop

	mu     sync.Mutex
	cancel context.CancelFunc

	running   atomic.Bool
	startedAt atomic.Int64 // UnixNano, 0 when not running

	errs collector.Collector
}

func newRunner(start FuncStart, stop FuncStop) *runner {
	return &runner{
		start: start,
		stop:  stop,
		errs:  collector.New(),
	}
}

func (r *runner) Start(ctx context.Context) error {
	r.stopLocked(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.errs.Clear()

	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.running.Store(true)
	r.startedAt.Store(time.Now().UnixNano())

	go r.run(cctx)

	return nil
}

func (r *runner) run(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			r.errs.Add(fmt.Errorf("startstop: panic in start function: %v", p))
		}
		r.running.Store(false)
		r.startedAt.Store(0)
	}()

	if r.start == nil {
		r.errs.Add(errNilStart)
		return
	}

	if err := r.start(ctx); err != nil {
		r.errs.Add(err)
	}
}

func (r *runner) Stop(ctx context.Context) error {
	r.stopLocked(ctx)
	return nil
}

// stopLocked cancels the running instance, if any, and runs the stop
// function exactly once. Safe to call when nothing is running.
func (r *runner) stopLocked(ctx context.Context) {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()

	defer func() {
		if p := recover(); p != nil {
			r.errs.Add(fmt.Errorf("startstop: panic in stop function: %v", p))
		}
	}()

	if r.stop == nil {
		r.errs.Add(errNilStop)
		return
	}

	if err := r.stop(ctx); err != nil {
		r.errs.Add(err)
	}
}

func (r *runner) Restart(ctx context.Context) error {
	r.stopLocked(ctx)
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	return r.running.Load()
}

func (r *runner) Uptime() time.Duration {
	if !r.running.Load() {
		return 0
	}

	t := r.startedAt.Load()
	if t == 0 {
		return 0
	}

	return time.Since(time.Unix(0, t))
}

func (r *runner) ErrorsLast() error {
	return r.errs.Last()
}

func (r *runner) ErrorsList() []error {
	return r.errs.Slice()
}
