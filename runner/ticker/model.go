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

package ticker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fengmingdev/nexuskit/errors/collector"
)

var errNilFunc = errors.New("ticker: invalid function: nil function")

// maxStopWait bounds how long Stop will poll for the tick loop to exit.
const maxStopWait = 2 * time.Second

type tick struct {
	dur time.Duration
	fn  FuncTick

	mu     sync.Mutex
	cancel context.CancelFunc

	running   atomic.Bool
	startedAt atomic.Int64 // UnixNano, 0 when not running

	errs collector.Collector
}

func newTicker(dur time.Duration, fn FuncTick) *tick {
	return &tick{
		dur:  dur,
		fn:   fn,
		errs: collector.New(),
	}
}

func (t *tick) Start(ctx context.Context) error {
	if ctx == nil {
		return errors.New("ticker: start requires a non-nil context")
	}

	t.cancelCurrent()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.errs.Clear()

	cctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.running.Store(true)
	t.startedAt.Store(time.Now().UnixNano())

	go t.run(cctx)

	return nil
}

func (t *tick) run(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			t.errs.Add(fmt.Errorf("ticker: panic in tick function: %v", p))
		}
		t.running.Store(false)
		t.startedAt.Store(0)
	}()

	tk := time.NewTicker(t.dur)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			t.fire(ctx, tk)
		}
	}
}

// fire invokes fn for a single tick, recording any error or panic without
// stopping the loop.
func (t *tick) fire(ctx context.Context, tk *time.Ticker) {
	defer func() {
		if p := recover(); p != nil {
			t.errs.Add(fmt.Errorf("ticker: panic in tick function: %v", p))
		}
	}()

	if t.fn == nil {
		t.errs.Add(errNilFunc)
		return
	}

	if err := t.fn(ctx, tk); err != nil {
		t.errs.Add(err)
	}
}

// cancelCurrent cancels the running instance, if any, without waiting for
// its goroutine to exit.
func (t *tick) cancelCurrent() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (t *tick) Stop(ctx context.Context) error {
	t.cancelCurrent()

	wait := time.Millisecond
	deadline := time.Now().Add(maxStopWait)

	for t.running.Load() && time.Now().Before(deadline) {
		time.Sleep(wait)
		if wait < 100*time.Millisecond {
			wait *= 2
		}
	}

	return nil
}

func (t *tick) Restart(ctx context.Context) error {
	_ = t.Stop(ctx)
	return t.Start(ctx)
}

func (t *tick) IsRunning() bool {
	return t.running.Load()
}

func (t *tick) Uptime() time.Duration {
	if !t.running.Load() {
		return 0
	}

	at := t.startedAt.Load()
	if at == 0 {
		return 0
	}

	return time.Since(time.Unix(0, at))
}

func (t *tick) ErrorsLast() error {
	return t.errs.Last()
}

func (t *tick) ErrorsList() []error {
	return t.errs.Slice()
}
