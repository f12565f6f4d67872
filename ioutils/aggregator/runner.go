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

package aggregator

import (
	"context"
	"time"

	"github.com/fengmingdev/nexuskit/runner"
	librun "github.com/fengmingdev/nexuskit/runner/startstop"
)

// Start launches the processing goroutine via runner/startstop. Calling
// Start while already running restarts it, matching startstop's own
// semantics.
func (o *agg) Start(ctx context.Context) error {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/start", recover())
	}()

	r := o.getRunner()
	e := r.Start(ctx)
	o.setRunner(r)

	time.Sleep(10 * time.Millisecond)
	return e
}

// Stop cancels the processing goroutine and waits for it to exit. It is a
// no-op if nothing is running.
func (o *agg) Stop(ctx context.Context) error {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/stop", recover())
	}()

	r := o.getRunner()
	e := r.Stop(ctx)
	o.setRunner(r)

	time.Sleep(10 * time.Millisecond)
	return e
}

// Restart stops then starts the processing goroutine.
func (o *agg) Restart(ctx context.Context) error {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/restart", recover())
	}()

	if e := o.Stop(ctx); e != nil {
		return e
	}
	time.Sleep(10 * time.Millisecond)
	return o.Start(ctx)
}

// IsRunning reports whether the processing goroutine is active, correcting
// any drift between the runner's own state and the write channel's
// open/closed flag (a leftover from a Close racing a tick, say).
func (o *agg) IsRunning() bool {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/isrunning", recover())
	}()

	r := o.getRunner()
	running := r.IsRunning()

	switch {
	case running && o.op.Load():
		return true
	case running && !o.op.Load():
		x, n := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer n()
		_ = o.Stop(x)
		return false
	case !running && o.op.Load():
		o.chanClose()
		o.ctxClose()
		return false
	default:
		return false
	}
}

// Uptime returns how long the processing goroutine has been running.
func (o *agg) Uptime() time.Duration {
	return o.getRunner().Uptime()
}

// ErrorsLast returns the most recent error recorded by the processing
// goroutine's current run.
func (o *agg) ErrorsLast() error {
	return o.getRunner().ErrorsLast()
}

// ErrorsList returns every error recorded by the processing goroutine's
// current run.
func (o *agg) ErrorsList() []error {
	return o.getRunner().ErrorsList()
}

func (o *agg) newRunner() librun.StartStop {
	return librun.New(o.run, o.closeRun)
}

func (o *agg) getRunner() librun.StartStop {
	if r := o.r.Load(); r != nil {
		return r
	}
	r := o.newRunner()
	o.r.Store(r)
	return r
}

func (o *agg) setRunner(r librun.StartStop) {
	if r == nil {
		r = o.newRunner()
	}
	o.r.Store(r)
}
