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
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	libatm "github.com/fengmingdev/nexuskit/xatomic"
	"github.com/fengmingdev/nexuskit/runner"
	librun "github.com/fengmingdev/nexuskit/runner/startstop"
)

type agg struct {
	x libatm.Value[context.Context]    // internal cancellable context
	n libatm.Value[context.CancelFunc] // its cancel func

	r libatm.Value[librun.StartStop] // supervises the processing goroutine

	le libatm.Value[func(msg string, err ...error)]
	li libatm.Value[func(msg string, arg ...any)]

	at time.Duration
	am int
	af func(ctx context.Context)

	st time.Duration
	sf func(ctx context.Context)

	lc sync.Mutex
	fw func(p []byte) (n int, err error)
	sh int
	ch libatm.Value[chan []byte]
	op *atomic.Bool

	cd *atomic.Int64
	cw *atomic.Int64
	sd *atomic.Int64
	sw *atomic.Int64
}

func (o *agg) SetLoggerError(fn func(msg string, err ...error)) {
	if fn == nil {
		o.le.Store(func(msg string, err ...error) {})
		return
	}
	o.le.Store(fn)
}

func (o *agg) SetLoggerInfo(fn func(msg string, arg ...any)) {
	if fn == nil {
		o.li.Store(func(msg string, arg ...any) {})
		return
	}
	o.li.Store(fn)
}

func (o *agg) logError(msg string, err ...error) {
	if fn := o.le.Load(); fn != nil {
		fn(msg, err...)
	}
}

func (o *agg) logInfo(msg string, arg ...any) {
	if fn := o.li.Load(); fn != nil {
		fn(msg, arg...)
	}
}

func (o *agg) NbWaiting() int64      { return o.cw.Load() }
func (o *agg) SizeWaiting() int64    { return o.sw.Load() }
func (o *agg) NbProcessing() int64   { return o.cd.Load() }
func (o *agg) SizeProcessing() int64 { return o.sd.Load() }

// run is the processing goroutine's body, handed to runner/startstop as
// its FuncStart: it drains the write channel into fw and fires the
// configured async/sync callbacks on their own tickers until ctx is done.
func (o *agg) run(ctx context.Context) error {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/run", recover())
	}()

	var (
		sem *semaphore.Weighted

		tckAsc = time.NewTicker(o.at)
		tckSnc = time.NewTicker(o.st)

		fctWrt  func(p []byte) error
		fctSyn  func()
		fctAsyn func(sem *semaphore.Weighted)
	)

	defer func() {
		o.cleanup()
		o.logInfo("stopping aggregator")
		tckSnc.Stop()
		tckAsc.Stop()
	}()

	if o.fw == nil {
		return ErrInvalidInstance
	}
	if o.op.Load() {
		return ErrStillRunning
	}

	o.ctxNew(ctx)
	o.chanOpen()
	o.cntReset()

	fctWrt = func(p []byte) error {
		if len(p) == 0 {
			return nil
		}
		_, e := o.fw(p)
		return e
	}

	if o.am > 0 {
		sem = semaphore.NewWeighted(int64(o.am))
	}
	fctAsyn = o.callASyn()
	fctSyn = o.callSyn()

	o.logInfo("starting aggregator")

	for o.Err() == nil {
		select {
		case <-o.Done():
			return o.Err()

		case <-tckAsc.C:
			fctAsyn(sem)

		case <-tckSnc.C:
			fctSyn()

		case p, ok := <-o.chanData():
			o.cntDataDec(len(p))
			if !ok {
				continue
			}
			o.logError("error writing data", fctWrt(p))
		}
	}

	return o.Err()
}

// callASyn returns the async-callback trigger used by run's ticker branch.
// When am (AsyncMax) bounds concurrency, a nil sem means unbounded - any
// positive am got a *semaphore.Weighted in run; a non-positive am leaves
// sem nil and every tick spawns unconditionally.
func (o *agg) callASyn() func(sem *semaphore.Weighted) {
	if !o.op.Load() || o.af == nil || o.x.Load() == nil {
		return func(*semaphore.Weighted) {}
	}

	return func(sem *semaphore.Weighted) {
		if sem != nil && !sem.TryAcquire(1) {
			return
		}

		go func() {
			defer func() {
				runner.RecoveryCaller("ioutils/aggregator/callasyn", recover())
			}()
			if sem != nil {
				defer sem.Release(1)
			}
			o.af(o.x.Load())
		}()
	}
}

func (o *agg) callSyn() func() {
	if !o.op.Load() || o.sf == nil || o.x.Load() == nil {
		return func() {}
	}

	return func() {
		defer func() {
			runner.RecoveryCaller("ioutils/aggregator/callsyn", recover())
		}()
		o.sf(o.x.Load())
	}
}

func (o *agg) cntDataInc(i int) {
	o.cd.Add(1)
	o.sd.Add(int64(i))
}

func (o *agg) cntDataDec(i int) {
	o.cd.Add(-1)
	if j := o.cd.Load(); j < 0 {
		o.cd.Store(0)
	}
	o.sd.Add(int64(-i))
	if j := o.sd.Load(); j < 0 {
		o.sd.Store(0)
	}
}

func (o *agg) cntWaitInc(i int) {
	o.cw.Add(1)
	o.sw.Add(int64(i))
}

func (o *agg) cntWaitDec(i int) {
	o.cw.Add(-1)
	if j := o.cw.Load(); j < 0 {
		o.cw.Store(0)
	}
	o.sw.Add(int64(-i))
	if j := o.sw.Load(); j < 0 {
		o.sw.Store(0)
	}
}

func (o *agg) cntReset() {
	o.cd.Store(0)
	o.sd.Store(0)
	o.cw.Store(0)
	o.sw.Store(0)
}

func (o *agg) cleanup() {
	o.ctxClose()
	o.chanClose()
}
