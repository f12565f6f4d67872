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
)

// Close stops the aggregator and releases its internal context and write
// channel. Idempotent.
func (o *agg) Close() error {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/close", recover())
	}()

	var e error
	if o.IsRunning() {
		x, n := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer n()
		e = o.Stop(x)
	}

	o.cleanup()
	return e
}

func (o *agg) closeRun(_ context.Context) error {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/closeRun", recover())
	}()
	o.cleanup()
	return nil
}

// Write queues p for FctWriter to process. It copies p before queueing, so
// the caller's slice is free to reuse once Write returns. An aggregator
// that isn't running returns ErrClosedResources.
func (o *agg) Write(p []byte) (n int, err error) {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/write", recover())
	}()

	n = len(p)
	if n == 0 {
		return 0, nil
	}

	o.cntWaitInc(n)
	defer o.cntWaitDec(n)

	if !o.op.Load() {
		return 0, ErrClosedResources
	}
	c := o.ch.Load()
	switch {
	case c == nil:
		return 0, ErrInvalidInstance
	case c == closedChan:
		return 0, ErrClosedResources
	}
	if err := o.Err(); err != nil {
		return 0, err
	}

	o.cntDataInc(n)

	cp := make([]byte, n)
	copy(cp, p)
	c <- cp
	return n, nil
}

func (o *agg) chanData() <-chan []byte {
	c := o.ch.Load()
	if c == nil {
		return closedChan
	}
	return c
}

func (o *agg) chanOpen() {
	o.op.Store(true)
	o.ch.Store(make(chan []byte, o.sh))
}

func (o *agg) chanClose() {
	o.op.Store(false)
	o.ch.Store(closedChan)
}
