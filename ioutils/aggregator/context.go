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

// Deadline implements context.Context, delegating to the internal context
// derived from whatever ctx was handed to New/Start.
func (o *agg) Deadline() (deadline time.Time, ok bool) {
	if x := o.x.Load(); x != nil {
		return x.Deadline()
	}
	return time.Time{}, false
}

// Done implements context.Context. The channel closes when the parent
// context is cancelled, or Stop/Close is called.
func (o *agg) Done() <-chan struct{} {
	if x := o.x.Load(); x != nil {
		return x.Done()
	}
	c := make(chan struct{})
	close(c)
	return c
}

// Err implements context.Context.
func (o *agg) Err() error {
	if x := o.x.Load(); x != nil {
		return x.Err()
	}
	return nil
}

// Value implements context.Context.
func (o *agg) Value(key any) any {
	if x := o.x.Load(); x != nil {
		return x.Value(key)
	}
	return nil
}

func (o *agg) ctxNew(ctx context.Context) {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/ctxnew", recover())
	}()

	if ctx == nil || ctx.Err() != nil {
		ctx = context.Background()
	}

	x, n := context.WithCancel(ctx)
	o.x.Store(x)

	if old := o.n.Swap(n); old != nil {
		old()
	}
}

func (o *agg) ctxClose() {
	defer func() {
		runner.RecoveryCaller("ioutils/aggregator/ctxclose", recover())
	}()

	if old := o.n.Swap(func() {}); old != nil {
		old()
	}

	x, n := context.WithCancel(context.Background())
	n()
	o.x.Store(x)
}
