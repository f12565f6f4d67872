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

package correlator

import (
	"context"
	"sync"
	"time"

	liberr "github.com/fengmingdev/nexuskit/errors"
)

const (
	reservedZero = 0
	reservedMax  = 0xFFFF
)

type pending struct {
	ch     chan Result
	timer  *time.Timer
	once   sync.Once
	closed chan struct{}
}

func (p *pending) resolve(res Result) {
	p.once.Do(func() {
		if p.timer != nil {
			p.timer.Stop()
		}
		close(p.closed)
		p.ch <- res
		close(p.ch)
	})
}

type table struct {
	mu      sync.Mutex
	next    uint32
	entries map[uint32]*pending
}

func newCorrelator() *table {
	return &table{next: 1, entries: make(map[uint32]*pending)}
}

func (t *table) allocateLocked() (uint32, bool) {
	start := t.next
	for {
		id := t.next
		t.next++
		if t.next == reservedZero || t.next == reservedMax {
			t.next++
		}

		if id != reservedZero && id != reservedMax {
			if _, taken := t.entries[id]; !taken {
				return id, true
			}
		}

		if t.next == start {
			return 0, false
		}
	}
}

func (t *table) Send(ctx context.Context, deadline time.Time) (uint32, <-chan Result, error) {
	t.mu.Lock()

	id, ok := t.allocateLocked()
	if !ok {
		t.mu.Unlock()
		return 0, nil, liberr.ResourceExhausted.Errorf("correlator: no request id available")
	}

	p := &pending{ch: make(chan Result, 1), closed: make(chan struct{})}
	t.entries[id] = p

	var wait time.Duration
	if !deadline.IsZero() {
		wait = time.Until(deadline)
		if wait < 0 {
			wait = 0
		}
	}
	t.mu.Unlock()

	if !deadline.IsZero() {
		p.timer = time.AfterFunc(wait, func() {
			t.mu.Lock()
			delete(t.entries, id)
			t.mu.Unlock()
			p.resolve(Result{Err: liberr.TimeoutRequest.Errorf("correlator: request %d timed out", id)})
		})
	}

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				t.Cancel(id)
			case <-p.closed:
			}
		}()
	}

	return id, p.ch, nil
}

func (t *table) Deliver(id uint32, payload []byte) bool {
	t.mu.Lock()
	p, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	t.mu.Unlock()

	if !ok {
		return false
	}
	p.resolve(Result{Payload: payload})
	return true
}

func (t *table) Cancel(id uint32) bool {
	t.mu.Lock()
	p, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	t.mu.Unlock()

	if !ok {
		return false
	}
	p.resolve(Result{Err: liberr.Cancelled.Errorf("correlator: request %d cancelled", id)})
	return true
}

func (t *table) CloseAll(err error) {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[uint32]*pending)
	t.mu.Unlock()

	for _, p := range entries {
		p.resolve(Result{Err: err})
	}
}

func (t *table) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
