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

package pool

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	nerrors "github.com/fengmingdev/nexuskit/errors"
	"github.com/fengmingdev/nexuskit/logger"
)

type slot[T Resource] struct {
	res        T
	createdAt  time.Time
	lastUsed   time.Time
	usageCount uint64
	inUse      bool
	pending    bool // reserved capacity, factory still running
}

type pool[T Resource] struct {
	cfg     Config
	factory Factory[T]
	log     logger.FuncLog

	mu      sync.Mutex
	slots   []*slot[T]
	byRes   map[T]*slot[T]
	state   State
	waiters []chan struct{}

	healthCancel context.CancelFunc
	healthDone   chan struct{}
}

func newPool[T Resource](cfg Config, factory Factory[T], log logger.FuncLog) (Pool[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Selector == nil {
		cfg.Selector = RoundRobin()
	}

	p := &pool[T]{
		cfg:     cfg,
		factory: factory,
		log:     log,
		byRes:   make(map[T]*slot[T]),
		state:   StateOpen,
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.healthCancel = cancel
	p.healthDone = make(chan struct{})
	if cfg.HealthCheckInterval > 0 {
		go p.healthLoop(ctx)
	} else {
		close(p.healthDone)
	}

	return p, nil
}

func (p *pool[T]) logf() logger.Logger {
	if p.log != nil {
		if l := p.log(); l != nil {
			return l
		}
	}
	return nil
}

// pickIdleLocked runs the configured Selector over every idle slot and
// returns its index in p.slots, or -1 if none is idle. Must be called with
// p.mu held.
func (p *pool[T]) pickIdleLocked() int {
	var idleIdx []int
	var usage []uint64
	var lastUsed []time.Time
	for i, s := range p.slots {
		if s.pending || s.inUse {
			continue
		}
		idleIdx = append(idleIdx, i)
		usage = append(usage, s.usageCount)
		lastUsed = append(lastUsed, s.lastUsed)
	}
	if len(idleIdx) == 0 {
		return -1
	}
	pick := p.cfg.Selector.Select(len(idleIdx), usage, lastUsed)
	if pick < 0 || pick >= len(idleIdx) {
		return -1
	}
	return idleIdx[pick]
}

func (p *pool[T]) expiredLocked(s *slot[T], now time.Time) bool {
	if p.cfg.MaxLifetime > 0 && now.Sub(s.createdAt) > p.cfg.MaxLifetime {
		return true
	}
	if p.cfg.IdleTimeout > 0 && now.Sub(s.lastUsed) > p.cfg.IdleTimeout {
		return true
	}
	return false
}

// removeLocked drops s from the pool's bookkeeping without closing it.
// Must be called with p.mu held.
func (p *pool[T]) removeLocked(s *slot[T]) {
	for i, c := range p.slots {
		if c == s {
			p.slots = append(p.slots[:i], p.slots[i+1:]...)
			break
		}
	}
	var zero T
	if s.res != zero {
		delete(p.byRes, s.res)
	}
}

func (p *pool[T]) evict(s *slot[T]) {
	p.mu.Lock()
	p.removeLocked(s)
	p.mu.Unlock()
	_ = s.res.Close()
}

func (p *pool[T]) wakeOneLocked() {
	if len(p.waiters) == 0 {
		return
	}
	ch := p.waiters[0]
	p.waiters = p.waiters[1:]
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (p *pool[T]) removeWaiter(ch chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, w := range p.waiters {
		if w == ch {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			break
		}
	}
}

func (p *pool[T]) Acquire(ctx context.Context) (T, error) {
	var zero T

	var deadline <-chan time.Time
	if p.cfg.AcquireTimeout > 0 {
		timer := time.NewTimer(p.cfg.AcquireTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		p.mu.Lock()
		switch p.state {
		case StateClosed:
			p.mu.Unlock()
			return zero, nerrors.PoolClosed.Errorf("pool: closed")
		case StateDraining:
			p.mu.Unlock()
			return zero, nerrors.PoolDraining.Errorf("pool: draining")
		}

		now := time.Now()
		if idx := p.pickIdleLocked(); idx >= 0 {
			s := p.slots[idx]
			if p.expiredLocked(s, now) {
				p.removeLocked(s)
				p.mu.Unlock()
				_ = s.res.Close()
				continue
			}
			s.inUse = true
			p.mu.Unlock()

			if p.cfg.ValidateOnAcquire && !s.res.Validate(ctx) {
				p.evict(s)
				continue
			}
			p.mu.Lock()
			s.lastUsed = time.Now()
			s.usageCount++
			p.mu.Unlock()
			return s.res, nil
		}

		if len(p.slots) < p.cfg.Max {
			placeholder := &slot[T]{createdAt: now, pending: true}
			p.slots = append(p.slots, placeholder)
			p.mu.Unlock()

			res, err := p.factory(ctx)
			if err != nil {
				p.mu.Lock()
				p.removeLocked(placeholder)
				p.wakeOneLocked()
				p.mu.Unlock()
				return zero, err
			}

			p.mu.Lock()
			placeholder.res = res
			placeholder.pending = false
			placeholder.inUse = true
			placeholder.lastUsed = time.Now()
			placeholder.usageCount = 1
			p.byRes[res] = placeholder
			p.mu.Unlock()
			return res, nil
		}

		if !p.cfg.WaitWhenFull {
			p.mu.Unlock()
			return zero, nerrors.PoolExhausted.Errorf("pool: exhausted")
		}

		ch := make(chan struct{}, 1)
		p.waiters = append(p.waiters, ch)
		p.mu.Unlock()

		var ctxDone <-chan struct{}
		if ctx != nil {
			ctxDone = ctx.Done()
		}

		select {
		case <-ch:
			continue
		case <-deadline:
			p.removeWaiter(ch)
			return zero, nerrors.TimeoutAcquire.Errorf("pool: acquire timed out")
		case <-ctxDone:
			p.removeWaiter(ch)
			return zero, nerrors.Cancelled.Errorf("pool: acquire cancelled")
		}
	}
}

func (p *pool[T]) Release(r T) {
	p.mu.Lock()
	s, ok := p.byRes[r]
	if !ok || !s.inUse {
		p.mu.Unlock()
		if l := p.logf(); l != nil {
			l.Warning("pool: release of a resource not checked out from this pool", nil)
		}
		return
	}
	s.inUse = false
	p.mu.Unlock()

	if p.cfg.ValidateOnRelease && !s.res.Validate(context.Background()) {
		p.evict(s)
		p.mu.Lock()
		p.wakeOneLocked()
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	p.wakeOneLocked()
	p.mu.Unlock()
}

func (p *pool[T]) activeCountLocked() int {
	n := 0
	for _, s := range p.slots {
		if s.inUse {
			n++
		}
	}
	return n
}

func (p *pool[T]) Drain(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateClosed {
		p.mu.Unlock()
		return nil
	}
	p.state = StateDraining
	p.mu.Unlock()

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		p.mu.Lock()
		if p.activeCountLocked() == 0 {
			remaining := p.slots
			p.slots = nil
			p.byRes = make(map[T]*slot[T])
			p.state = StateClosed
			p.mu.Unlock()

			for _, s := range remaining {
				if !s.pending {
					_ = s.res.Close()
				}
			}
			p.healthCancel()
			<-p.healthDone
			return nil
		}
		p.mu.Unlock()

		select {
		case <-ctx.Done():
			return nerrors.Cancelled.Errorf("pool: drain cancelled")
		case <-ticker.C:
		}
	}
}

func (p *pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := Stats{Waiters: len(p.waiters)}
	for _, s := range p.slots {
		if s.inUse {
			st.Active++
		} else if !s.pending {
			st.Idle++
		}
	}
	return st
}

func (p *pool[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// healthLoop periodically validates every idle resource concurrently via
// errgroup, evicting any that fails.
func (p *pool[T]) healthLoop(ctx context.Context) {
	defer close(p.healthDone)

	ticker := time.NewTicker(p.cfg.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runHealthCheck(ctx)
		}
	}
}

func (p *pool[T]) runHealthCheck(ctx context.Context) {
	now := time.Now()

	p.mu.Lock()
	var candidates []*slot[T]
	for _, s := range p.slots {
		if s.inUse || s.pending {
			continue
		}
		if p.cfg.IdleTimeout > 0 && now.Sub(s.lastUsed) > p.cfg.IdleTimeout {
			p.removeLocked(s)
			go func(s *slot[T]) { _ = s.res.Close() }(s)
			continue
		}
		candidates = append(candidates, s)
	}
	p.mu.Unlock()

	if len(candidates) > 0 {
		hctx := ctx
		var cancel context.CancelFunc
		if p.cfg.HealthCheckTimeout > 0 {
			hctx, cancel = context.WithTimeout(ctx, p.cfg.HealthCheckTimeout)
			defer cancel()
		}

		g, gctx := errgroup.WithContext(hctx)
		failed := make([]*slot[T], len(candidates))
		for i, s := range candidates {
			i, s := i, s
			g.Go(func() error {
				if !s.res.Validate(gctx) {
					failed[i] = s
				}
				return nil
			})
		}
		_ = g.Wait()

		for _, s := range failed {
			if s != nil {
				p.evict(s)
			}
		}
	}

	p.topUp(ctx)
}

// topUp creates resources until the pool holds at least Config.Min, best
// effort: a Factory error here is swallowed since this runs on the
// background health task, not in response to a caller's Acquire.
func (p *pool[T]) topUp(ctx context.Context) {
	for {
		p.mu.Lock()
		if p.state != StateOpen || len(p.slots) >= p.cfg.Min {
			p.mu.Unlock()
			return
		}
		placeholder := &slot[T]{createdAt: time.Now(), pending: true}
		p.slots = append(p.slots, placeholder)
		p.mu.Unlock()

		res, err := p.factory(ctx)
		if err != nil {
			p.mu.Lock()
			p.removeLocked(placeholder)
			p.mu.Unlock()
			return
		}

		p.mu.Lock()
		placeholder.res = res
		placeholder.pending = false
		placeholder.lastUsed = time.Now()
		p.byRes[res] = placeholder
		p.wakeOneLocked()
		p.mu.Unlock()
	}
}
