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

package pipeline

import (
	"context"
	"sort"
	"sync"
)

type pipe struct {
	mu sync.RWMutex

	plugins []Plugin

	// middleware is kept sorted descending by priority (ties in
	// registration order) so Send can iterate it directly; Receive
	// iterates it in reverse.
	middleware []Middleware
}

func (p *pipe) RegisterPlugin(pl Plugin) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plugins = append(p.plugins, pl)
}

func (p *pipe) RegisterMiddleware(m Middleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, m)
	// sort.SliceStable preserves registration order among equal
	// priorities on both sides of the comparison.
	sort.SliceStable(p.middleware, func(i, j int) bool {
		return p.middleware[i].Priority() > p.middleware[j].Priority()
	})
}

func (p *pipe) snapshot() ([]Plugin, []Middleware) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	plugins := make([]Plugin, len(p.plugins))
	copy(plugins, p.plugins)
	mw := make([]Middleware, len(p.middleware))
	copy(mw, p.middleware)
	return plugins, mw
}

func (p *pipe) Connect(ctx context.Context, pctx Context) error {
	plugins, _ := p.snapshot()
	for _, pl := range plugins {
		if err := pl.WillConnect(ctx, pctx); err != nil {
			return err
		}
	}
	for _, pl := range plugins {
		pl.DidConnect(ctx, pctx)
	}
	return nil
}

func (p *pipe) Disconnect(ctx context.Context, pctx Context) error {
	plugins, _ := p.snapshot()
	for _, pl := range plugins {
		if err := pl.WillDisconnect(ctx, pctx); err != nil {
			return err
		}
	}
	for _, pl := range plugins {
		pl.DidDisconnect(ctx, pctx)
	}
	return nil
}

func (p *pipe) Error(ctx context.Context, pctx Context, err error) {
	plugins, _ := p.snapshot()
	for _, pl := range plugins {
		pl.OnError(ctx, pctx, err)
	}
}

func (p *pipe) Send(ctx context.Context, pctx Context, data []byte) ([]byte, error) {
	plugins, mw := p.snapshot()

	for _, pl := range plugins {
		transformed, err := pl.WillSend(ctx, pctx, data)
		if err != nil {
			return nil, err
		}
		data = transformed
	}

	for _, m := range mw {
		transformed, err := m.OnOutgoing(pctx, data)
		if err != nil {
			return nil, err
		}
		data = transformed
	}

	for _, pl := range plugins {
		pl.DidSend(ctx, pctx, data)
	}

	return data, nil
}

func (p *pipe) Receive(ctx context.Context, pctx Context, data []byte) ([]byte, error) {
	plugins, mw := p.snapshot()

	for _, pl := range plugins {
		transformed, err := pl.WillReceive(ctx, pctx, data)
		if err != nil {
			return nil, err
		}
		data = transformed
	}

	for i := len(mw) - 1; i >= 0; i-- {
		transformed, err := mw[i].OnIncoming(pctx, data)
		if err != nil {
			return nil, err
		}
		data = transformed
	}

	for _, pl := range plugins {
		pl.DidReceive(ctx, pctx, data)
	}

	return data, nil
}
