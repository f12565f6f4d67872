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

package netwatch

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fengmingdev/nexuskit/logger"
	"github.com/fengmingdev/nexuskit/runner/ticker"
)

const defaultInterval = 5 * time.Second

// linuxSysfsNetPath is watched for immediate rescans on Linux, where a
// link transition touches this directory; watching it is best-effort and
// its absence (any non-Linux OS, or a sandboxed/containerized environment
// without /sys) never prevents the poll loop itself from running.
const linuxSysfsNetPath = "/sys/class/net"

type observer struct {
	scanner  Scanner
	interval time.Duration
	log      logger.FuncLog

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int

	primary    *Interface
	expensive  bool
	constrained bool

	tck     ticker.Ticker
	watcher *fsnotify.Watcher
}

func newObserver(scanner Scanner, interval time.Duration, log logger.FuncLog) *observer {
	if interval <= 0 {
		interval = defaultInterval
	}
	o := &observer{
		scanner:   scanner,
		interval:  interval,
		log:       log,
		listeners: make(map[int]Listener),
	}
	o.tck = ticker.New(interval, o.tick)
	return o
}

func (o *observer) logf() logger.Logger {
	if o.log != nil {
		if l := o.log(); l != nil {
			return l
		}
	}
	return nil
}

func (o *observer) Subscribe(fn Listener) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

func (o *observer) emit(ev Event) {
	o.mu.Lock()
	fns := make([]Listener, 0, len(o.listeners))
	for _, fn := range o.listeners {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (o *observer) Start(ctx context.Context) error {
	if runtime.GOOS == "linux" {
		if w, err := fsnotify.NewWatcher(); err == nil {
			if err := w.Add(linuxSysfsNetPath); err == nil {
				o.watcher = w
				go o.watchFS(ctx, w)
			} else {
				_ = w.Close()
				if l := o.logf(); l != nil {
					l.Debug("netwatch: sysfs watch unavailable, polling only", err)
				}
			}
		}
	}

	return o.tck.Start(ctx)
}

func (o *observer) watchFS(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-w.Events:
			if !ok {
				return
			}
			o.tck.Restart(ctx)
		case _, ok := <-w.Errors:
			if !ok {
				return
			}
		}
	}
}

func (o *observer) Stop(ctx context.Context) error {
	return o.tck.Stop(ctx)
}

func (o *observer) IsRunning() bool { return o.tck.IsRunning() }

func (o *observer) tick(ctx context.Context, t *time.Ticker) error {
	ifaces, err := o.scanner.Scan()
	if err != nil {
		if l := o.logf(); l != nil {
			l.Error("netwatch: scan failed", err)
		}
		return err
	}

	next := pickPrimary(ifaces)

	o.mu.Lock()
	prev := o.primary
	prevExpensive, prevConstrained := o.expensive, o.constrained
	o.primary = next
	if next != nil {
		o.expensive = next.Kind.Expensive()
		o.constrained = next.Kind.Constrained()
	} else {
		o.expensive, o.constrained = false, false
	}
	newExpensive, newConstrained := o.expensive, o.constrained
	o.mu.Unlock()

	switch {
	case prev == nil && next != nil:
		o.emit(LinkUp{Kind: next.Kind})
	case prev != nil && next == nil:
		o.emit(LinkDown{})
	case prev != nil && next != nil && prev.Kind != next.Kind:
		o.emit(InterfaceChanged{From: prev.Kind, To: next.Kind})
	}

	if newExpensive != prevExpensive || newConstrained != prevConstrained {
		o.emit(StatusChanged{Expensive: newExpensive, Constrained: newConstrained})
	}

	return nil
}

// pickPrimary chooses the interface a connection would actually route
// over: the first up, non-loopback interface in priority order
// (Ethernet, then Wi-Fi, then cellular, then anything else), breaking
// ties within a priority tier by name for determinism.
func pickPrimary(ifaces []Interface) *Interface {
	priority := map[Kind]int{
		KindEthernet: 0,
		KindWiFi:     1,
		KindCellular: 2,
		KindOther:    3,
	}

	var candidates []Interface
	for _, i := range ifaces {
		if !i.Up || i.Kind == KindLoopback || i.Kind == KindUnknown {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		pa, pb := priority[candidates[a].Kind], priority[candidates[b].Kind]
		if pa != pb {
			return pa < pb
		}
		return candidates[a].Name < candidates[b].Name
	})

	out := candidates[0]
	return &out
}
