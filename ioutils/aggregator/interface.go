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

// Package aggregator serializes concurrent writes to a single output
// function behind a buffered channel and one processing goroutine, so a
// caller with many writers (one per accepted connection, say) never calls
// the underlying writer concurrently. hooksyslog uses it to batch log
// records onto a single remote syslog connection without blocking the
// caller on a slow network write.
package aggregator

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/fengmingdev/nexuskit/xatomic"
	librun "github.com/fengmingdev/nexuskit/runner/startstop"
)

var (
	// ErrInvalidWriter is returned by New when Config.FctWriter is nil.
	ErrInvalidWriter = errors.New("invalid writer")

	// ErrInvalidInstance is returned when the aggregator's internal state is
	// corrupted or when attempting to use an uninitialized instance.
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrStillRunning is returned by Start when the aggregator is already running.
	ErrStillRunning = errors.New("still running")

	// ErrClosedResources is returned by Write when attempting to write to an
	// aggregator that has been closed or whose context has been cancelled.
	ErrClosedResources = errors.New("closed resources")

	// closedChan is a pre-closed sentinel standing in for a closed write
	// channel, so chanClose never has to close a channel a concurrent Write
	// might still be sending on.
	closedChan = make(chan []byte, 1)
)

func init() {
	close(closedChan)
}

// Aggregator is a thread-safe write aggregator serializing concurrent
// writes to a single output function. Writes are buffered in a channel and
// drained by one goroutine, so FctWriter is never called concurrently with
// itself.
//
// The aggregator must be started with Start before accepting writes;
// Write before Start (or after Close) returns ErrClosedResources.
type Aggregator interface {
	context.Context
	librun.StartStop

	io.Closer
	io.Writer

	// SetLoggerError sets the error-logging callback. A nil fn disables it.
	SetLoggerError(fn func(msg string, err ...error))
	// SetLoggerInfo sets the info-logging callback. A nil fn disables it.
	SetLoggerInfo(fn func(msg string, arg ...any))

	// NbWaiting returns the number of Write calls currently blocked trying
	// to send into the internal channel.
	NbWaiting() int64
	// NbProcessing returns the number of items buffered in the channel
	// waiting for FctWriter to drain them.
	NbProcessing() int64
	// SizeWaiting returns the total byte size of blocked Write calls.
	SizeWaiting() int64
	// SizeProcessing returns the total byte size of buffered items.
	SizeProcessing() int64
}

// Config configures a New Aggregator.
type Config struct {
	// AsyncTimer, paired with AsyncFct, fires a periodic callback run in its
	// own goroutine (bounded by AsyncMax concurrent calls; <=0 means
	// unbounded). Zero or a nil AsyncFct disables it.
	AsyncTimer time.Duration
	AsyncMax   int
	AsyncFct   func(ctx context.Context)

	// SyncTimer, paired with SyncFct, fires a periodic callback run
	// synchronously on the aggregator's own processing goroutine. Zero or a
	// nil SyncFct disables it.
	SyncTimer time.Duration
	SyncFct   func(ctx context.Context)

	// BufWriter sizes the internal write channel. Zero defaults to 1.
	BufWriter int

	// FctWriter receives each queued write, in order, never concurrently.
	// Required.
	FctWriter func(p []byte) (n int, err error)
}

// New returns an Aggregator built from cfg. The aggregator starts stopped;
// call Start before the first Write.
func New(ctx context.Context, cfg Config) (Aggregator, error) {
	if cfg.FctWriter == nil {
		return nil, ErrInvalidWriter
	}

	if ctx == nil {
		ctx = context.Background()
	}

	a := &agg{
		x:  libatm.NewValue[context.Context](),
		n:  libatm.NewValue[context.CancelFunc](),
		r:  libatm.NewValue[librun.StartStop](),
		le: libatm.NewValue[func(msg string, err ...error)](),
		li: libatm.NewValue[func(msg string, arg ...any)](),
		at: time.Minute,
		am: -1,
		st: time.Minute,
		fw: cfg.FctWriter,
		sh: 1,
		ch: libatm.NewValue[chan []byte](),
		op: new(atomic.Bool),
		cd: new(atomic.Int64),
		cw: new(atomic.Int64),
		sd: new(atomic.Int64),
		sw: new(atomic.Int64),
		lc: sync.Mutex{},
	}
	a.ctxNew(ctx)
	a.op.Store(false)

	if cfg.AsyncMax > -1 {
		a.am = cfg.AsyncMax
	}
	if cfg.AsyncTimer > 0 && cfg.AsyncFct != nil {
		a.at = cfg.AsyncTimer
		a.af = cfg.AsyncFct
	}
	if cfg.SyncTimer > 0 && cfg.SyncFct != nil {
		a.st = cfg.SyncTimer
		a.sf = cfg.SyncFct
	}
	if cfg.BufWriter != 0 {
		a.sh = cfg.BufWriter
	}

	return a, nil
}
