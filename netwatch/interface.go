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

// Package netwatch implements the network-change observer (spec §4.9):
// polling the host's network interfaces on an interval, classifying the
// primary active one, and emitting LinkUp/LinkDown/InterfaceChanged/
// StatusChanged events so a connection can pre-empt a reconnect backoff on
// LinkUp or tear down and start reconnecting on LinkDown.
package netwatch

import (
	"context"
	"time"

	"github.com/fengmingdev/nexuskit/logger"
)

// Kind classifies a network interface the way the connection core's
// reconnection policy cares about: whether traffic over it is cheap,
// metered, or effectively free.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindLoopback
	KindEthernet
	KindWiFi
	KindCellular
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindLoopback:
		return "loopback"
	case KindEthernet:
		return "ethernet"
	case KindWiFi:
		return "wifi"
	case KindCellular:
		return "cellular"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Interface is one host network interface as Scan observes it.
type Interface struct {
	Name string
	Kind Kind
	Up   bool
}

// Scanner enumerates the host's current network interfaces. The default
// Scanner (see New) is backed by gopsutil; tests and non-Linux
// environments may supply their own.
type Scanner interface {
	Scan() ([]Interface, error)
}

// Event is the sealed set of notifications an Observer can emit.
type Event interface{ isNetwatchEvent() }

// LinkUp fires when a previously-absent or down primary interface becomes
// available. Kind is the newly active interface's classification.
type LinkUp struct{ Kind Kind }

// LinkDown fires when the primary interface disappears or goes down with
// no replacement.
type LinkDown struct{}

// InterfaceChanged fires when the primary interface switches from one
// Kind to a different one without an intervening LinkDown (e.g. Wi-Fi to
// cellular handover).
type InterfaceChanged struct{ From, To Kind }

// StatusChanged fires whenever the expensive/constrained classification of
// the primary interface changes, independent of a Kind change.
type StatusChanged struct{ Expensive, Constrained bool }

func (LinkUp) isNetwatchEvent()           {}
func (LinkDown) isNetwatchEvent()         {}
func (InterfaceChanged) isNetwatchEvent() {}
func (StatusChanged) isNetwatchEvent()    {}

// Listener receives Observer events. A Listener must not block; do
// expensive work in a goroutine of its own.
type Listener func(Event)

// Observer polls the host's network interfaces and notifies Listeners of
// changes relevant to a connection's reconnection policy.
//
// All methods are safe for concurrent use.
type Observer interface {
	// Start begins polling in a goroutine derived from ctx. Calling Start
	// while already running restarts the poll loop.
	Start(ctx context.Context) error
	// Stop cancels the poll loop and blocks until it has exited.
	Stop(ctx context.Context) error
	// IsRunning reports whether the poll loop is currently active.
	IsRunning() bool

	// Subscribe registers fn and returns a function that unsubscribes it.
	Subscribe(fn Listener) (cancel func())
}

// Expensive reports whether Kind should be treated as a metered transport
// (spec §4.9's StatusChanged.expensive), matching the conventional
// mobile-platform classification: cellular is expensive, everything else
// is not.
func (k Kind) Expensive() bool { return k == KindCellular }

// Constrained reports whether Kind should be treated as bandwidth/latency
// constrained (spec §4.9's StatusChanged.constrained). Cellular links are
// the only Kind this package classifies as constrained by default.
func (k Kind) Constrained() bool { return k == KindCellular }

// New returns an Observer polling scanner every interval (a non-positive
// interval falls back to the package's default poll period via
// runner/ticker). log follows the connection core's dependency-injection
// idiom.
func New(scanner Scanner, interval time.Duration, log logger.FuncLog) Observer {
	return newObserver(scanner, interval, log)
}

// Default returns an Observer backed by the real host network interface
// scanner (gopsutil). This is the package's one lazily-constructed
// global, per spec §9's guidance on default-instance singletons: it is
// never required for correctness of a single Connection, which may
// instead be given its own Observer explicitly.
func Default(interval time.Duration, log logger.FuncLog) Observer {
	return New(NewGopsutilScanner(), interval, log)
}
