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

// Package connstate implements the connection lifecycle state machine
// (spec §4.7): Disconnected, Connecting, Connected, Reconnecting{attempt},
// Disconnecting, with a single enumerated transition table. Every other
// transition fails with an errors.InvalidStateTransition error rather than
// being silently coerced.
//
// A Machine is single-writer: spec §5 pins the state machine to the
// connection's own logical executor, so Apply is safe to call from
// multiple goroutines only in the sense that it won't corrupt state -
// callers that need a specific event ordering must serialise their own
// Apply calls (the connection facade does this for its own use).
package connstate

import liberr "github.com/fengmingdev/nexuskit/errors"

// State is one of the five lifecycle states. Reconnecting carries an
// attempt counter, so it compares unequal across attempts even though the
// Kind is the same - use Kind() to test state category.
type State struct {
	kind    Kind
	attempt uint
}

// Kind discriminates the five state categories.
type Kind uint8

const (
	Disconnected Kind = iota
	Connecting
	Connected
	Reconnecting
	Disconnecting
)

func (k Kind) String() string {
	switch k {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	case Disconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// Kind returns this state's category.
func (s State) Kind() Kind { return s.kind }

// Attempt returns the reconnect attempt number; zero outside Reconnecting.
func (s State) Attempt() uint { return s.attempt }

func (s State) String() string {
	if s.kind == Reconnecting {
		return s.kind.String()
	}
	return s.kind.String()
}

// Equal reports whether two states are identical, including attempt
// number for Reconnecting.
func (s State) Equal(o State) bool { return s.kind == o.kind && s.attempt == o.attempt }

var (
	StateDisconnected  = State{kind: Disconnected}
	StateConnecting    = State{kind: Connecting}
	StateConnected     = State{kind: Connected}
	StateDisconnecting = State{kind: Disconnecting}
)

// StateReconnecting returns the Reconnecting state for the given attempt.
func StateReconnecting(attempt uint) State { return State{kind: Reconnecting, attempt: attempt} }

// Event is an input to the state machine. Events beyond the attempt
// counter carry no payload: reconnection delay selection is backoff's job,
// not the state machine's.
type Event uint8

const (
	// EventConnect is the caller-initiated "start connecting" request.
	EventConnect Event = iota
	// EventConnectSucceeded marks a dial/handshake success.
	EventConnectSucceeded
	// EventConnectFailed marks a dial/handshake failure; Apply's
	// reconnectOK argument decides Reconnecting vs. Disconnected.
	EventConnectFailed
	// EventLocalDisconnect is a caller-initiated graceful teardown.
	EventLocalDisconnect
	// EventIOError is an I/O failure on an established connection.
	EventIOError
	// EventReconnectSucceeded marks a reconnection attempt's success.
	EventReconnectSucceeded
	// EventReconnectFailed marks a reconnection attempt's failure.
	EventReconnectFailed
	// EventDisconnectComplete marks the end of a graceful teardown.
	EventDisconnectComplete
)

// Listener receives every successful transition, in order.
type Listener func(from, to State)

// Machine is the connection lifecycle state machine.
//
// All methods are safe for concurrent use; Apply calls are serialised
// against each other, but spec §5 still expects the caller (the connection
// facade) to drive Apply from its own single logical executor so that
// event ordering reflects real-world event ordering rather than goroutine
// scheduling order.
type Machine interface {
	// Current returns the current state.
	Current() State

	// Apply applies event, returning the new state, or an
	// InvalidStateTransition error (state.errors.InvalidStateTransition) if
	// event isn't valid from the current state. reconnectOK, used only for
	// EventConnectFailed/EventIOError, reports whether the reconnection
	// strategy allows another attempt; when false those events transition
	// to Disconnected instead of Reconnecting{1}. maxAttemptReached, used
	// only for EventReconnectFailed, reports whether the strategy has
	// exhausted its attempt budget.
	Apply(event Event, reconnectOK, maxAttemptReached bool) (State, error)

	// Subscribe registers fn to be called after every successful
	// transition. It returns an unsubscribe function.
	Subscribe(fn Listener) (unsubscribe func())
}

// New returns a Machine starting in Disconnected.
func New() Machine {
	return &machine{state: StateDisconnected}
}

// ErrInvalidTransition is the code used for every rejected Apply call.
var ErrInvalidTransition = liberr.InvalidStateTransition
