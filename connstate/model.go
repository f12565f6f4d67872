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

package connstate

import (
	"fmt"
	"sync"

	liberr "github.com/fengmingdev/nexuskit/errors"
)

type machine struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
}

func (m *machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine) Subscribe(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.listeners) {
			m.listeners[idx] = nil
		}
	}
}

func invalid(from State, event Event) error {
	return liberr.InvalidStateTransition.Errorf(
		"connstate: event %d invalid from state %s", event, from.Kind())
}

// Apply implements the transition table in spec §4.7. See interface.go for
// the event/parameter semantics.
func (m *machine) Apply(event Event, reconnectOK, maxAttemptReached bool) (State, error) {
	m.mu.Lock()

	from := m.state
	var to State
	var err error

	switch event {
	case EventConnect:
		switch from.kind {
		case Disconnected:
			to = StateConnecting
		case Reconnecting:
			// "connect() from Reconnecting{0} is accepted (first attempt)."
			if from.attempt == 0 {
				to = StateConnecting
			} else {
				err = invalid(from, event)
			}
		default:
			err = invalid(from, event)
		}

	case EventConnectSucceeded:
		if from.kind == Connecting {
			to = StateConnected
		} else {
			err = invalid(from, event)
		}

	case EventConnectFailed:
		if from.kind == Connecting {
			if reconnectOK {
				to = StateReconnecting(1)
			} else {
				to = StateDisconnected
			}
		} else {
			err = invalid(from, event)
		}

	case EventLocalDisconnect:
		if from.kind == Connected {
			to = StateDisconnecting
		} else {
			err = invalid(from, event)
		}

	case EventIOError:
		if from.kind == Connected {
			if reconnectOK {
				to = StateReconnecting(1)
			} else {
				to = StateDisconnected
			}
		} else {
			err = invalid(from, event)
		}

	case EventReconnectSucceeded:
		if from.kind == Reconnecting {
			to = StateConnected
		} else {
			err = invalid(from, event)
		}

	case EventReconnectFailed:
		if from.kind == Reconnecting {
			if maxAttemptReached {
				to = StateDisconnected
			} else {
				to = StateReconnecting(from.attempt + 1)
			}
		} else {
			err = invalid(from, event)
		}

	case EventDisconnectComplete:
		if from.kind == Disconnecting {
			to = StateDisconnected
		} else {
			err = invalid(from, event)
		}

	default:
		err = fmt.Errorf("connstate: unknown event %d", event)
	}

	if err != nil {
		m.mu.Unlock()
		return from, err
	}

	m.state = to
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, l := range listeners {
		if l != nil {
			l(from, to)
		}
	}
	return to, nil
}
