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

// Package connection is the top-level facade: it wires the buffer,
// framing, pipeline, correlator, state machine, backoff, pool, rate-limit,
// tracing and metrics subsystems around one dialed endpoint into the
// single object an application actually holds.
//
// Connection owns nothing its subsystems don't already own correctly on
// their own; it only drives them in the right order and in response to
// the right events, the way golib's logger.New wires a formatter, hooks
// and an io.Writer together behind one Logger value instead of making a
// caller assemble them by hand.
package connection

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/fengmingdev/nexuskit/backoff"
	"github.com/fengmingdev/nexuskit/connstate"
	"github.com/fengmingdev/nexuskit/frame"
	"github.com/fengmingdev/nexuskit/logger"
	"github.com/fengmingdev/nexuskit/metrics"
	"github.com/fengmingdev/nexuskit/netwatch"
	"github.com/fengmingdev/nexuskit/pipeline"
	"github.com/fengmingdev/nexuskit/ratelimit"
	"github.com/fengmingdev/nexuskit/tracing"
	"github.com/fengmingdev/nexuskit/transport/stream"
	"github.com/fengmingdev/nexuskit/transport/ws"
)

// EndpointKind discriminates the tagged-union Endpoint per spec §3: Stream,
// WebSocket, or HigherLevel (not implemented by this core - a collaborator
// transport may still satisfy transportClient and be wired in directly by
// an embedder of this package).
type EndpointKind uint8

const (
	// EndpointStream dials a raw byte-stream (TCP/UDP/Unix) endpoint.
	EndpointStream EndpointKind = iota
	// EndpointWebSocket dials a WebSocket endpoint.
	EndpointWebSocket
)

// Endpoint is the tagged union of dialable endpoint kinds. Exactly one of
// Stream/WebSocket is read, selected by Kind.
type Endpoint struct {
	Kind      EndpointKind
	Stream    stream.Config
	WebSocket ws.Config
}

// Notification is a decoded, pipeline-processed inbound message that the
// framing adapter classified as a Notification rather than a Response to
// a pending Request.
type Notification struct {
	ConnectionID string
	Name         string
	Payload      []byte
}

// Config is the connection builder surface from spec §6: "{endpoint,
// timeout, heartbeat_interval, heartbeat_timeout, reconnection_strategy,
// tls, proxy, middlewares, plugins, id}", plus the optional collaborators
// (adapter, observer, rate limiters, tracer, metrics, logger) every
// subsystem already takes as an explicit dependency rather than a global.
type Config struct {
	// ID is this connection's stable identifier. A random one is
	// generated by NewID if left empty.
	ID string

	// Endpoint selects and configures the transport to dial.
	Endpoint Endpoint

	// Timeout bounds a single Connect attempt as the dial context's
	// deadline, on top of any dial timeout Endpoint itself carries (the
	// shorter one wins). It is also Request's default timeout. Zero uses
	// 30s.
	Timeout time.Duration

	// HeartbeatInterval is the period on which a keep-alive frame is
	// sent while Connected. Zero disables heartbeats.
	HeartbeatInterval time.Duration

	// HeartbeatTimeout bounds how long the connection waits for any
	// incoming traffic (heartbeat or otherwise) before treating the link
	// as dead and triggering the same path as an I/O error. Zero
	// disables the watchdog. The check runs on each heartbeat tick, so
	// it has no effect while HeartbeatInterval is zero.
	HeartbeatTimeout time.Duration

	// ReconnectionStrategy decides reconnect delays and whether a given
	// error warrants a retry at all. A nil strategy disables automatic
	// reconnection: any I/O error or failed Connect goes straight to
	// Disconnected.
	ReconnectionStrategy backoff.Strategy

	// TLS is consulted only when Endpoint.Kind's own config left its TLS
	// field nil - it never overrides an endpoint-supplied *tls.Config.
	// The core never builds its own TLS stack (non-goal); this is purely
	// a convenience for sharing one *tls.Config across many connections.
	TLS *tls.Config

	// Proxy records a proxy address for a collaborator dialer to consult.
	// The core does not implement proxy handshakes itself (non-goal);
	// this field exists so the builder surface spec §6 names is not
	// silently dropped.
	Proxy string

	// Middlewares and Plugins are registered onto this connection's
	// pipeline.Pipeline in the order given.
	Middlewares []pipeline.Middleware
	Plugins     []pipeline.Plugin

	// Adapter frames outgoing messages and classifies incoming bytes. A
	// nil Adapter defaults to frame.NewBinary().
	Adapter frame.Adapter

	// Observer, when non-nil, lets LinkUp/LinkDown events pre-empt a
	// reconnection backoff delay and fast-fail a dead Connected link, per
	// spec §4.9. Typically shared across every connection in a process
	// via netwatch.Default().
	Observer netwatch.Observer

	// OutgoingLimiter, when non-nil, gates Send and Request;
	// IncomingLimiter, when non-nil, gates inbound Response dispatch
	// (spec §6 "Rate limit: ... limit_outgoing, limit_incoming").
	// Inbound Notifications are not rate limited.
	OutgoingLimiter ratelimit.Limiter
	IncomingLimiter ratelimit.Limiter

	// Tracer, when non-nil, wraps Send in a Client span. Request is not
	// traced.
	Tracer tracing.Tracer

	// Metrics, when non-nil, counts the bytes Send writes under
	// "connection.send.bytes". No connect, reconnect or receive counters
	// and no latency timings are recorded, and metrics are not tagged by
	// ID.
	Metrics metrics.Collector

	// OnNotification receives every inbound message the adapter
	// classified as a Notification (not a Response to a pending
	// Request), after it has passed through the pipeline's incoming
	// middleware. A nil OnNotification drops notifications silently.
	OnNotification func(Notification)

	// Log is the dependency-injected logging sink, golib's FuncLog idiom.
	// A nil Log disables logging.
	Log logger.FuncLog
}

// Connection is a single managed endpoint: dial-with-retry, framing,
// pipeline, request correlation and lifecycle observation, behind one
// handle an application holds for the life of the link.
//
// All methods are safe for concurrent use.
type Connection interface {
	// ID returns this connection's stable identifier.
	ID() string

	// Connect starts the connection's managed lifecycle: dial, and on
	// success run the read pump and heartbeat until Disconnect is called,
	// the context passed to Connect is cancelled, or reconnection is
	// exhausted. Connect returns once the first dial attempt (including
	// any reconnection retries already due) has been launched; it does
	// not block for the life of the connection.
	Connect(ctx context.Context) error

	// Disconnect gracefully tears down the connection: transitions
	// through Disconnecting to Disconnected, stops the managed lifecycle,
	// and fails every pending Request with NotConnected.
	Disconnect(ctx context.Context) error

	// Send transforms data through the adapter and outgoing pipeline and
	// middleware and writes it to the wire. It does not wait for a
	// response; use Request for that.
	Send(ctx context.Context, data []byte) error

	// Request sends data like Send, but allocates a correlation id and
	// waits up to timeout for a matching Response frame.
	Request(ctx context.Context, data []byte, timeout time.Duration) ([]byte, error)

	// State returns the current lifecycle state.
	State() connstate.State

	// Subscribe registers fn to be called after every state transition.
	// It returns an unsubscribe function.
	Subscribe(fn connstate.Listener) (unsubscribe func())

	// Close is Disconnect with a background context, for use in a defer.
	Close() error
}

// New validates cfg and returns a Connection ready to Connect.
func New(cfg Config) (Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newConn(cfg)
}
