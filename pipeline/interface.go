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

// Package pipeline composes two ordered interceptor families around a
// connection's data path: Plugins, coarse connection-scoped lifecycle
// hooks, and Middleware, fine per-message transforms ordered by priority.
//
// Neither family buffers data itself; a pipeline invocation is atomic
// with respect to its own ordering only - if a step fails partway, the
// steps that already ran are not undone, the error just propagates and
// the message is dropped.
package pipeline

import "context"

// Context carries the metadata every hook in a pipeline invocation sees.
type Context struct {
	ConnectionID string
	MessageID    uint32
	Metadata     map[string]string
}

// Plugin is a coarse, connection-scoped interceptor. A failure returned
// from a Will* hook aborts the operation it guards; Did* hooks are
// notifications only and their errors are reported but never abort
// anything already in flight.
//
// Every method receives ctx for cancellation of any work the hook itself
// performs (e.g. an async audit write); it is not propagated into the
// data path.
type Plugin interface {
	// Name identifies the plugin for logging and error reporting.
	Name() string

	WillConnect(ctx context.Context, pctx Context) error
	DidConnect(ctx context.Context, pctx Context)

	WillDisconnect(ctx context.Context, pctx Context) error
	DidDisconnect(ctx context.Context, pctx Context)

	// OnError is invoked whenever the connection reports an error that
	// isn't already being delivered through a Will*/Did* hook.
	OnError(ctx context.Context, pctx Context, err error)

	WillSend(ctx context.Context, pctx Context, data []byte) ([]byte, error)
	DidSend(ctx context.Context, pctx Context, data []byte)

	WillReceive(ctx context.Context, pctx Context, data []byte) ([]byte, error)
	DidReceive(ctx context.Context, pctx Context, data []byte)
}

// Middleware is a fine, per-message data-plane interceptor. Order is
// determined by Priority: higher runs first on outgoing, and the same
// ordering is reversed on incoming, so a pair like compress-then-encrypt
// outgoing decrypts-then-decompresses incoming symmetrically. Middleware
// registered at equal priority runs in registration order.
type Middleware interface {
	Name() string
	Priority() int

	OnOutgoing(ctx Context, data []byte) ([]byte, error)
	OnIncoming(ctx Context, data []byte) ([]byte, error)
}

// Pipeline runs the registered Plugins and Middleware over a connection's
// lifecycle events and data path, in the order and with the
// abort-on-Will-failure semantics described on Plugin and Middleware.
//
// All methods are safe to call concurrently with registration, but two
// Send/Receive invocations on the same Pipeline are not serialised against
// each other - a caller that requires strict outbound ordering must
// serialise its own calls to Send (see the connection state machine,
// which runs one logical executor per connection).
type Pipeline interface {
	RegisterPlugin(p Plugin)
	RegisterMiddleware(m Middleware)

	Connect(ctx context.Context, pctx Context) error
	Disconnect(ctx context.Context, pctx Context) error
	Error(ctx context.Context, pctx Context, err error)

	// Send runs WillSend/middleware-outgoing/DidSend over data in order,
	// returning the fully transformed bytes ready for the wire.
	Send(ctx context.Context, pctx Context, data []byte) ([]byte, error)

	// Receive runs WillReceive/middleware-incoming/DidReceive over data in
	// order, returning the fully transformed bytes ready for the adapter.
	Receive(ctx context.Context, pctx Context, data []byte) ([]byte, error)
}

// New returns an empty Pipeline.
func New() Pipeline {
	return &pipe{}
}
