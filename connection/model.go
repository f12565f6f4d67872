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

package connection

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fengmingdev/nexuskit/backoff"
	"github.com/fengmingdev/nexuskit/buffer"
	"github.com/fengmingdev/nexuskit/connstate"
	"github.com/fengmingdev/nexuskit/correlator"
	liberr "github.com/fengmingdev/nexuskit/errors"
	"github.com/fengmingdev/nexuskit/frame"
	mapclsr "github.com/fengmingdev/nexuskit/ioutils/mapCloser"
	"github.com/fengmingdev/nexuskit/logger"
	"github.com/fengmingdev/nexuskit/netwatch"
	"github.com/fengmingdev/nexuskit/pipeline"
	"github.com/fengmingdev/nexuskit/runner/startstop"
	"github.com/fengmingdev/nexuskit/runner/ticker"
	"github.com/fengmingdev/nexuskit/tracing"
	"github.com/fengmingdev/nexuskit/transport/stream"
	"github.com/fengmingdev/nexuskit/transport/ws"
)

type conn struct {
	cfg Config
	id  string

	transport transportClient
	buf       buffer.Buffer
	adapter   frame.Adapter
	pipe      pipeline.Pipeline
	corr      correlator.Correlator
	machine   connstate.Machine
	strategy  backoff.Strategy

	loop      startstop.StartStop
	heartbeat ticker.Ticker

	obsUnsubscribe func()
	linkUp         chan struct{}

	msgID        uint32
	lastIncoming atomic.Int64

	log logger.FuncLog
}

func newConn(cfg Config) (*conn, error) {
	adapter := cfg.Adapter
	if adapter == nil {
		adapter = frame.NewBinary()
	}

	transportLog := logAdapter(cfg.Log)

	var t transportClient
	switch cfg.Endpoint.Kind {
	case EndpointStream:
		cli, err := stream.New(cfg.Endpoint.Stream, transportLog)
		if err != nil {
			return nil, err
		}
		t = newStreamTransport(cli)
	case EndpointWebSocket:
		cli, err := ws.New(cfg.Endpoint.WebSocket, transportLog)
		if err != nil {
			return nil, err
		}
		t = newWSTransport(cli)
	default:
		return nil, liberr.InvalidEndpoint.Errorf("connection: unknown endpoint kind %d", cfg.Endpoint.Kind)
	}

	pl := pipeline.New()
	for _, m := range cfg.Middlewares {
		pl.RegisterMiddleware(m)
	}
	for _, p := range cfg.Plugins {
		pl.RegisterPlugin(p)
	}

	c := &conn{
		cfg:       cfg,
		id:        cfg.ID,
		transport: t,
		buf:       buffer.New(),
		adapter:   adapter,
		pipe:      pl,
		corr:      correlator.New(),
		machine:   connstate.New(),
		strategy:  cfg.ReconnectionStrategy,
		linkUp:    make(chan struct{}, 1),
		log:       cfg.Log,
	}
	c.loop = startstop.New(c.run, c.teardown)
	if cfg.HeartbeatInterval > 0 {
		c.heartbeat = ticker.New(cfg.HeartbeatInterval, c.onHeartbeatTick)
	}
	return c, nil
}

// logAdapter bridges the core's logger.FuncLog (func() logger.Logger)
// dependency-injection idiom into the narrower func(format string,
// args...interface{}) shape transport/stream and transport/ws expect,
// so the facade can hand its own Log down to the endpoint it dials.
func logAdapter(l logger.FuncLog) func(string, ...interface{}) {
	return func(format string, args ...interface{}) {
		if l == nil {
			return
		}
		lg := l()
		if lg == nil {
			return
		}
		lg.Debug(fmt.Sprintf(format, args...), nil)
	}
}

func (c *conn) ID() string { return c.id }

func (c *conn) State() connstate.State { return c.machine.Current() }

func (c *conn) Subscribe(fn connstate.Listener) func() { return c.machine.Subscribe(fn) }

func (c *conn) Connect(ctx context.Context) error {
	if c.cfg.Observer != nil && c.obsUnsubscribe == nil {
		c.obsUnsubscribe = c.cfg.Observer.Subscribe(c.onNetworkEvent)
	}
	return c.loop.Start(ctx)
}

func (c *conn) Disconnect(ctx context.Context) error {
	if c.machine.Current().Kind() == connstate.Connected {
		if _, err := c.machine.Apply(connstate.EventLocalDisconnect, false, false); err != nil {
			return err
		}
	}
	err := c.loop.Stop(ctx)
	if c.obsUnsubscribe != nil {
		c.obsUnsubscribe()
		c.obsUnsubscribe = nil
	}
	return err
}

func (c *conn) Close() error { return c.Disconnect(context.Background()) }

// corrCloser adapts correlator.Correlator's CloseAll(err) into io.Closer
// so a session's pending requests tear down alongside its transport
// under one mapCloser.Closer.
type corrCloser struct{ corr correlator.Correlator }

func (c corrCloser) Close() error {
	c.corr.CloseAll(liberr.NotConnected.Error())
	return nil
}

// teardown is startstop's FuncStop: it runs concurrently with a still-
// exiting run goroutine and is what actually unblocks a blocked stream
// Read - the same close-to-unblock pattern transport/stream's own tests
// rely on.
func (c *conn) teardown(ctx context.Context) error {
	if c.heartbeat != nil {
		_ = c.heartbeat.Stop(ctx)
	}
	return c.transport.Close()
}

// run is startstop's FuncStart: the connection's single logical executor
// per spec §5, driving dial-with-retry and one serve cycle per successful
// connect until ctx is cancelled or reconnection is exhausted.
func (c *conn) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cur := c.machine.Current()

		switch cur.Kind() {
		case connstate.Disconnected:
			if _, err := c.machine.Apply(connstate.EventConnect, true, false); err != nil {
				return err
			}
			if err := c.dial(ctx); err != nil {
				delay, proceed := c.reconnectDecision(1, err)
				if _, aerr := c.machine.Apply(connstate.EventConnectFailed, proceed, false); aerr != nil {
					return aerr
				}
				if !proceed {
					return err
				}
				if !c.sleepOrPreempt(ctx, delay) {
					return ctx.Err()
				}
				continue
			}
			if _, err := c.machine.Apply(connstate.EventConnectSucceeded, true, false); err != nil {
				return err
			}

		case connstate.Reconnecting:
			if err := c.dial(ctx); err != nil {
				delay, proceed := c.reconnectDecision(cur.Attempt()+1, err)
				if _, aerr := c.machine.Apply(connstate.EventReconnectFailed, false, !proceed); aerr != nil {
					return aerr
				}
				if !proceed {
					return err
				}
				if !c.sleepOrPreempt(ctx, delay) {
					return ctx.Err()
				}
				continue
			}
			if _, err := c.machine.Apply(connstate.EventReconnectSucceeded, true, false); err != nil {
				return err
			}

		default:
			return liberr.InvalidStateTransition.Errorf("connection: run started from state %s", cur.Kind())
		}

		if serveErr := c.serve(ctx); serveErr != nil {
			reconnectOK := c.strategy != nil && c.strategy.ShouldReconnect(serveErr)
			if _, err := c.machine.Apply(connstate.EventIOError, reconnectOK, false); err != nil {
				return err
			}
			c.notifyError(ctx, serveErr)
			continue
		}
		return nil
	}
}

func (c *conn) dial(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	return c.transport.Connect(dialCtx)
}

// reconnectDecision combines the strategy's "is this error worth retrying
// at all" and "how long until attempt" decisions into one go/no-go call.
func (c *conn) reconnectDecision(attempt uint, err error) (time.Duration, bool) {
	if c.strategy == nil {
		return 0, false
	}
	if !c.strategy.ShouldReconnect(err) {
		return 0, false
	}
	delay, ok := c.strategy.NextDelay(attempt, err)
	if !ok {
		return 0, false
	}
	return delay, true
}

// sleepOrPreempt waits for delay, ctx cancellation, or a LinkUp event,
// whichever comes first, per spec §4.9. It reports false only when ctx was
// the reason it returned.
func (c *conn) sleepOrPreempt(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	case <-c.linkUp:
		return true
	}
}

// serve runs one connected session: plugin connect hooks, heartbeat, and
// the read pump, until the link drops or a graceful Disconnect completes.
// A nil return means the session ended gracefully; a non-nil return is an
// I/O error the caller feeds back into the reconnection decision.
func (c *conn) serve(ctx context.Context) error {
	pctx := pipeline.Context{ConnectionID: c.id}

	if err := c.pipe.Connect(ctx, pctx); err != nil {
		_ = c.transport.Close()
		return err
	}

	// resources ties this session's transport and pending requests to one
	// teardown call, and closes them on its own if ctx is cancelled before
	// readPump notices - the connection registers its transport and
	// correlator here, the way mapCloser's own doc describes.
	resources := mapclsr.New(ctx)
	resources.Add(c.transport, corrCloser{c.corr})

	c.lastIncoming.Store(time.Now().UnixNano())
	if c.heartbeat != nil {
		_ = c.heartbeat.Start(ctx)
	}

	readErr := c.readPump(ctx)

	if c.heartbeat != nil {
		_ = c.heartbeat.Stop(context.Background())
	}
	_ = c.pipe.Disconnect(ctx, pctx)
	_ = resources.Close()

	if c.machine.Current().Kind() == connstate.Disconnecting {
		_, err := c.machine.Apply(connstate.EventDisconnectComplete, false, false)
		return err
	}

	return readErr
}

func (c *conn) readPump(ctx context.Context) error {
	for {
		chunk, err := c.transport.ReadChunk(ctx)
		if len(chunk) > 0 {
			if aerr := c.buf.Append(chunk); aerr != nil {
				return aerr
			}
			c.lastIncoming.Store(time.Now().UnixNano())
			if derr := c.drainFrames(ctx); derr != nil {
				return derr
			}
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *conn) drainFrames(ctx context.Context) error {
	events, err := c.adapter.OnIncoming(c.buf)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if derr := c.dispatchEvent(ctx, ev); derr != nil {
			return derr
		}
	}
	return nil
}

// dispatchEvent implements spec §7's inbound propagation policy: frame and
// pipeline errors surface to plugin error hooks and drop the offending
// frame, except a ProtocolViolation, which disconnects the connection.
func (c *conn) dispatchEvent(ctx context.Context, ev frame.Event) error {
	switch ev.Kind {
	case frame.EventControl:
		return nil

	case frame.EventResponse:
		pctx := pipeline.Context{ConnectionID: c.id, MessageID: ev.RequestID}
		if c.cfg.IncomingLimiter != nil {
			if lerr := c.cfg.IncomingLimiter.Acquire(ctx, float64(len(ev.Payload)), time.Time{}); lerr != nil {
				c.pipe.Error(ctx, pctx, liberr.RateLimited.Error(lerr))
				return nil
			}
		}
		out, perr := c.pipe.Receive(ctx, pctx, ev.Payload)
		if perr != nil {
			c.pipe.Error(ctx, pctx, perr)
			return nil
		}
		c.corr.Deliver(ev.RequestID, out)
		return nil

	case frame.EventNotification:
		pctx := pipeline.Context{ConnectionID: c.id}
		out, perr := c.pipe.Receive(ctx, pctx, ev.Payload)
		if perr != nil {
			c.pipe.Error(ctx, pctx, perr)
			return nil
		}
		if c.cfg.OnNotification != nil {
			c.cfg.OnNotification(Notification{ConnectionID: c.id, Name: ev.Name, Payload: out})
		}
		return nil

	case frame.EventError:
		pctx := pipeline.Context{ConnectionID: c.id}
		c.pipe.Error(ctx, pctx, ev.Cause)
		if liberr.Is(ev.Cause, liberr.ProtocolViolation) {
			return ev.Cause
		}
		return nil

	default:
		return nil
	}
}

func (c *conn) onHeartbeatTick(ctx context.Context, _ *time.Ticker) error {
	if c.cfg.HeartbeatTimeout > 0 {
		idle := time.Since(time.Unix(0, c.lastIncoming.Load()))
		if idle > c.cfg.HeartbeatTimeout {
			_ = c.transport.Close()
			return liberr.TimeoutRead.Errorf("connection: no traffic for %s, exceeds heartbeat timeout %s", idle, c.cfg.HeartbeatTimeout)
		}
	}

	payload := c.adapter.HeartbeatPayload()
	if payload == nil {
		return nil
	}
	return c.transport.WriteChunk(ctx, payload)
}

func (c *conn) onNetworkEvent(ev netwatch.Event) {
	switch ev.(type) {
	case netwatch.LinkUp:
		select {
		case c.linkUp <- struct{}{}:
		default:
		}
	case netwatch.LinkDown:
		if c.machine.Current().Kind() == connstate.Connected {
			_ = c.transport.Close()
		}
	}
}

func (c *conn) notifyError(ctx context.Context, err error) {
	c.pipe.Error(ctx, pipeline.Context{ConnectionID: c.id}, err)
}

func (c *conn) Send(ctx context.Context, data []byte) error {
	if c.machine.Current().Kind() != connstate.Connected {
		return liberr.NotConnected.Error()
	}

	id := atomic.AddUint32(&c.msgID, 1)
	pctx := pipeline.Context{ConnectionID: c.id, MessageID: id}

	var span tracing.Span
	if c.cfg.Tracer != nil {
		span = c.cfg.Tracer.Start("connection.Send", nil, tracing.KindClient, nil)
		defer span.Finish()
	}

	encoded, err := c.adapter.Encode(data, frame.EncodeContext{ConnectionID: c.id, MessageID: id})
	if err != nil {
		return liberr.EncodingFailed.Error(err)
	}

	out, err := c.pipe.Send(ctx, pctx, encoded)
	if err != nil {
		return err
	}

	if c.cfg.OutgoingLimiter != nil {
		if lerr := c.cfg.OutgoingLimiter.Acquire(ctx, float64(len(out)), deadlineFrom(ctx)); lerr != nil {
			return liberr.RateLimited.Error(lerr)
		}
	}

	if c.cfg.Metrics != nil {
		c.cfg.Metrics.Counter("connection.send.bytes").Add(uint64(len(out)))
	}

	return c.transport.WriteChunk(ctx, out)
}

func (c *conn) Request(ctx context.Context, data []byte, timeout time.Duration) ([]byte, error) {
	if c.machine.Current().Kind() != connstate.Connected {
		return nil, liberr.NotConnected.Error()
	}
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	deadline := time.Now().Add(timeout)

	id, resultCh, err := c.corr.Send(ctx, deadline)
	if err != nil {
		return nil, err
	}

	pctx := pipeline.Context{ConnectionID: c.id, MessageID: id}
	encoded, err := c.adapter.Encode(data, frame.EncodeContext{ConnectionID: c.id, MessageID: id})
	if err != nil {
		c.corr.Cancel(id)
		return nil, liberr.EncodingFailed.Error(err)
	}

	out, err := c.pipe.Send(ctx, pctx, encoded)
	if err != nil {
		c.corr.Cancel(id)
		return nil, err
	}

	if c.cfg.OutgoingLimiter != nil {
		if lerr := c.cfg.OutgoingLimiter.Acquire(ctx, float64(len(out)), deadline); lerr != nil {
			c.corr.Cancel(id)
			return nil, liberr.RateLimited.Error(lerr)
		}
	}

	if werr := c.transport.WriteChunk(ctx, out); werr != nil {
		c.corr.Cancel(id)
		return nil, werr
	}

	select {
	case res := <-resultCh:
		return res.Payload, res.Err
	case <-ctx.Done():
		c.corr.Cancel(id)
		return nil, ctx.Err()
	}
}

func deadlineFrom(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return time.Time{}
}
