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
	"net"

	"github.com/fengmingdev/nexuskit/bufferpool"
	"github.com/fengmingdev/nexuskit/transport/stream"
	"github.com/fengmingdev/nexuskit/transport/ws"
	"github.com/fengmingdev/nexuskit/xsize"
)

// transportClient is the facade's own narrow view of a dialed endpoint,
// unifying transport/stream's byte-oriented Client and transport/ws's
// message-oriented one behind a single chunk-at-a-time shape: the read
// pump doesn't care whether one ReadChunk is an arbitrary-sized fragment
// of a longer frame (stream) or a whole message (WebSocket) - either way
// the bytes go into the same buffer.Buffer and the same frame.Adapter
// reassembles frames from it.
type transportClient interface {
	Connect(ctx context.Context) error
	Close() error
	IsConnect() bool
	LocalAddr() net.Addr
	RemoteAddr() net.Addr

	// WriteChunk sends p as-is: one Write for a stream endpoint, one
	// WriteMessage for a WebSocket endpoint.
	WriteChunk(ctx context.Context, p []byte) error

	// ReadChunk blocks for the next chunk of incoming bytes. Cancelling
	// ctx does not itself interrupt an in-flight read against a stream
	// endpoint (net.Conn has no ctx-aware Read); the read pump unblocks
	// such a read by calling Close, the same way a net.Conn caller always
	// has to.
	ReadChunk(ctx context.Context) ([]byte, error)
}

const streamReadChunkSize = 64 * 1024

// scratchPool backs every streamTransport's read buffer: connections churn
// through reconnects far more often than this pool churns through bytes, so
// a shared, size-tiered pool amortizes the allocation across the process
// rather than letting each transport hold its own.
var scratchPool = bufferpool.New()

type streamTransport struct {
	cli     stream.Client
	scratch []byte
}

func newStreamTransport(cli stream.Client) *streamTransport {
	// Acquire returns a zero-length, tier-capacity slice meant for
	// appending; reslice to the full capacity since Read needs a fixed-size
	// destination buffer, not a growable one.
	scratch := scratchPool.Acquire(xsize.Size(streamReadChunkSize))
	scratch = scratch[:cap(scratch)]
	return &streamTransport{cli: cli, scratch: scratch}
}

func (t *streamTransport) Connect(ctx context.Context) error {
	// Close released the scratch buffer; a reconnect needs a fresh one.
	if t.scratch == nil {
		t.scratch = scratchPool.Acquire(xsize.Size(streamReadChunkSize))
		t.scratch = t.scratch[:cap(t.scratch)]
	}
	return t.cli.Connect(ctx)
}

func (t *streamTransport) Close() error {
	if t.scratch != nil {
		scratchPool.Release(t.scratch)
		t.scratch = nil
	}
	return t.cli.Close()
}
func (t *streamTransport) IsConnect() bool                   { return t.cli.IsConnect() }
func (t *streamTransport) LocalAddr() net.Addr               { return t.cli.LocalAddr() }
func (t *streamTransport) RemoteAddr() net.Addr              { return t.cli.RemoteAddr() }

func (t *streamTransport) WriteChunk(_ context.Context, p []byte) error {
	_, err := t.cli.Write(p)
	return err
}

func (t *streamTransport) ReadChunk(_ context.Context) ([]byte, error) {
	n, err := t.cli.Read(t.scratch)
	if n > 0 {
		out := make([]byte, n)
		copy(out, t.scratch[:n])
		if err != nil {
			return out, err
		}
		return out, nil
	}
	return nil, err
}

type wsTransport struct {
	cli ws.Client
}

func newWSTransport(cli ws.Client) *wsTransport {
	return &wsTransport{cli: cli}
}

func (t *wsTransport) Connect(ctx context.Context) error { return t.cli.Connect(ctx) }
func (t *wsTransport) Close() error                      { return t.cli.Close() }
func (t *wsTransport) IsConnect() bool                   { return t.cli.IsConnect() }
func (t *wsTransport) LocalAddr() net.Addr               { return t.cli.LocalAddr() }
func (t *wsTransport) RemoteAddr() net.Addr              { return t.cli.RemoteAddr() }

func (t *wsTransport) WriteChunk(ctx context.Context, p []byte) error {
	return t.cli.WriteMessage(ctx, p)
}

func (t *wsTransport) ReadChunk(ctx context.Context) ([]byte, error) {
	return t.cli.ReadMessage(ctx)
}
