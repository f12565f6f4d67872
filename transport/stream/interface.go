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

package stream

import (
	"context"
	"net"
	"time"

	"github.com/fengmingdev/nexuskit/netproto"
)

// Client is a dialed byte-stream endpoint. Connect/Close may be called
// repeatedly to reconnect after a failure; Write/Read are only valid while
// connected.
type Client interface {
	// Connect dials the configured endpoint. Calling Connect while already
	// connected replaces the previous connection, closing it once the new
	// dial has succeeded; a failed dial leaves the previous one in place.
	Connect(ctx context.Context) error

	// Write writes p to the underlying connection.
	Write(p []byte) (n int, err error)

	// Read reads into p from the underlying connection.
	Read(p []byte) (n int, err error)

	// Close closes the underlying connection, if any.
	Close() error

	// IsConnect reports whether the client currently holds a live connection.
	IsConnect() bool

	// LocalAddr returns the local endpoint address, or nil if not connected.
	LocalAddr() net.Addr

	// RemoteAddr returns the remote endpoint address, or nil if not connected.
	RemoteAddr() net.Addr
}

// FuncLog is a function returning a logging sink for client dial/close
// events. A nil FuncLog disables logging. It mirrors the connection core's
// dependency-injection logging idiom instead of taking a global logger.
type FuncLog func(format string, args ...interface{})

// New validates cfg and returns a Client ready to Connect. It does not dial
// immediately: the caller controls when the first Connect happens so it can
// be retried by a backoff policy.
func New(cfg Config, log FuncLog) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = func(string, ...interface{}) {}
	}

	return &client{cfg: cfg, log: log}, nil
}

// dialTimeout returns cfg's configured dial timeout, or a sane default.
func (c Config) dialTimeout() time.Duration {
	if c.DialTimeout > 0 {
		return c.DialTimeout
	}
	return 30 * time.Second
}

// network renders cfg.Network as the string net.Dial expects, defaulting to
// "tcp" for the zero value so a bare Config{Address: "..."} dials TCP.
func (c Config) network() string {
	if c.Network == netproto.NetworkEmpty {
		return netproto.NetworkTCP.String()
	}
	return c.Network.String()
}
