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

// Package ws implements a WebSocket endpoint dialer alongside transport/
// stream's byte-stream one, for connection configurations that speak the
// framework's adapters over a message-oriented transport instead of a raw
// socket. Unlike stream.Client, Read/Write are message-shaped (one frame
// in, one frame out) rather than io.Reader/io.Writer-shaped, since that is
// what the underlying protocol actually gives a caller.
package ws

import (
	"context"
	"net"
)

// Client is a dialed WebSocket endpoint. Connect/Close may be called
// repeatedly to reconnect after a failure; WriteMessage/ReadMessage are
// only valid while connected.
type Client interface {
	// Connect dials the configured endpoint, performing the WebSocket
	// upgrade handshake. Calling Connect while already connected replaces
	// the previous connection, closing it once the new dial has succeeded;
	// a failed dial leaves the previous one in place.
	Connect(ctx context.Context) error

	// WriteMessage sends p as a single binary WebSocket message.
	WriteMessage(ctx context.Context, p []byte) error

	// ReadMessage reads the next complete WebSocket message. Text and
	// binary messages are both returned as their raw bytes, and the
	// message type is not reported; Config.MessageType affects only
	// WriteMessage.
	ReadMessage(ctx context.Context) ([]byte, error)

	// Close closes the underlying connection with a normal-closure code,
	// if connected.
	Close() error

	// IsConnect reports whether the client currently holds a live
	// connection.
	IsConnect() bool

	// LocalAddr returns the local endpoint address, or nil if not connected.
	LocalAddr() net.Addr

	// RemoteAddr returns the remote endpoint address, or nil if not connected.
	RemoteAddr() net.Addr
}

// FuncLog is a function returning a logging sink for dial/close events. A
// nil FuncLog disables logging, mirroring transport/stream's
// dependency-injection idiom.
type FuncLog func(format string, args ...interface{})

// New validates cfg and returns a Client ready to Connect.
func New(cfg Config, log FuncLog) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = func(string, ...interface{}) {}
	}
	return &client{cfg: cfg, log: log}, nil
}
