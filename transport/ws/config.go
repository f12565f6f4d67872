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

package ws

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/coder/websocket"

	liberr "github.com/fengmingdev/nexuskit/errors"
)

// MessageType selects the WebSocket frame type WriteMessage sends.
type MessageType uint8

const (
	// MessageBinary sends binary frames. This is the default.
	MessageBinary MessageType = iota
	// MessageText sends UTF-8 text frames.
	MessageText
)

func (m MessageType) toLibrary() websocket.MessageType {
	if m == MessageText {
		return websocket.MessageText
	}
	return websocket.MessageBinary
}

// Config describes a single WebSocket dial endpoint, following the core's
// typed Options/Config-with-Validate idiom.
type Config struct {
	// URL is the endpoint to dial; must use the ws:// or wss:// scheme.
	URL string

	// DialTimeout bounds a single Connect attempt. Zero uses a 30s default.
	DialTimeout time.Duration

	// TLS, when non-nil, is used for a wss:// dial. The core never builds
	// its own TLS stack: callers own the *tls.Config per spec non-goals.
	TLS *tls.Config

	// MessageType selects the frame type WriteMessage uses. The zero
	// value is MessageBinary.
	MessageType MessageType

	// Subprotocols lists the WebSocket subprotocols to offer during the
	// handshake, in preference order.
	Subprotocols []string

	// MaxMessageSize bounds a single incoming message. Zero uses the
	// underlying library's default (32 KiB).
	MaxMessageSize int64
}

// Validate reports whether cfg is dialable.
func (c Config) Validate() error {
	if c.URL == "" {
		return liberr.InvalidEndpoint.Errorf("ws: empty url")
	}
	lower := strings.ToLower(c.URL)
	if !strings.HasPrefix(lower, "ws://") && !strings.HasPrefix(lower, "wss://") {
		return liberr.InvalidEndpoint.Errorf("ws: url %q must use ws:// or wss://", c.URL)
	}
	return nil
}

func (c Config) dialTimeout() time.Duration {
	if c.DialTimeout > 0 {
		return c.DialTimeout
	}
	return 30 * time.Second
}
