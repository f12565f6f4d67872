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
	"crypto/tls"
	"time"

	liberr "github.com/fengmingdev/nexuskit/errors"
	"github.com/fengmingdev/nexuskit/netproto"
)

// Config describes a single dial endpoint. It follows the core's typed
// Options/Config-with-Validate idiom: build one, call Validate, hand it to
// New.
type Config struct {
	// Network selects the net.Dial network kind. The zero value (NetworkEmpty)
	// validates as TCP.
	Network netproto.NetworkProtocol

	// Address is a net.Dial-shaped address ("host:port", or a filesystem
	// path for Unix sockets).
	Address string

	// DialTimeout bounds a single Connect attempt. Zero uses a 30s default.
	DialTimeout time.Duration

	// TLS, when non-nil, wraps the dialed connection with tls.Client using
	// this config. The core never builds its own TLS stack: callers own the
	// *tls.Config (certificates, verification, ALPN) per spec non-goals.
	TLS *tls.Config
}

// Validate reports whether cfg is dialable.
func (c Config) Validate() error {
	if c.Address == "" {
		return liberr.InvalidEndpoint.Errorf("stream: empty address")
	}

	switch c.Network {
	case netproto.NetworkEmpty, netproto.NetworkTCP, netproto.NetworkTCP4, netproto.NetworkTCP6,
		netproto.NetworkUDP, netproto.NetworkUDP4, netproto.NetworkUDP6,
		netproto.NetworkUnix, netproto.NetworkUnixGram:
		return nil
	default:
		return liberr.InvalidEndpoint.Errorf("stream: unsupported network %q", c.Network.String())
	}
}
