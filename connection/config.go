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
	"time"

	googleuuid "github.com/google/uuid"
	hashiuuid "github.com/hashicorp/go-uuid"

	liberr "github.com/fengmingdev/nexuskit/errors"
)

const defaultTimeout = 30 * time.Second

// NewID returns a fresh random ConnectionId using hashicorp/go-uuid, the
// default generator a zero-value Config.ID falls back to.
func NewID() (string, error) {
	return hashiuuid.GenerateUUID()
}

// NewGoogleID is an alternate ConnectionId generator using google/uuid,
// for an embedder that already standardises on it elsewhere (e.g. to keep
// connection ids and tracing span ids from the same uuid library).
func NewGoogleID() string {
	return googleuuid.NewString()
}

// Validate reports whether cfg is usable, and fills in ID if empty.
func (c *Config) Validate() error {
	switch c.Endpoint.Kind {
	case EndpointStream:
		if err := c.Endpoint.Stream.Validate(); err != nil {
			return err
		}
	case EndpointWebSocket:
		if err := c.Endpoint.WebSocket.Validate(); err != nil {
			return err
		}
	default:
		return liberr.InvalidEndpoint.Errorf("connection: unknown endpoint kind %d", c.Endpoint.Kind)
	}

	if c.TLS != nil {
		switch c.Endpoint.Kind {
		case EndpointStream:
			if c.Endpoint.Stream.TLS == nil {
				c.Endpoint.Stream.TLS = c.TLS
			}
		case EndpointWebSocket:
			if c.Endpoint.WebSocket.TLS == nil {
				c.Endpoint.WebSocket.TLS = c.TLS
			}
		}
	}

	if c.ID == "" {
		id, err := NewID()
		if err != nil {
			return liberr.InvalidEndpoint.Error(err)
		}
		c.ID = id
	}

	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}

	return nil
}
