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
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/coder/websocket"

	liberr "github.com/fengmingdev/nexuskit/errors"
)

type client struct {
	cfg Config
	log FuncLog

	mu   sync.RWMutex
	conn *websocket.Conn
	local, remote net.Addr
}

func (c *client) Connect(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.dialTimeout())
	defer cancel()

	opts := &websocket.DialOptions{
		Subprotocols: c.cfg.Subprotocols,
	}
	if c.cfg.TLS != nil {
		opts.HTTPClient = &http.Client{
			Transport: &http.Transport{TLSClientConfig: c.cfg.TLS.Clone()},
		}
	}

	conn, resp, err := websocket.Dial(dialCtx, c.cfg.URL, opts)
	if err != nil {
		c.log("ws: dial %s failed: %v", c.cfg.URL, err)
		return liberr.ConnectionRefused.Error(err)
	}
	if c.cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(c.cfg.MaxMessageSize)
	}

	// The underlying library does not expose the dialed connection's raw
	// TCP addresses once the HTTP upgrade completes, so only RemoteAddr
	// (derived from the request URL) is populated; LocalAddr stays nil.
	var remote net.Addr
	if resp != nil && resp.Request != nil && resp.Request.URL != nil {
		remote = addrFromURL(resp.Request.URL)
	}

	c.mu.Lock()
	old := c.conn
	c.conn = conn
	c.remote = remote
	c.mu.Unlock()

	if old != nil {
		old.CloseNow()
	}

	c.log("ws: connected to %s", c.cfg.URL)
	return nil
}

func (c *client) WriteMessage(ctx context.Context, p []byte) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return liberr.NotConnected.Error()
	}
	return conn.Write(ctx, c.cfg.MessageType.toLibrary(), p)
}

func (c *client) ReadMessage(ctx context.Context) ([]byte, error) {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return nil, liberr.NotConnected.Error()
	}
	_, data, err := conn.Read(ctx)
	return data, err
}

func (c *client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close(websocket.StatusNormalClosure, "")
}

func (c *client) IsConnect() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

func (c *client) LocalAddr() net.Addr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.local
}

func (c *client) RemoteAddr() net.Addr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remote
}

// addrFromURL wraps a dialed WebSocket URL's host as a net.Addr; the
// underlying library does not expose the raw TCP connection's address once
// the HTTP upgrade has completed.
type urlAddr struct{ network, addr string }

func (a urlAddr) Network() string { return a.network }
func (a urlAddr) String() string  { return a.addr }

func addrFromURL(u *url.URL) net.Addr {
	return urlAddr{network: "tcp", addr: u.Host}
}
