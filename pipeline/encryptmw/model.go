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

// Package encryptmw adapts encoding/aes's AES-256-GCM Coder into a
// pipeline.Middleware, so a connection can register transparent
// authenticated encryption on its data path without either side of the
// pipeline knowing about crypto.
package encryptmw

import (
	libenc "github.com/fengmingdev/nexuskit/encoding"
	encaes "github.com/fengmingdev/nexuskit/encoding/aes"
	"github.com/fengmingdev/nexuskit/pipeline"
)

// defaultPriority places encryption below compression in the outgoing
// order (see pipeline.Middleware: higher priority runs first), so
// outgoing data compresses first and encrypts last, and decrypts first
// then decompresses on incoming.
const defaultPriority = 1

type middleware struct {
	coder    libenc.Coder
	priority int
}

// New returns a pipeline.Middleware that seals outgoing payloads and
// opens incoming ones with AES-256-GCM under key and nonce. Callers
// generate those with encaes.GenKey/GenNonce (or derive nonce from
// connection.ID) and must never reuse a nonce under the same key.
func New(key [32]byte, nonce [12]byte) (pipeline.Middleware, error) {
	c, err := encaes.New(key, nonce)
	if err != nil {
		return nil, err
	}
	return &middleware{coder: c, priority: defaultPriority}, nil
}

// WithPriority overrides the default priority the middleware registers
// at, for callers composing it with other middleware where encryption
// should not run last.
func WithPriority(m pipeline.Middleware, priority int) pipeline.Middleware {
	mw, ok := m.(*middleware)
	if !ok {
		return m
	}
	return &middleware{coder: mw.coder, priority: priority}
}

func (m *middleware) Name() string { return "aes-gcm" }

func (m *middleware) Priority() int { return m.priority }

func (m *middleware) OnOutgoing(_ pipeline.Context, data []byte) ([]byte, error) {
	return m.coder.Encode(data), nil
}

func (m *middleware) OnIncoming(_ pipeline.Context, data []byte) ([]byte, error) {
	return m.coder.Decode(data)
}
