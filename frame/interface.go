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

// Package frame defines the wire-framing contract shared by every protocol
// adapter in the connection core, and ships two concrete adapters: a
// length-prefixed binary framer (Binary) for the stream transport, and a
// variable-length-integer text framer (MQTTVarint) for MQTT-like wire
// formats.
//
// An Adapter is a pure function over a buffer.Buffer: it never blocks and
// never reads past what its own header declares. When a frame is only
// partially present it reports that rather than erroring, leaving the
// buffer untouched so the caller can append more bytes and retry.
package frame

import "github.com/fengmingdev/nexuskit/buffer"

// ControlKind enumerates the reserved control-event tags an Adapter may
// classify an incoming frame as.
type ControlKind uint8

const (
	// ControlHeartbeat marks a keep-alive frame carrying no payload.
	ControlHeartbeat ControlKind = iota
	ControlAck
	ControlPing
	ControlPong
	// ControlCustom carries an adapter-defined tag in Control.Tag.
	ControlCustom
)

// EventKind discriminates the variants of Event.
type EventKind uint8

const (
	EventResponse EventKind = iota
	EventNotification
	EventControl
	EventError
)

// Event is the classification On Incoming produces for one decoded frame.
type Event struct {
	Kind EventKind

	// Response fields.
	RequestID uint32
	Payload   []byte

	// Notification fields.
	Name string

	// Control fields.
	Control ControlKind
	Tag     string

	// Error field.
	Cause error
}

// EncodeContext carries the metadata an Adapter needs to encode an
// outgoing message.
type EncodeContext struct {
	ConnectionID string
	MessageID    uint32
	EventName    string
	Compress     bool
	Metadata     map[string]string
}

// DecodeContext carries the metadata an Adapter needs to decode a value
// out of a frame's payload once On Incoming has classified it.
type DecodeContext struct {
	ConnectionID string
	TypeHint     string
}

// Adapter is a protocol encoder/decoder. Implementations must be safe for
// concurrent use by multiple goroutines encoding/decoding independent
// messages, but OnIncoming calls against the same buffer.Buffer must be
// serialised by the caller (the buffer itself already serialises its own
// methods, but frame boundaries are only coherent under single-reader
// access).
type Adapter interface {
	// Encode renders message into wire bytes per ctx.
	Encode(message interface{}, ctx EncodeContext) ([]byte, error)

	// Decode interprets payload as a value of the kind named by
	// ctx.TypeHint.
	Decode(payload []byte, ctx DecodeContext) (interface{}, error)

	// OnIncoming drains as many complete frames as are available at the
	// buffer's read index and classifies each into an Event. It returns
	// as soon as the buffer holds only a partial frame; the buffer is
	// left untouched beyond the frames it did consume.
	OnIncoming(buf buffer.Buffer) ([]Event, error)

	// HeartbeatPayload returns the bytes for a keep-alive frame, or nil
	// if this adapter has no heartbeat representation.
	HeartbeatPayload() []byte

	// SupportsCompression reports whether Encode honours
	// EncodeContext.Compress.
	SupportsCompression() bool
}
