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

package frame

import (
	"fmt"

	"github.com/fengmingdev/nexuskit/buffer"
	liberr "github.com/fengmingdev/nexuskit/errors"
)

// maxRemainingLength is the largest value a 4-byte MQTT-style remaining
// length field can encode (128^4 - 1).
const maxRemainingLength = 268435455

// MQTTVarint frames messages as a variable-length-integer remaining-length
// (1-4 bytes, 7 payload bits per byte plus a continuation bit) followed by
// a body of that many bytes; no fixed-control byte precedes it. The first
// byte of the body is treated as an event/control discriminator: value 0
// is the reserved heartbeat control, anything else is a notification whose
// name is the discriminator's decimal string.
type MQTTVarint struct{}

// NewMQTTVarint returns a ready-to-use MQTTVarint framer.
func NewMQTTVarint() *MQTTVarint {
	return &MQTTVarint{}
}

// Encode implements Adapter.
func (m *MQTTVarint) Encode(message interface{}, ctx EncodeContext) ([]byte, error) {
	body, ok := message.([]byte)
	if !ok {
		return nil, liberr.New(liberr.EncodingFailed, fmt.Sprintf("frame: mqttvarint encoder requires []byte, got %T", message), nil)
	}

	disc := byte(1)
	if ctx.EventName == "" {
		disc = 0
	}

	payload := make([]byte, 0, len(body)+1)
	payload = append(payload, disc)
	payload = append(payload, body...)

	rl, err := encodeRemainingLength(len(payload))
	if err != nil {
		return nil, liberr.New(liberr.EncodingFailed, err.Error(), err)
	}

	out := make([]byte, 0, len(rl)+len(payload))
	out = append(out, rl...)
	out = append(out, payload...)
	return out, nil
}

// Decode implements Adapter: it returns the frame body verbatim, the
// discriminator byte already stripped by OnIncoming.
func (m *MQTTVarint) Decode(payload []byte, _ DecodeContext) (interface{}, error) {
	return payload, nil
}

// OnIncoming implements Adapter.
func (m *MQTTVarint) OnIncoming(buf buffer.Buffer) ([]Event, error) {
	var events []Event

	for {
		rlBytes, rlLen, remaining, needMore, err := peekRemainingLength(buf)
		if err != nil {
			return events, err
		}
		if needMore {
			return events, nil
		}

		total := rlLen + remaining
		if _, ok := buf.Peek(total); !ok {
			return events, nil
		}

		frameBytes, _ := buf.Read(total)
		_ = rlBytes
		payload := frameBytes[rlLen:]

		if len(payload) == 0 {
			events = append(events, Event{Kind: EventControl, Control: ControlHeartbeat})
			continue
		}

		disc := payload[0]
		body := payload[1:]

		if disc == 0 {
			events = append(events, Event{Kind: EventControl, Control: ControlHeartbeat})
		} else {
			events = append(events, Event{Kind: EventNotification, Name: fmt.Sprintf("%d", disc), Payload: body})
		}
	}
}

// HeartbeatPayload implements Adapter: a zero-length remaining-length
// frame, i.e. a single 0x00 byte.
func (m *MQTTVarint) HeartbeatPayload() []byte {
	return []byte{0x00}
}

// SupportsCompression implements Adapter: the varint framer carries no
// compression flag of its own.
func (m *MQTTVarint) SupportsCompression() bool { return false }

// encodeRemainingLength renders n using the MQTT 1-4 byte varint scheme.
func encodeRemainingLength(n int) ([]byte, error) {
	if n < 0 || n > maxRemainingLength {
		return nil, fmt.Errorf("frame: remaining length %d out of range", n)
	}

	var out []byte
	for {
		b := byte(n % 128)
		n /= 128
		if n > 0 {
			b |= 0x80
		}
		out = append(out, b)
		if n == 0 {
			break
		}
	}
	return out, nil
}

// peekRemainingLength reads the varint remaining-length header without
// consuming it. needMore is true if the buffer does not yet hold a
// complete varint (1-4 bytes terminated by a byte with the continuation
// bit clear).
func peekRemainingLength(buf buffer.Buffer) (raw []byte, rlLen int, value int, needMore bool, err error) {
	var multiplier = 1
	for i := 0; i < 4; i++ {
		b, ok := buf.Peek(i + 1)
		if !ok {
			return nil, 0, 0, true, nil
		}
		cur := b[i]
		value += int(cur&0x7F) * multiplier
		if cur&0x80 == 0 {
			return b, i + 1, value, false, nil
		}
		multiplier *= 128
		if multiplier > 128*128*128 {
			return nil, 0, 0, false, liberr.New(liberr.InvalidFrame, "frame: remaining length multiplier overflow", nil)
		}
	}
	return nil, 0, 0, false, liberr.New(liberr.InvalidFrame, "frame: remaining length exceeds 4 bytes", nil)
}
