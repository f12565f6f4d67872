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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"sync/atomic"

	"github.com/klauspost/compress/flate"

	"github.com/fengmingdev/nexuskit/buffer"
	liberr "github.com/fengmingdev/nexuskit/errors"
)

const (
	binaryTag        uint16 = 0x7A5A
	binaryVersion    uint16 = 1
	binaryPrefixSize int    = 4
	binaryHeaderSize int    = 24
	// functionHeartbeat is the reserved FunctionID value for keep-alive
	// frames: the classifier never treats it as a notification event.
	functionHeartbeat uint32 = 0xFFFF

	flagCompressed uint8 = 1 << 5
	flagIdle       uint8 = 1 << 0

	responseFlagRequest  uint8 = 0
	responseFlagResponse uint8 = 1
)

// Binary is the reference length-prefixed binary framer used by the stream
// transport. All multi-byte fields are big-endian. Wire layout:
//
//	[0:4]   length prefix   uint32 (duplicates the header's own length field)
//	-- 24-byte header --
//	[4:8]   length          uint32 (= 24 + len(body), excludes the prefix above)
//	[8:10]  tag             uint16 (must equal 0x7A5A)
//	[10:12] version         uint16
//	[12:13] type-flags      uint8  (bit5 compressed, bit0 idle/heartbeat)
//	[13:14] response-flag   uint8  (0 request, 1 response)
//	[14:18] request-id      uint32
//	[18:22] function-id     uint32 (0xFFFF => heartbeat)
//	[22:26] response-code   uint32 (0 in requests)
//	[26:28] reserved        2 bytes
//	[28:]   body
//
// A frame's total wire size is 28+len(body); OnIncoming requires the buffer
// to hold 4+length bytes before it will consume one.
type Binary struct {
	nextID atomic.Uint32
}

// NewBinary returns a ready-to-use Binary framer.
func NewBinary() *Binary {
	return &Binary{}
}

func (b *Binary) nextRequestID() uint32 {
	for {
		id := b.nextID.Add(1)
		if id != 0 && id != functionHeartbeat {
			return id
		}
	}
}

// Encode implements Adapter.
func (b *Binary) Encode(message interface{}, ctx EncodeContext) ([]byte, error) {
	body, ok := message.([]byte)
	if !ok {
		return nil, liberr.New(liberr.EncodingFailed, fmt.Sprintf("frame: binary encoder requires []byte, got %T", message), nil)
	}

	var flags uint8
	if ctx.Compress {
		compressed, err := deflateCompress(body)
		if err != nil {
			return nil, liberr.New(liberr.EncodingFailed, "frame: compression failed", err)
		}
		body = compressed
		flags |= flagCompressed
	}

	reqID := ctx.MessageID
	if reqID == 0 {
		reqID = b.nextRequestID()
	}

	var funcID uint32
	if ctx.EventName != "" {
		if n, err := strconv.ParseUint(ctx.EventName, 10, 32); err == nil {
			funcID = uint32(n)
		}
	}

	length := uint32(binaryHeaderSize + len(body))
	out := make([]byte, binaryPrefixSize+binaryHeaderSize+len(body))
	binary.BigEndian.PutUint32(out[0:4], length)
	binary.BigEndian.PutUint32(out[4:8], length)
	binary.BigEndian.PutUint16(out[8:10], binaryTag)
	binary.BigEndian.PutUint16(out[10:12], binaryVersion)
	out[12] = flags
	out[13] = responseFlagRequest
	binary.BigEndian.PutUint32(out[14:18], reqID)
	binary.BigEndian.PutUint32(out[18:22], funcID)
	binary.BigEndian.PutUint32(out[22:26], 0)
	copy(out[binaryPrefixSize+binaryHeaderSize:], body)

	return out, nil
}

// Decode implements Adapter: it interprets payload as the raw response
// body, decompressing it first if ctx.TypeHint is "compressed".
func (b *Binary) Decode(payload []byte, ctx DecodeContext) (interface{}, error) {
	if ctx.TypeHint == "compressed" {
		return deflateDecompress(payload)
	}
	return payload, nil
}

// OnIncoming implements Adapter.
func (b *Binary) OnIncoming(buf buffer.Buffer) ([]Event, error) {
	var events []Event

	for {
		prefix, ok := buf.Peek(binaryPrefixSize)
		if !ok {
			return events, nil
		}
		length := binary.BigEndian.Uint32(prefix)
		if length < uint32(binaryHeaderSize) {
			return events, liberr.New(liberr.InvalidFrame, fmt.Sprintf("frame: length %d below minimum %d", length, binaryHeaderSize), nil)
		}

		total := binaryPrefixSize + int(length)
		header, ok := buf.Peek(total)
		if !ok {
			// Partial frame: leave the buffer untouched.
			return events, nil
		}
		header = header[binaryPrefixSize : binaryPrefixSize+binaryHeaderSize]

		headerLength := binary.BigEndian.Uint32(header[0:4])
		if headerLength != length {
			return events, liberr.New(liberr.InvalidFrame, fmt.Sprintf("frame: length prefix %d does not match header length %d", length, headerLength), nil)
		}

		tag := binary.BigEndian.Uint16(header[4:6])
		if tag != binaryTag {
			return events, liberr.New(liberr.InvalidFrame, fmt.Sprintf("frame: bad tag 0x%04x", tag), nil)
		}

		flags := header[8]
		respFlag := header[9]
		reqID := binary.BigEndian.Uint32(header[10:14])
		funcID := binary.BigEndian.Uint32(header[14:18])

		frameBytes, _ := buf.Read(total)
		body := frameBytes[binaryPrefixSize+binaryHeaderSize:]

		if flags&flagCompressed != 0 {
			decompressed, err := deflateDecompress(body)
			if err != nil {
				events = append(events, Event{Kind: EventError, Cause: liberr.New(liberr.DecodingFailed, "frame: decompression failed", err)})
				continue
			}
			body = decompressed
		}

		switch {
		case respFlag == responseFlagResponse:
			events = append(events, Event{Kind: EventResponse, RequestID: reqID, Payload: body})
		case funcID == functionHeartbeat:
			events = append(events, Event{Kind: EventControl, Control: ControlHeartbeat})
		default:
			events = append(events, Event{Kind: EventNotification, Name: strconv.FormatUint(uint64(funcID), 10), Payload: body})
		}
	}
}

// HeartbeatPayload implements Adapter.
func (b *Binary) HeartbeatPayload() []byte {
	out := make([]byte, binaryPrefixSize+binaryHeaderSize)
	length := uint32(binaryHeaderSize)
	binary.BigEndian.PutUint32(out[0:4], length)
	binary.BigEndian.PutUint32(out[4:8], length)
	binary.BigEndian.PutUint16(out[8:10], binaryTag)
	binary.BigEndian.PutUint16(out[10:12], binaryVersion)
	out[12] = flagIdle
	binary.BigEndian.PutUint32(out[18:22], functionHeartbeat)
	return out
}

// SupportsCompression implements Adapter.
func (b *Binary) SupportsCompression() bool { return true }

func deflateCompress(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(p); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deflateDecompress(p []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(p))
	defer r.Close()
	return io.ReadAll(r)
}
