/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2026 fengmingdev
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package xsize

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes s as its String() representation, e.g. "5.00MB".
func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a JSON string produced by MarshalJSON, or any
// human-readable size Parse accepts.
func (s *Size) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalYAML encodes s as its String() representation.
func (s Size) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a YAML scalar produced by MarshalYAML.
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	v, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText encodes s as its String() representation.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a text value produced by MarshalText.
func (s *Size) UnmarshalText(b []byte) error {
	v, err := ParseByte(b)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalTOML encodes s as a quoted String() representation.
func (s Size) MarshalTOML() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalTOML decodes a TOML value produced by MarshalTOML: either a
// string or the raw bytes the TOML decoder hands it.
func (s *Size) UnmarshalTOML(i interface{}) error {
	switch v := i.(type) {
	case string:
		r, err := Parse(v)
		if err != nil {
			return err
		}
		*s = r
		return nil
	case []byte:
		r, err := ParseByte(v)
		if err != nil {
			return err
		}
		*s = r
		return nil
	default:
		return fmt.Errorf("size: value not in valid format: %T", i)
	}
}

// MarshalCBOR encodes s as its String() representation.
func (s Size) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR decodes a CBOR value produced by MarshalCBOR.
func (s *Size) UnmarshalCBOR(b []byte) error {
	var str string
	if err := cbor.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalBinary encodes s as 8 big-endian bytes, for callers that want an
// exact, lossless wire representation instead of the human-readable form.
func (s Size) MarshalBinary() ([]byte, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(s))
	return b, nil
}

// UnmarshalBinary decodes 8 big-endian bytes produced by MarshalBinary.
func (s *Size) UnmarshalBinary(b []byte) error {
	if len(b) != 8 {
		return fmt.Errorf("size: invalid binary length %d, want 8", len(b))
	}
	*s = Size(binary.BigEndian.Uint64(b))
	return nil
}
