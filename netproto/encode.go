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

package netproto

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes p as its String() representation, e.g. "tcp".
func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a JSON string produced by MarshalJSON. Unrecognised
// values decode to NetworkEmpty rather than erroring.
func (p *NetworkProtocol) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	*p = Parse(str)
	return nil
}

// MarshalYAML encodes p as its String() representation.
func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML decodes a YAML scalar produced by MarshalYAML.
func (p *NetworkProtocol) UnmarshalYAML(value *yaml.Node) error {
	*p = Parse(value.Value)
	return nil
}

// MarshalText encodes p as its String() representation.
func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a text value produced by MarshalText.
func (p *NetworkProtocol) UnmarshalText(b []byte) error {
	*p = ParseBytes(b)
	return nil
}

// MarshalTOML encodes p as a quoted String() representation.
func (p NetworkProtocol) MarshalTOML() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalTOML decodes a TOML value produced by MarshalTOML: either a
// string or the raw bytes the TOML decoder hands it.
func (p *NetworkProtocol) UnmarshalTOML(i interface{}) error {
	switch v := i.(type) {
	case string:
		*p = Parse(v)
		return nil
	case []byte:
		*p = ParseBytes(v)
		return nil
	default:
		return fmt.Errorf("netproto: value not in valid format: %T", i)
	}
}

// MarshalCBOR encodes p as its String() representation.
func (p NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.String())
}

// UnmarshalCBOR decodes a CBOR value produced by MarshalCBOR.
func (p *NetworkProtocol) UnmarshalCBOR(b []byte) error {
	var str string
	if err := cbor.Unmarshal(b, &str); err != nil {
		return err
	}
	*p = Parse(str)
	return nil
}
