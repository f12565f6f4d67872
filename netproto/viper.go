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
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// ViperDecoderHook returns a mapstructure decode hook that converts ints,
// uints and strings into a NetworkProtocol, so a viper config field
// declared as `network: "tcp"` (string) or `network: 2` (int) decodes
// straight into a NetworkProtocol struct field. Unlike the string path
// (which maps anything unrecognised to NetworkEmpty), integer inputs that
// do not land on a known ordinal are rejected: a typo'd string is a
// legitimate "no protocol configured" state, but a stray integer is almost
// always a config mistake worth surfacing.
func ViperDecoderHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var (
			z NetworkProtocol
			f func() error
		)

		if to != reflect.TypeOf(z) {
			return data, nil
		}

		validate := func(i int64) error {
			z = ParseInt64(i)
			if z == NetworkEmpty {
				return fmt.Errorf("netproto: invalid value %d for NetworkProtocol", i)
			}
			return nil
		}

		switch from.Kind() {
		case reflect.Int:
			if i, k := data.(int); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.Int8:
			if i, k := data.(int8); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.Int16:
			if i, k := data.(int16); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.Int32:
			if i, k := data.(int32); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.Int64:
			if i, k := data.(int64); k {
				f = func() error { return validate(i) }
			}
		case reflect.Uint:
			if i, k := data.(uint); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.Uint8:
			if i, k := data.(uint8); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.Uint16:
			if i, k := data.(uint16); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.Uint32:
			if i, k := data.(uint32); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.Uint64:
			if i, k := data.(uint64); k {
				f = func() error { return validate(int64(i)) }
			}
		case reflect.String:
			if i, k := data.(string); k {
				f = func() error { z = Parse(i); return nil }
			}
		}

		if f == nil {
			return data, nil
		} else if err := f(); err != nil {
			return nil, err
		} else {
			return z, nil
		}
	}
}
