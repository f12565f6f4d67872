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
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// ViperDecoderHook returns a mapstructure decode hook that converts ints,
// uints, floats, strings and byte slices into a Size, so a viper config
// field declared as `size:"256MB"` (string) or `size: 268435456` (int)
// decodes straight into a Size struct field.
func ViperDecoderHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var (
			z Size
			f func() error
		)

		if to != reflect.TypeOf(z) {
			return data, nil
		}

		switch from.Kind() {
		case reflect.Int:
			if i, k := data.(int); k {
				f = func() error { z = ParseInt64(int64(i)); return nil }
			}
		case reflect.Int8:
			if i, k := data.(int8); k {
				f = func() error { z = ParseInt64(int64(i)); return nil }
			}
		case reflect.Int16:
			if i, k := data.(int16); k {
				f = func() error { z = ParseInt64(int64(i)); return nil }
			}
		case reflect.Int32:
			if i, k := data.(int32); k {
				f = func() error { z = ParseInt64(int64(i)); return nil }
			}
		case reflect.Int64:
			if i, k := data.(int64); k {
				f = func() error { z = ParseInt64(i); return nil }
			}
		case reflect.Uint:
			if i, k := data.(uint); k {
				f = func() error { z = ParseUint64(uint64(i)); return nil }
			}
		case reflect.Uint8:
			if i, k := data.(uint8); k {
				f = func() error { z = ParseUint64(uint64(i)); return nil }
			}
		case reflect.Uint16:
			if i, k := data.(uint16); k {
				f = func() error { z = ParseUint64(uint64(i)); return nil }
			}
		case reflect.Uint32:
			if i, k := data.(uint32); k {
				f = func() error { z = ParseUint64(uint64(i)); return nil }
			}
		case reflect.Uint64:
			if i, k := data.(uint64); k {
				f = func() error { z = ParseUint64(i); return nil }
			}
		case reflect.Float32:
			if i, k := data.(float32); k {
				f = func() error { z = ParseFloat64(float64(i)); return nil }
			}
		case reflect.Float64:
			if i, k := data.(float64); k {
				f = func() error { z = ParseFloat64(i); return nil }
			}
		case reflect.String:
			if i, k := data.(string); k {
				f = func() error {
					v, e := Parse(i)
					if e != nil {
						return e
					}
					z = v
					return nil
				}
			}
		case reflect.Slice:
			if i, k := data.([]byte); k {
				f = func() error {
					v, e := ParseByte(i)
					if e != nil {
						return e
					}
					z = v
					return nil
				}
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
