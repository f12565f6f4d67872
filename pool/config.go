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

package pool

import (
	nerrors "github.com/fengmingdev/nexuskit/errors"
)

// validateConfig aggregates every field-level violation into a single
// Error's parent chain, rather than returning on the first one found.
func validateConfig(c Config) error {
	var fields []error

	if c.Min < 0 {
		fields = append(fields, nerrors.ProtocolViolation.Errorf("pool: min must be >= 0"))
	}
	if c.Max <= 0 {
		fields = append(fields, nerrors.ProtocolViolation.Errorf("pool: max must be > 0"))
	}
	if c.Max > 0 && c.Min > c.Max {
		fields = append(fields, nerrors.ProtocolViolation.Errorf("pool: min must be <= max"))
	}
	if c.AcquireTimeout < 0 {
		fields = append(fields, nerrors.ProtocolViolation.Errorf("pool: acquire_timeout must be >= 0"))
	}
	if c.IdleTimeout < 0 {
		fields = append(fields, nerrors.ProtocolViolation.Errorf("pool: idle_timeout must be >= 0"))
	}
	if c.MaxLifetime < 0 {
		fields = append(fields, nerrors.ProtocolViolation.Errorf("pool: max_lifetime must be >= 0"))
	}
	if c.HealthCheckInterval < 0 {
		fields = append(fields, nerrors.ProtocolViolation.Errorf("pool: health_check_interval must be >= 0"))
	}
	if c.HealthCheckTimeout < 0 {
		fields = append(fields, nerrors.ProtocolViolation.Errorf("pool: health_check_timeout must be >= 0"))
	}

	if len(fields) == 0 {
		return nil
	}

	return nerrors.ProtocolViolation.Error(fields...)
}
