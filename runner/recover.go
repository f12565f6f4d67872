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

// Package runner provides small process-lifetime helpers shared by the
// runner/startstop and runner/ticker task groups, and by any goroutine that
// needs to log a recovered panic instead of crashing the process.
package runner

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"
)

// RecoveryCaller logs a recovered panic value along with the caller-supplied
// tag identifying where the recovery happened, plus any extra context
// strings. recovered is typically the value returned by recover(); if it is
// nil, RecoveryCaller does nothing.
//
// The stack trace is written to stderr since this runs on the goroutine that
// just recovered from a panic, with no guarantee a structured logger is
// still safe to call.
func RecoveryCaller(name string, recovered interface{}, extra ...string) {
	if recovered == nil {
		return
	}

	msg := fmt.Sprintf("%s: recovered panic: %v", name, recovered)
	if len(extra) > 0 {
		msg += " (" + joinExtra(extra) + ")"
	}

	fmt.Fprintf(os.Stderr, "%s [%s]\n%s\n", msg, time.Now().Format(time.RFC3339Nano), debug.Stack())
}

func joinExtra(extra []string) string {
	out := ""
	for i, e := range extra {
		if i > 0 {
			out += ", "
		}
		out += e
	}
	return out
}
