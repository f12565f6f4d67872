/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

/*
Package ioutils provides a small suite of I/O utilities supporting the
connection core: path/permission management and subpackages used to
track resources and buffer writes tied to a connection's or a logging
hook's lifetime.

# Architecture

	Root Package (ioutils)
	├── PathCheckCreate - File/directory creation with permission management
	│
	├── mapCloser       - Thread-safe, context-aware manager for multiple io.Closer instances
	│
	└── aggregator      - Buffered, asynchronous io.Writer with periodic flush callbacks

mapCloser backs per-connection resource tracking: a connection registers
its transport and correlator, then tears both down together when its
context is cancelled. aggregator backs
logger/hooksyslog's shared syslog connections, batching writes onto a
single goroutine so hook callers never block on the network.

# Key Features

Path Management:
  - Atomic file/directory creation
  - Automatic parent directory creation
  - Permission validation and correction
  - Type checking (file vs directory)

# Thread Safety

The root PathCheckCreate function is safe to call from multiple goroutines
for different paths. However, concurrent calls for the same path may result
in race conditions. Use external synchronization if needed.

Each subpackage documents its own concurrency guarantees.
*/
package ioutils
