/*
MIT License

Copyright (c) 2026 fengmingdev

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package xcontext

import (
	"context"
	"time"
)

// isolated carries a parent's values without inheriting its cancellation or
// deadline. It never reports Done/Err/Deadline on its own.
type isolated struct {
	parent context.Context
}

func (i isolated) Deadline() (time.Time, bool) { return time.Time{}, false }
func (i isolated) Done() <-chan struct{}       { return nil }
func (i isolated) Err() error                  { return nil }
func (i isolated) Value(key any) any           { return i.parent.Value(key) }

// IsolateParent returns a context.Context that keeps parent's values reachable
// through Value but is decoupled from parent's cancellation and deadline.
//
// This is useful to hand a background task (e.g. draining a connection pool,
// flushing metrics) a context that survives the request/connection context
// that spawned it, while still letting it read request-scoped values such as
// a trace id or connection id.
func IsolateParent(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return isolated{parent: parent}
}
