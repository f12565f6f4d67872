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

// Package tracing implements the connection core's span tree and W3C
// traceparent propagation (spec §4.12, §6). Span identity (TraceID/SpanID)
// reuses go.opentelemetry.io/otel/trace's own ID types so a Span here can
// be bridged into a real OTel SDK exporter by a collaborator without a
// conversion layer; the Span/Tracer types themselves are this module's
// own, since the core never depends on a full OTel SDK (no providers, no
// resource detection) - only on its trace-identity primitives.
package tracing

import (
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Kind mirrors OTel's span kind enumeration.
type Kind uint8

const (
	KindInternal Kind = iota
	KindClient
	KindServer
	KindProducer
	KindConsumer
)

// Status is a span's terminal outcome.
type Status uint8

const (
	StatusUnset Status = iota
	StatusOK
	StatusError
)

// AttrValue is the value half of a span attribute. Exactly one field is
// meaningful, selected by which New* constructor built it.
type AttrValue struct {
	kind byte // 's' string, 'i' int64, 'f' float64, 'b' bool
	s    string
	i    int64
	f    float64
	b    bool
}

func StringAttr(v string) AttrValue  { return AttrValue{kind: 's', s: v} }
func IntAttr(v int64) AttrValue      { return AttrValue{kind: 'i', i: v} }
func FloatAttr(v float64) AttrValue  { return AttrValue{kind: 'f', f: v} }
func BoolAttr(v bool) AttrValue      { return AttrValue{kind: 'b', b: v} }

// String renders the attribute's value regardless of its underlying kind.
func (a AttrValue) String() string {
	switch a.kind {
	case 'i':
		return fmtInt(a.i)
	case 'f':
		return fmtFloat(a.f)
	case 'b':
		return fmtBool(a.b)
	default:
		return a.s
	}
}

// Event is a timestamped annotation attached to a Span.
type Event struct {
	Name       string
	Time       time.Time
	Attributes map[string]AttrValue
}

// Link references another span this one is causally related to, without
// being its parent.
type Link struct {
	TraceID oteltrace.TraceID
	SpanID  oteltrace.SpanID
}

// Span is a single unit of traced work. Ended spans are immutable: every
// mutating method on a Span returned after Finish has run is a no-op.
type Span interface {
	TraceID() oteltrace.TraceID
	SpanID() oteltrace.SpanID
	ParentSpanID() (oteltrace.SpanID, bool)
	Name() string
	Kind() Kind
	Start() time.Time
	End() time.Time
	Ended() bool
	Status() Status
	Sampled() bool

	// SetAttribute records or overwrites an attribute. No-op once ended.
	SetAttribute(key string, value AttrValue)
	// AddEvent appends a timestamped event. No-op once ended.
	AddEvent(name string, attrs map[string]AttrValue)
	// AddLink appends a causal link. No-op once ended.
	AddLink(link Link)
	// SetStatus sets the terminal status. No-op once ended.
	SetStatus(status Status)

	// Attributes, Events, Links snapshot the span's current contents.
	Attributes() map[string]AttrValue
	Events() []Event
	Links() []Link

	// Finish marks the span ended, recording its end time. Calling
	// Finish twice is a no-op after the first call.
	Finish()

	// Context returns the TraceContext identifying this span, for
	// propagation or as a Link target.
	Context() TraceContext
}

// TraceContext is a span's propagatable identity: the fields serialised
// into a W3C traceparent header.
type TraceContext struct {
	TraceID oteltrace.TraceID
	SpanID  oteltrace.SpanID
	Sampled bool
}

// Sampler decides, at span-start time, whether a new span is recorded.
// Unsampled spans are no-ops: no attribute/event/link storage, no
// retention, no export.
type Sampler interface {
	ShouldSample(traceID oteltrace.TraceID) bool
}

// Exporter receives batches of ended, sampled spans out-of-band. The core
// never blocks a span's lifecycle on Export. The Tracer holds no Exporter
// and never calls Export itself: spans it evicts from retention are
// dropped, and only a caller passing Retained's result reaches an Exporter.
type Exporter interface {
	Export(spans []Span) error
}

// Tracer starts spans and retains the most recently ended ones.
//
// All methods are safe for concurrent use.
type Tracer interface {
	// Start begins a new span. If parent is non-nil, the new span shares
	// parent's TraceID and records parent's SpanID as its own parent;
	// otherwise a fresh TraceID is generated. The Sampler decides
	// Span.Sampled() once, at start, based on the (possibly fresh)
	// TraceID.
	Start(name string, parent *TraceContext, kind Kind, attrs map[string]AttrValue) Span

	// Retained returns up to n of the most recently ended sampled spans,
	// newest first.
	Retained(n int) []Span
}

// New returns a Tracer using sampler to decide sampling and retaining up to
// retain ended spans before dropping the oldest.
func New(sampler Sampler, retain int) Tracer {
	if retain <= 0 {
		retain = 1024
	}
	return newTracer(sampler, retain)
}
