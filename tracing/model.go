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

package tracing

import (
	"crypto/rand"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	liberr "github.com/fengmingdev/nexuskit/errors"
)

func fmtInt(i int64) string     { return strconv.FormatInt(i, 10) }
func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
func fmtBool(b bool) string     { return strconv.FormatBool(b) }

// ---- samplers ----

type alwaysOn struct{}

func (alwaysOn) ShouldSample(oteltrace.TraceID) bool { return true }

// AlwaysOn samples every trace.
func AlwaysOn() Sampler { return alwaysOn{} }

type alwaysOff struct{}

func (alwaysOff) ShouldSample(oteltrace.TraceID) bool { return false }

// AlwaysOff samples no trace.
func AlwaysOff() Sampler { return alwaysOff{} }

type probability struct {
	threshold uint64
}

// Probability samples a trace with probability p in [0,1], deterministic
// per trace id: hash(trace_id) < p*2^64, using the trace id's own low 8
// bytes as the hash input (already uniformly random for a properly
// generated id) rather than re-hashing it.
func Probability(p float64) Sampler {
	if p <= 0 {
		return alwaysOff{}
	}
	if p >= 1 {
		return alwaysOn{}
	}
	return probability{threshold: uint64(p * math.MaxUint64)}
}

func (p probability) ShouldSample(id oteltrace.TraceID) bool {
	var low uint64
	for _, b := range id[8:] {
		low = (low << 8) | uint64(b)
	}
	return low < p.threshold
}

// ---- span ----

type span struct {
	mu sync.Mutex

	traceID  oteltrace.TraceID
	spanID   oteltrace.SpanID
	parentID oteltrace.SpanID
	hasParent bool

	name    string
	kind    Kind
	start   time.Time
	end     time.Time
	ended   bool
	status  Status
	sampled bool

	attrs  map[string]AttrValue
	events []Event
	links  []Link
}

func (s *span) TraceID() oteltrace.TraceID { return s.traceID }
func (s *span) SpanID() oteltrace.SpanID   { return s.spanID }

func (s *span) ParentSpanID() (oteltrace.SpanID, bool) {
	return s.parentID, s.hasParent
}

func (s *span) Name() string    { return s.name }
func (s *span) Kind() Kind      { return s.kind }
func (s *span) Start() time.Time { return s.start }
func (s *span) Sampled() bool   { return s.sampled }

func (s *span) End() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.end
}

func (s *span) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

func (s *span) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *span) SetAttribute(key string, value AttrValue) {
	if !s.sampled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if s.attrs == nil {
		s.attrs = make(map[string]AttrValue)
	}
	s.attrs[key] = value
}

func (s *span) AddEvent(name string, attrs map[string]AttrValue) {
	if !s.sampled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.events = append(s.events, Event{Name: name, Time: time.Now(), Attributes: attrs})
}

func (s *span) AddLink(link Link) {
	if !s.sampled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.links = append(s.links, link)
}

func (s *span) SetStatus(status Status) {
	if !s.sampled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.status = status
}

func (s *span) Attributes() map[string]AttrValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]AttrValue, len(s.attrs))
	for k, v := range s.attrs {
		out[k] = v
	}
	return out
}

func (s *span) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *span) Links() []Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Link, len(s.links))
	copy(out, s.links)
	return out
}

func (s *span) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.ended = true
	s.end = time.Now()
}

func (s *span) Context() TraceContext {
	return TraceContext{TraceID: s.traceID, SpanID: s.spanID, Sampled: s.sampled}
}

// ---- tracer ----

type tracer struct {
	sampler Sampler
	retain  int

	mu       sync.Mutex
	finished []Span // ring, oldest first, bounded to retain
}

func newTracer(sampler Sampler, retain int) *tracer {
	return &tracer{sampler: sampler, retain: retain}
}

func randomTraceID() oteltrace.TraceID {
	var id oteltrace.TraceID
	_, _ = rand.Read(id[:])
	return id
}

func randomSpanID() oteltrace.SpanID {
	var id oteltrace.SpanID
	_, _ = rand.Read(id[:])
	return id
}

func (t *tracer) Start(name string, parent *TraceContext, kind Kind, attrs map[string]AttrValue) Span {
	s := &span{
		spanID: randomSpanID(),
		name:   name,
		kind:   kind,
		start:  time.Now(),
		attrs:  cloneAttrs(attrs),
	}

	if parent != nil {
		s.traceID = parent.TraceID
		s.parentID = parent.SpanID
		s.hasParent = true
	} else {
		s.traceID = randomTraceID()
	}

	s.sampled = t.sampler.ShouldSample(s.traceID)

	return &finishTracking{span: s, onFinish: t.retainFinished}
}

func cloneAttrs(in map[string]AttrValue) map[string]AttrValue {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]AttrValue, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (t *tracer) retainFinished(s Span) {
	if !s.Sampled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finished = append(t.finished, s)
	if len(t.finished) > t.retain {
		t.finished = t.finished[len(t.finished)-t.retain:]
	}
}

func (t *tracer) Retained(n int) []Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= 0 || n > len(t.finished) {
		n = len(t.finished)
	}
	out := make([]Span, n)
	for i := 0; i < n; i++ {
		out[i] = t.finished[len(t.finished)-1-i]
	}
	return out
}

// finishTracking wraps *span so Finish() also reports completion to the
// owning Tracer's retention buffer - kept as a thin decorator rather than
// folding onFinish into span itself so span stays a plain data holder with
// no back-reference to its tracer.
type finishTracking struct {
	*span
	onFinish func(Span)
	once     sync.Once
}

func (f *finishTracking) Finish() {
	f.span.Finish()
	f.once.Do(func() { f.onFinish(f) })
}

// ---- W3C traceparent propagation (spec §6) ----

// Traceparent renders ctx as a W3C traceparent header value:
// "00-<32 hex trace id>-<16 hex span id>-<2 hex flags>".
func Traceparent(ctx TraceContext) string {
	flags := byte(0)
	if ctx.Sampled {
		flags = 1
	}
	return fmt.Sprintf("00-%s-%s-%02x", ctx.TraceID, ctx.SpanID, flags)
}

// ParseTraceparent parses a W3C traceparent header value, rejecting any
// version other than "00" per spec §6.
func ParseTraceparent(header string) (TraceContext, error) {
	if len(header) < 55 {
		return TraceContext{}, liberr.ProtocolViolation.Errorf("tracing: traceparent too short")
	}
	if header[0:2] != "00" || header[2] != '-' {
		return TraceContext{}, liberr.ProtocolViolation.Errorf("tracing: unsupported traceparent version %q", header[0:2])
	}

	traceHex := header[3:35]
	if header[35] != '-' {
		return TraceContext{}, liberr.ProtocolViolation.Errorf("tracing: malformed traceparent")
	}
	spanHex := header[36:52]
	if header[52] != '-' {
		return TraceContext{}, liberr.ProtocolViolation.Errorf("tracing: malformed traceparent")
	}
	flagsHex := header[53:55]

	traceID, err := oteltrace.TraceIDFromHex(traceHex)
	if err != nil {
		return TraceContext{}, liberr.ProtocolViolation.Errorf("tracing: invalid trace id: %v", err)
	}
	spanID, err := oteltrace.SpanIDFromHex(spanHex)
	if err != nil {
		return TraceContext{}, liberr.ProtocolViolation.Errorf("tracing: invalid span id: %v", err)
	}
	flags, err := strconv.ParseUint(flagsHex, 16, 8)
	if err != nil {
		return TraceContext{}, liberr.ProtocolViolation.Errorf("tracing: invalid flags: %v", err)
	}

	return TraceContext{TraceID: traceID, SpanID: spanID, Sampled: flags&1 == 1}, nil
}
