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

// Package metrics implements the connection core's metrics collector
// (spec §4.13): counters, gauges, histograms and timings, with a sampling
// rate deciding whether an individual observation is retained and a
// retention window trimming series older than it. Raw samples only - no
// interpolation.
//
// Two real exporters are wired so the "structured, JSON snapshot,
// delimited tabular" export formats spec §4.13 names aren't hand-rolled
// reimplementations of an existing format: the structured (scrape-text)
// export goes through github.com/prometheus/client_golang's registry, and
// the delimited/tabular export goes through github.com/VictoriaMetrics/metrics's
// Set, which already emits a stable line-oriented format distinct from
// Prometheus's. JSON snapshot is this package's own, since neither library
// ships a JSON exposition format.
package metrics

import "time"

// Kind discriminates the four metric shapes.
type Kind uint8

const (
	KindCounter Kind = iota
	KindGauge
	KindHistogram
	KindTiming
)

// Sample is one raw observation, kept for histograms/timings only;
// counters and gauges retain just their current value (they represent
// exact state, not a distribution).
type Sample struct {
	Value float64
	At    time.Time
}

// Snapshot is a point-in-time view of one named metric.
type Snapshot struct {
	Name    string
	Kind    Kind
	Value   float64   // current value for Counter/Gauge
	Samples []Sample  // retained raw observations for Histogram/Timing
}

// Collector is the connection core's metrics registry.
//
// All methods are safe for concurrent use.
type Collector interface {
	// Counter returns the named monotone counter, creating it on first use.
	Counter(name string) Counter
	// Gauge returns the named arbitrary-value gauge, creating it on first use.
	Gauge(name string) Gauge
	// Histogram returns the named double-valued histogram, creating it on
	// first use.
	Histogram(name string) Histogram
	// Timing returns the named duration histogram (millisecond-valued
	// samples), creating it on first use.
	Timing(name string) Timing

	// Snapshot returns every known metric's current Snapshot.
	Snapshot() []Snapshot

	// ExportPrometheus renders the structured, line-oriented scrape-text
	// exposition format (via prometheus/client_golang's registry).
	ExportPrometheus() (string, error)
	// ExportJSON renders a JSON snapshot of every metric.
	ExportJSON() ([]byte, error)
	// ExportTabular renders the delimited tabular format (via
	// VictoriaMetrics/metrics's Set).
	ExportTabular() (string, error)
}

// Counter is a monotone, non-negative integer counter.
type Counter interface {
	Inc()
	Add(delta uint64)
	Value() uint64
}

// Gauge is an arbitrary-valued, settable double.
type Gauge interface {
	Set(v float64)
	Add(delta float64)
	Value() float64
}

// Histogram records double observations, subject to Collector's sampling
// rate and retention window.
type Histogram interface {
	Observe(v float64)
	Samples() []Sample
}

// Timing records durations as a millisecond-valued Histogram.
type Timing interface {
	Observe(d time.Duration)
	Samples() []Sample
}

// New returns a Collector sampling observations at rate (clamped to
// [0,1]) and retaining samples younger than retention (zero means
// unbounded retention).
func New(rate float64, retention time.Duration) Collector {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return newCollector(rate, retention)
}
