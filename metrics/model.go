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

package metrics

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	vmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type collector struct {
	rate      float64
	retention time.Duration

	registry *prometheus.Registry
	vmSet    *vmetrics.Set

	mu         sync.Mutex
	counters   map[string]*counterImpl
	gauges     map[string]*gaugeImpl
	histograms map[string]*histogramImpl
	timings    map[string]*histogramImpl
}

func newCollector(rate float64, retention time.Duration) *collector {
	return &collector{
		rate:       rate,
		retention:  retention,
		registry:   prometheus.NewRegistry(),
		vmSet:      vmetrics.NewSet(),
		counters:   make(map[string]*counterImpl),
		gauges:     make(map[string]*gaugeImpl),
		histograms: make(map[string]*histogramImpl),
		timings:    make(map[string]*histogramImpl),
	}
}

// ---- Counter (backed by prometheus/client_golang, the structured-export target) ----

type counterImpl struct {
	pc prometheus.Counter
	v  uint64
}

func (c *collector) Counter(name string) Counter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c, ok := c.counters[name]; ok {
		return c
	}

	pc := prometheus.NewCounter(prometheus.CounterOpts{Name: sanitize(name), Help: name})
	_ = c.registry.Register(pc)

	ci := &counterImpl{pc: pc}
	c.counters[name] = ci
	return ci
}

func (c *counterImpl) Inc()           { c.Add(1) }
func (c *counterImpl) Add(delta uint64) {
	atomic.AddUint64(&c.v, delta)
	c.pc.Add(float64(delta))
}
func (c *counterImpl) Value() uint64 { return atomic.LoadUint64(&c.v) }

// ---- Gauge (backed by prometheus/client_golang) ----

type gaugeImpl struct {
	pg prometheus.Gauge
	v  atomic.Value // float64
}

func (c *collector) Gauge(name string) Gauge {
	c.mu.Lock()
	defer c.mu.Unlock()

	if g, ok := c.gauges[name]; ok {
		return g
	}

	pg := prometheus.NewGauge(prometheus.GaugeOpts{Name: sanitize(name), Help: name})
	_ = c.registry.Register(pg)

	gi := &gaugeImpl{pg: pg}
	gi.v.Store(0.0)
	c.gauges[name] = gi
	return gi
}

func (g *gaugeImpl) Set(v float64) {
	g.v.Store(v)
	g.pg.Set(v)
}

func (g *gaugeImpl) Add(delta float64) {
	g.Set(g.Value() + delta)
}

func (g *gaugeImpl) Value() float64 { return g.v.Load().(float64) }

// ---- Histogram / Timing (backed by VictoriaMetrics/metrics, the
// delimited-tabular-export target) plus this package's own retained raw
// samples, since neither library retains individual observations the way
// spec §4.13's "raw samples only; no interpolation" requires. ----

type histogramImpl struct {
	vh   *vmetrics.Histogram
	rate float64
	keep time.Duration

	mu      sync.Mutex
	samples []Sample
}

func newHistogramImpl(vh *vmetrics.Histogram, rate float64, keep time.Duration) *histogramImpl {
	return &histogramImpl{vh: vh, rate: rate, keep: keep}
}

func (h *histogramImpl) observe(v float64) {
	h.vh.Update(v)

	if h.rate < 1 && rand.Float64() >= h.rate {
		return
	}

	now := time.Now()
	h.mu.Lock()
	h.samples = append(h.samples, Sample{Value: v, At: now})
	h.trimLocked(now)
	h.mu.Unlock()
}

func (h *histogramImpl) trimLocked(now time.Time) {
	if h.keep <= 0 {
		return
	}
	cut := now.Add(-h.keep)
	i := 0
	for ; i < len(h.samples); i++ {
		if h.samples[i].At.After(cut) {
			break
		}
	}
	h.samples = h.samples[i:]
}

func (h *histogramImpl) Observe(v float64) { h.observe(v) }

func (h *histogramImpl) Samples() []Sample {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.trimLocked(time.Now())
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

type timingAdapter struct{ *histogramImpl }

func (t timingAdapter) Observe(d time.Duration) { t.histogramImpl.observe(float64(d.Milliseconds())) }

func (c *collector) Histogram(name string) Histogram {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.histograms[name]; ok {
		return h
	}
	vh := c.vmSet.GetOrCreateHistogram(sanitize(name))
	h := newHistogramImpl(vh, c.rate, c.retention)
	c.histograms[name] = h
	return h
}

func (c *collector) Timing(name string) Timing {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timings[name]; ok {
		return timingAdapter{t}
	}
	vh := c.vmSet.GetOrCreateHistogram(sanitize(name))
	h := newHistogramImpl(vh, c.rate, c.retention)
	c.timings[name] = h
	return timingAdapter{h}
}

// ---- snapshot + export ----

func (c *collector) Snapshot() []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Snapshot, 0, len(c.counters)+len(c.gauges)+len(c.histograms)+len(c.timings))
	for name, v := range c.counters {
		out = append(out, Snapshot{Name: name, Kind: KindCounter, Value: float64(v.Value())})
	}
	for name, v := range c.gauges {
		out = append(out, Snapshot{Name: name, Kind: KindGauge, Value: v.Value()})
	}
	for name, v := range c.histograms {
		out = append(out, Snapshot{Name: name, Kind: KindHistogram, Samples: v.Samples()})
	}
	for name, v := range c.timings {
		out = append(out, Snapshot{Name: name, Kind: KindTiming, Samples: v.Samples()})
	}
	return out
}

func (c *collector) ExportPrometheus() (string, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (c *collector) ExportJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}

func (c *collector) ExportTabular() (string, error) {
	var buf bytes.Buffer
	c.vmSet.WritePrometheus(&buf)
	return buf.String(), nil
}

// sanitize coerces a connection-core metric name (which may contain
// characters like '.' or '/') into one client_golang's NewCounter won't
// reject; client_golang validates Name against the Prometheus metric-name
// grammar ([a-zA-Z_:][a-zA-Z0-9_:]*).
func sanitize(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_', b == ':':
			out[i] = b
		default:
			out[i] = '_'
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		return "m_" + string(out)
	}
	return string(out)
}
