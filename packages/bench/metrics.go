package bench

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Latencies are recorded in nanoseconds and clamped to this ceiling.
const maxLatency = int64(10 * time.Second)

// Metrics collects parse latencies for a benchmark run
type Metrics struct {
	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
	inputs    map[string]*inputMetrics

	total  atomic.Int64
	errors atomic.Int64
	bytes  atomic.Int64

	startTime time.Time
	endTime   time.Time
}

type inputMetrics struct {
	name      string
	total     int64
	errors    int64
	histogram *hdrhistogram.Histogram
}

// NewMetrics creates an empty collector
func NewMetrics() *Metrics {
	return &Metrics{
		histogram: newHistogram(),
		inputs:    make(map[string]*inputMetrics),
	}
}

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(1, maxLatency, 3)
}

// Start marks the beginning of the run
func (m *Metrics) Start() {
	m.startTime = time.Now()
}

// Stop marks the end of the run
func (m *Metrics) Stop() {
	m.endTime = time.Now()
}

// Record adds one parse of the named input
func (m *Metrics) Record(name string, size int, duration time.Duration, err error) {
	m.total.Add(1)
	m.bytes.Add(int64(size))
	if err != nil {
		m.errors.Add(1)
	}

	value := max(min(duration.Nanoseconds(), maxLatency), 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	_ = m.histogram.RecordValue(value)

	im, ok := m.inputs[name]
	if !ok {
		im = &inputMetrics{name: name, histogram: newHistogram()}
		m.inputs[name] = im
	}
	im.total++
	if err != nil {
		im.errors++
	}
	_ = im.histogram.RecordValue(value)
}

// Summary is the result of a benchmark run
type Summary struct {
	Duration time.Duration
	Total    int64
	Errors   int64
	Bytes    int64

	ParsesPerSecond float64
	BytesPerSecond  float64

	P50    time.Duration
	P95    time.Duration
	P99    time.Duration
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration

	// Sorted by name
	Inputs []InputSummary
}

// InputSummary holds the latencies of a single input
type InputSummary struct {
	Name   string
	Total  int64
	Errors int64
	P50    time.Duration
	P99    time.Duration
	Mean   time.Duration
}

// GetSummary returns the metrics summary
func (m *Metrics) GetSummary() *Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := m.endTime.Sub(m.startTime)
	if m.endTime.IsZero() {
		duration = time.Since(m.startTime)
	}

	s := &Summary{
		Duration: duration,
		Total:    m.total.Load(),
		Errors:   m.errors.Load(),
		Bytes:    m.bytes.Load(),
		P50:      time.Duration(m.histogram.ValueAtQuantile(50)),
		P95:      time.Duration(m.histogram.ValueAtQuantile(95)),
		P99:      time.Duration(m.histogram.ValueAtQuantile(99)),
		Min:      time.Duration(m.histogram.Min()),
		Max:      time.Duration(m.histogram.Max()),
		Mean:     time.Duration(m.histogram.Mean()),
		StdDev:   time.Duration(m.histogram.StdDev()),
	}
	if secs := duration.Seconds(); secs > 0 {
		s.ParsesPerSecond = float64(s.Total) / secs
		s.BytesPerSecond = float64(s.Bytes) / secs
	}

	for _, im := range m.inputs {
		s.Inputs = append(s.Inputs, InputSummary{
			Name:   im.name,
			Total:  im.total,
			Errors: im.errors,
			P50:    time.Duration(im.histogram.ValueAtQuantile(50)),
			P99:    time.Duration(im.histogram.ValueAtQuantile(99)),
			Mean:   time.Duration(im.histogram.Mean()),
		})
	}
	sort.Slice(s.Inputs, func(i, j int) bool { return s.Inputs[i].Name < s.Inputs[j].Name })

	return s
}
