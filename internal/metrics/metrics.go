package metrics

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a specific counter or histogram.
type MetricID int

const (
	MetricSignInSuccess MetricID = iota
	MetricSignInFailure
	MetricSignInRateLimited
	MetricSignUpSuccess
	MetricSignUpConflict
	MetricRefreshSuccess
	MetricRefreshMalformed
	MetricRefreshNoSession
	MetricRefreshMismatch
	MetricRefreshFailure
	MetricVerifySuccess
	MetricVerifyExpired
	MetricVerifySignatureInvalid
	MetricVerifyMalformed
	MetricForbidden
	MetricSessionCreated
	MetricLogout
	MetricVerifyLatency

	MetricIDCount
)

// HistogramBucketCount is the fixed bucket count for latency histograms.
const HistogramBucketCount = 8

// histogramBounds are upper bounds in nanoseconds; the last bucket is +Inf.
var histogramBounds = [HistogramBucketCount - 1]int64{
	int64(100 * time.Microsecond),
	int64(250 * time.Microsecond),
	int64(500 * time.Microsecond),
	int64(time.Millisecond),
	int64(5 * time.Millisecond),
	int64(25 * time.Millisecond),
	int64(100 * time.Millisecond),
}

// paddedCounter keeps each slot on its own cache line to avoid false sharing
// between concurrently incremented counters.
type paddedCounter struct {
	value atomic.Uint64
	_     [56]byte
}

// Config controls which metric families are active.
type Config struct {
	Enabled       bool
	EnableLatency bool
}

// Metrics holds the counter slots and the optional latency histogram.
// A nil *Metrics or a disabled config makes every method a no-op.
type Metrics struct {
	enabled bool
	latency bool

	counters [MetricIDCount]paddedCounter
	buckets  [HistogramBucketCount]paddedCounter
}

// Snapshot is a point-in-time deep copy of all metric values.
type Snapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// New creates a [Metrics] configured by cfg.
func New(cfg Config) *Metrics {
	return &Metrics{
		enabled: cfg.Enabled,
		latency: cfg.Enabled && cfg.EnableLatency,
	}
}

// Inc atomically increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id < 0 || id >= MetricIDCount {
		return
	}
	m.counters[id].value.Add(1)
}

// Observe records a verify-latency sample into its histogram bucket.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.latency || id != MetricVerifyLatency {
		return
	}

	ns := int64(d)
	for i, bound := range histogramBounds {
		if ns <= bound {
			m.buckets[i].value.Add(1)
			return
		}
	}
	m.buckets[HistogramBucketCount-1].value.Add(1)
}

// Snapshot deep-copies all counters and histograms.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Counters:   make(map[MetricID]uint64, MetricIDCount),
		Histograms: make(map[MetricID][]uint64, 1),
	}
	if m == nil || !m.enabled {
		return snap
	}

	for id := MetricID(0); id < MetricIDCount; id++ {
		if id == MetricVerifyLatency {
			continue
		}
		snap.Counters[id] = m.counters[id].value.Load()
	}

	if m.latency {
		buckets := make([]uint64, HistogramBucketCount)
		for i := range m.buckets {
			buckets[i] = m.buckets[i].value.Load()
		}
		snap.Histograms[MetricVerifyLatency] = buckets
	}

	return snap
}
