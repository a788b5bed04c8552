// Package poolmetrics exposes Prometheus instrumentation for the segment
// pool and codec: how many segments are in flight, how long encode/decode
// takes, and how many types the layout cache holds.
package poolmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the counters and histograms a running RPC endpoint
// registers against the default Prometheus registry.
type Metrics struct {
	segmentsAcquiredTotal *prometheus.CounterVec
	segmentsAvailable     prometheus.Gauge
	segmentsAllocated     prometheus.Gauge

	codecOperationsTotal   *prometheus.CounterVec
	codecOperationDuration *prometheus.HistogramVec

	layoutCacheSize prometheus.Gauge
}

// NewMetrics creates and registers pool/codec metrics under the given
// namespace (e.g. the generated service's package name), so multiple
// services in one process don't collide on metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		segmentsAcquiredTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "segments_acquired_total",
				Help:      "Total number of segments acquired from the pool.",
			},
			[]string{"status"},
		),
		segmentsAvailable: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "segments_available",
				Help:      "Number of segments currently sitting in the free list.",
			},
		),
		segmentsAllocated: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "segments_allocated",
				Help:      "Number of segments currently leased out to callers.",
			},
		),
		codecOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "codec",
				Name:      "operations_total",
				Help:      "Total number of encode/decode operations.",
			},
			[]string{"operation", "status"},
		),
		codecOperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "codec",
				Name:      "operation_duration_seconds",
				Help:      "Encode/decode duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		layoutCacheSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "codec",
				Name:      "layout_cache_size",
				Help:      "Number of message types whose reflective layout has been cached.",
			},
		),
	}
}

// RecordAcquire records the outcome of a pool acquire call.
func (m *Metrics) RecordAcquire(success bool) {
	m.segmentsAcquiredTotal.WithLabelValues(statusLabel(success)).Inc()
}

// UpdatePoolStats refreshes the pool's gauges from its live counters.
func (m *Metrics) UpdatePoolStats(available, allocated int64) {
	m.segmentsAvailable.Set(float64(available))
	m.segmentsAllocated.Set(float64(allocated))
}

// RecordCodecOperation records one encode/decode call's outcome and
// duration.
func (m *Metrics) RecordCodecOperation(operation string, success bool, duration time.Duration) {
	m.codecOperationsTotal.WithLabelValues(operation, statusLabel(success)).Inc()
	m.codecOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateLayoutCacheSize refreshes the layout cache size gauge.
func (m *Metrics) UpdateLayoutCacheSize(size int) {
	m.layoutCacheSize.Set(float64(size))
}

func statusLabel(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}
