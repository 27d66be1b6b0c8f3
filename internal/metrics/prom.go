// internal/metrics/prom.go
// Package metrics centralises Prometheus metric registration for the tf2
// daemon and its adapters. It exposes typed collectors so that code can
// remain import-cycle-free. The package registers with the global
// prometheus.DefaultRegisterer, which callers typically expose via the
// /metrics HTTP handler from the Prometheus client library.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// Gauge metrics ---------------------------------------------------------
	BufferEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tf2",
		Subsystem: "buffer",
		Name:      "edges",
		Help:      "Number of directed (parent, child) edges currently held by the buffer.",
	})

	WatchSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tf2",
		Subsystem: "buffer",
		Name:      "watch_subscribers",
		Help:      "Current number of active /watch subscriber connections.",
	})

	// Counter metrics -------------------------------------------------------
	SamplesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tf2",
		Subsystem: "buffer",
		Name:      "samples_total",
		Help:      "Total number of stamped transform samples ingested, by channel (dynamic/static).",
	}, []string{"channel"})

	IngestBatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tf2",
		Subsystem: "buffer",
		Name:      "ingest_batches_total",
		Help:      "Total number of batches received over the Ingest RPC.",
	})

	LookupErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tf2",
		Subsystem: "buffer",
		Name:      "lookup_errors_total",
		Help:      "Total number of failed lookups, by error kind (lookup_in_past, lookup_in_future, could_not_find_transform, could_not_acquire_lock).",
	}, []string{"kind"})

	LookupDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tf2",
		Subsystem: "buffer",
		Name:      "lookup_duration_seconds",
		Help:      "Wall-clock time spent inside LookupTransform, including path search and interpolation.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Register exports all metrics; safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			BufferEdges,
			WatchSubscribers,
			SamplesTotal,
			IngestBatchesTotal,
			LookupErrorsTotal,
			LookupDurationSeconds,
		)
	})
}

// ErrorKind classifies a lookup failure for the lookup_errors_total label.
// Matching a typed pkg/tf2 error to a label is the caller's job (see
// statusFromLookupError in internal/rpc), since this package must not import pkg/tf2 to stay
// dependency-light.
type ErrorKind string

const (
	ErrorKindLookupInPast          ErrorKind = "lookup_in_past"
	ErrorKindLookupInFuture        ErrorKind = "lookup_in_future"
	ErrorKindCouldNotFindTransform ErrorKind = "could_not_find_transform"
	ErrorKindCouldNotAcquireLock   ErrorKind = "could_not_acquire_lock"
)

// ObserveLookupError increments LookupErrorsTotal for the given kind.
func ObserveLookupError(kind ErrorKind) {
	LookupErrorsTotal.WithLabelValues(string(kind)).Inc()
}
