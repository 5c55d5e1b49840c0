package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the flight logger.
type Registry struct {
	reg *prometheus.Registry

	// Snapshot metrics
	SnapshotsTotal   *prometheus.CounterVec
	SnapshotDuration prometheus.Histogram
	SnapshotRecords  prometheus.Histogram
	QueueDropped     prometheus.Counter
	QueueDepth       prometheus.Gauge

	// Reconciliation metrics
	AircraftTotal   *prometheus.CounterVec
	FlightsTotal    *prometheus.CounterVec
	PositionsTotal  *prometheus.CounterVec
	ArchiveFailures prometheus.Counter
}

// NewRegistry creates a registry with all metrics registered on a private prometheus.Registry,
// so several instances can coexist in tests.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Registry{
		reg: reg,
		SnapshotsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlogger_snapshots_total",
				Help: "Snapshots processed by outcome (committed, failed, unreadable)",
			},
			[]string{"outcome"},
		),
		SnapshotDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flightlogger_snapshot_duration_seconds",
				Help:    "Time spent reconciling one snapshot",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
		),
		SnapshotRecords: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flightlogger_snapshot_records",
				Help:    "Aircraft records per snapshot",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		QueueDropped: f.NewCounter(
			prometheus.CounterOpts{
				Name: "flightlogger_queue_dropped_total",
				Help: "Snapshot notifications dropped because the queue was full",
			},
		),
		QueueDepth: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "flightlogger_queue_depth",
				Help: "Snapshot notifications waiting for the worker",
			},
		),
		AircraftTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlogger_aircraft_total",
				Help: "Aircraft reconciled by action (inserted, updated)",
			},
			[]string{"action"},
		),
		FlightsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlogger_flights_total",
				Help: "Flights reconciled by action (inserted, updated)",
			},
			[]string{"action"},
		),
		PositionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlogger_positions_total",
				Help: "Position reports by action (inserted, duplicate, skipped)",
			},
			[]string{"action"},
		),
		ArchiveFailures: f.NewCounter(
			prometheus.CounterOpts{
				Name: "flightlogger_archive_failures_total",
				Help: "Snapshot archive uploads that failed",
			},
		),
	}
}

// Gatherer exposes the underlying registry for the /metrics handler.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
