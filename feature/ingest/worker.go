package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"flight-logger/core/logger"
	"flight-logger/core/metrics"
	"flight-logger/core/reconcile"
	"flight-logger/feature/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome labels for the snapshots counter.
const (
	OutcomeCommitted  = "committed"
	OutcomeFailed     = "failed"
	OutcomeUnreadable = "unreadable"
)

// ErrUnreadable marks snapshot files that could not be read or decoded.
var ErrUnreadable = errors.New("unreadable snapshot")

// Processor reconciles the records of one snapshot.
type Processor interface {
	ProcessSnapshot(ctx context.Context, records []reconcile.Record) (*reconcile.Result, error)
}

// Archiver stores a copy of a committed snapshot file.
type Archiver interface {
	Archive(ctx context.Context, source string, data []byte, received time.Time) (string, error)
}

// Summary describes one processed snapshot file.
type Summary struct {
	ID         string            `json:"id"`
	Source     string            `json:"source"`
	ReceivedAt time.Time         `json:"received_at"`
	Duration   time.Duration     `json:"duration_ns"`
	Rejected   int               `json:"rejected"`
	Result     *reconcile.Result `json:"result,omitempty"`
	ArchiveKey string            `json:"archive_key,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Stats are the worker's running counters.
type Stats struct {
	Committed  int64            `json:"committed"`
	Failed     int64            `json:"failed"`
	Unreadable int64            `json:"unreadable"`
	Dropped    int64            `json:"dropped"`
	Totals     reconcile.Result `json:"totals"`
	Last       *Summary         `json:"last,omitempty"`
}

// Worker reads snapshot files and reconciles them one at a time.
type Worker struct {
	engine   Processor
	archiver Archiver
	metrics  *metrics.Registry
	logger   *zap.Logger
	clock    func() time.Time
	readFile func(string) ([]byte, error)

	mu    sync.Mutex
	stats Stats
}

// Option configures a Worker.
type Option func(*Worker)

// WithArchiver uploads every committed snapshot through a.
func WithArchiver(a Archiver) Option {
	return func(w *Worker) {
		w.archiver = a
	}
}

// WithMetrics records snapshot metrics in reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(w *Worker) {
		w.metrics = reg
	}
}

// WithClock overrides the time source used for reception timestamps and durations.
func WithClock(clock func() time.Time) Option {
	return func(w *Worker) {
		w.clock = clock
	}
}

// NewWorker creates a worker feeding snapshots to engine.
func NewWorker(engine Processor, logger *zap.Logger, opts ...Option) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Worker{
		engine:   engine,
		logger:   logger,
		clock:    time.Now,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run processes paths from queue until ctx is cancelled or the queue is closed.
// A snapshot that has started is always finished before Run returns. Failures are
// logged and counted; the snapshot is not retried.
func (w *Worker) Run(ctx context.Context, queue <-chan string) {
	w.logger.Info("Ingest worker started")
	defer w.logger.Info("Ingest worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-queue:
			if !ok {
				return
			}
			w.RecordQueueDepth(len(queue))
			// Cancellation stops the loop, not a snapshot already being written.
			// Errors are already logged and counted by ProcessFile.
			_, _ = w.ProcessFile(context.WithoutCancel(ctx), path)
		}
	}
}

// ProcessFile reads, decodes, reconciles and archives one snapshot file.
func (w *Worker) ProcessFile(ctx context.Context, path string) (*Summary, error) {
	received := w.clock().UTC()
	summary := &Summary{
		ID:         uuid.NewString(),
		Source:     path,
		ReceivedAt: received,
	}
	l := logger.WithSnapshot(w.logger, summary.ID, path)

	data, err := w.readFile(path)
	if err != nil {
		return w.fail(l, summary, OutcomeUnreadable, fmt.Errorf("%w: %v", ErrUnreadable, err))
	}
	snap, err := snapshot.Parse(data)
	if err != nil {
		return w.fail(l, summary, OutcomeUnreadable, fmt.Errorf("%w: %v", ErrUnreadable, err))
	}
	summary.Rejected = snap.Rejected
	if snap.Rejected > 0 {
		l.Warn("Skipped aircraft without identity code", zap.Int("count", snap.Rejected))
	}

	result, err := w.engine.ProcessSnapshot(ctx, snap.Records)
	summary.Duration = w.clock().Sub(received)
	if err != nil {
		return w.fail(l, summary, OutcomeFailed, err)
	}
	summary.Result = result

	if w.archiver != nil {
		key, err := w.archiver.Archive(ctx, path, data, received)
		if err != nil {
			// The snapshot is committed; a missing archive copy is only reported.
			l.Error("Failed to archive snapshot", zap.Error(err))
			if w.metrics != nil {
				w.metrics.ArchiveFailures.Inc()
			}
		} else {
			summary.ArchiveKey = key
		}
	}

	w.observe(summary)
	l.Info("Snapshot committed",
		zap.Int("records", result.Records),
		zap.Int("aircraft_inserted", result.AircraftInserted),
		zap.Int("aircraft_updated", result.AircraftUpdated),
		zap.Int("flights_inserted", result.FlightsInserted),
		zap.Int("flights_updated", result.FlightsUpdated),
		zap.Int("positions_inserted", result.PositionsInserted),
		zap.Int("positions_duplicate", result.PositionsDuplicate),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// RecordDrop counts a snapshot notification lost to a full queue.
func (w *Worker) RecordDrop(path string) {
	w.mu.Lock()
	w.stats.Dropped++
	w.mu.Unlock()
	if w.metrics != nil {
		w.metrics.QueueDropped.Inc()
	}
}

// RecordQueueDepth publishes the number of snapshot notifications waiting for the worker.
func (w *Worker) RecordQueueDepth(depth int) {
	if w.metrics != nil {
		w.metrics.QueueDepth.Set(float64(depth))
	}
}

// Stats returns a copy of the worker's counters.
func (w *Worker) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.stats
	if s.Last != nil {
		last := *s.Last
		s.Last = &last
	}
	return s
}

func (w *Worker) fail(l *zap.Logger, summary *Summary, outcome string, err error) (*Summary, error) {
	summary.Error = err.Error()
	l.Error("Snapshot dropped", zap.String("outcome", outcome), zap.Error(err))

	w.mu.Lock()
	if outcome == OutcomeUnreadable {
		w.stats.Unreadable++
	} else {
		w.stats.Failed++
	}
	w.stats.Last = summary
	w.mu.Unlock()

	if w.metrics != nil {
		w.metrics.SnapshotsTotal.WithLabelValues(outcome).Inc()
	}
	return summary, err
}

func (w *Worker) observe(summary *Summary) {
	res := summary.Result

	w.mu.Lock()
	w.stats.Committed++
	t := &w.stats.Totals
	t.Records += res.Records
	t.AircraftInserted += res.AircraftInserted
	t.AircraftUpdated += res.AircraftUpdated
	t.FlightsInserted += res.FlightsInserted
	t.FlightsUpdated += res.FlightsUpdated
	t.PositionsInserted += res.PositionsInserted
	t.PositionsDuplicate += res.PositionsDuplicate
	t.PositionsSkipped += res.PositionsSkipped
	w.stats.Last = summary
	w.mu.Unlock()

	if w.metrics == nil {
		return
	}
	m := w.metrics
	m.SnapshotsTotal.WithLabelValues(OutcomeCommitted).Inc()
	m.SnapshotDuration.Observe(summary.Duration.Seconds())
	m.SnapshotRecords.Observe(float64(res.Records))
	m.AircraftTotal.WithLabelValues("inserted").Add(float64(res.AircraftInserted))
	m.AircraftTotal.WithLabelValues("updated").Add(float64(res.AircraftUpdated))
	m.FlightsTotal.WithLabelValues("inserted").Add(float64(res.FlightsInserted))
	m.FlightsTotal.WithLabelValues("updated").Add(float64(res.FlightsUpdated))
	m.PositionsTotal.WithLabelValues("inserted").Add(float64(res.PositionsInserted))
	m.PositionsTotal.WithLabelValues("duplicate").Add(float64(res.PositionsDuplicate))
	m.PositionsTotal.WithLabelValues("skipped").Add(float64(res.PositionsSkipped))
}
