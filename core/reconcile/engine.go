package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Engine reconciles snapshots against a Store. It holds no per-snapshot state and
// expects callers to submit one snapshot at a time.
type Engine struct {
	runner TxRunner
	logger *zap.Logger
	clock  func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for firstSeen, lastSeen and position time.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine creates an engine running every snapshot through runner.
func NewEngine(runner TxRunner, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		runner: runner,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessSnapshot reconciles all records of one snapshot inside a single transaction.
// Records are processed in order. If any record fails, the whole snapshot is rolled
// back and the error is returned; no Result is produced.
func (e *Engine) ProcessSnapshot(ctx context.Context, records []Record) (*Result, error) {
	for i := range records {
		if strings.TrimSpace(records[i].ICAO) == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingIdentity)
		}
	}

	// One timestamp per snapshot: every row touched by it shares the same ingestion time.
	now := e.clock().UTC()

	var result Result
	err := e.runner.InTx(ctx, func(store Store) error {
		result = Result{Records: len(records)}
		for i := range records {
			if err := e.processRecord(ctx, store, &records[i], now, &result); err != nil {
				return fmt.Errorf("record %d (%s): %w", i, records[i].ICAO, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (e *Engine) processRecord(ctx context.Context, store Store, r *Record, now time.Time, result *Result) error {
	aircraftRef, inserted, err := e.ReconcileAircraft(ctx, store, r.ICAO, now)
	if err != nil {
		return err
	}
	if inserted {
		result.AircraftInserted++
	} else {
		result.AircraftUpdated++
	}

	callsign := strings.TrimSpace(r.Callsign)
	if callsign == "" {
		return nil
	}

	flightRef, inserted, err := e.ReconcileFlight(ctx, store, aircraftRef, callsign, now)
	if err != nil {
		return err
	}
	if inserted {
		result.FlightsInserted++
	} else {
		result.FlightsUpdated++
	}

	if !r.HasPosition() || !r.Airborne() {
		result.PositionsSkipped++
		return nil
	}

	added, err := e.RecordPosition(ctx, store, flightRef, r, now)
	if err != nil {
		return err
	}
	if added {
		result.PositionsInserted++
	} else {
		result.PositionsDuplicate++
	}
	return nil
}
