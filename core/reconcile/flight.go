package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ReconcileFlight inserts the flight on first sighting of its callsign or re-points it
// at aircraftRef and refreshes lastSeen. The callsign is trimmed before lookup because
// receivers pad it with spaces.
//
// Callsigns are global keys: two aircraft flying the same callsign at different times
// share one flight row, which always references the aircraft that reported it last.
func (e *Engine) ReconcileFlight(ctx context.Context, store Store, aircraftRef int64, callsign string, now time.Time) (ref int64, inserted bool, err error) {
	callsign = strings.TrimSpace(callsign)
	if callsign == "" {
		return 0, false, fmt.Errorf("reconcile flight: empty callsign")
	}

	count, err := store.CountFlightByCallsign(ctx, callsign)
	if err != nil {
		return 0, false, fmt.Errorf("count flight: %w", err)
	}

	if count == 0 {
		if err := store.InsertFlight(ctx, aircraftRef, callsign, now, now); err != nil {
			return 0, false, fmt.Errorf("insert flight: %w", err)
		}
		inserted = true
		e.logger.Debug("Added flight", zap.String("callsign", callsign), zap.Int64("aircraft", aircraftRef))
	} else {
		if err := store.UpdateFlightAssociation(ctx, aircraftRef, now, callsign); err != nil {
			return 0, false, fmt.Errorf("update flight: %w", err)
		}
		e.logger.Debug("Updated flight", zap.String("callsign", callsign), zap.Int64("aircraft", aircraftRef))
	}

	ref, err = store.GetFlightRefByCallsign(ctx, callsign)
	if err != nil {
		return 0, false, fmt.Errorf("get flight id: %w", err)
	}
	return ref, inserted, nil
}
