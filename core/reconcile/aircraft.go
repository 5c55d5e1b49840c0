package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ReconcileAircraft inserts the aircraft on first sighting or refreshes its lastSeen,
// then returns its internal reference. inserted reports which branch was taken.
// The identity code is trimmed before it is stored or looked up.
func (e *Engine) ReconcileAircraft(ctx context.Context, store Store, icao string, now time.Time) (ref int64, inserted bool, err error) {
	icao = strings.TrimSpace(icao)
	if icao == "" {
		return 0, false, ErrMissingIdentity
	}

	count, err := store.CountAircraftByIdentity(ctx, icao)
	if err != nil {
		return 0, false, fmt.Errorf("count aircraft: %w", err)
	}

	if count == 0 {
		if err := store.InsertAircraft(ctx, icao, now, now); err != nil {
			return 0, false, fmt.Errorf("insert aircraft: %w", err)
		}
		inserted = true
		e.logger.Debug("Added aircraft", zap.String("icao", icao))
	} else {
		if err := store.UpdateAircraftLastSeen(ctx, icao, now); err != nil {
			return 0, false, fmt.Errorf("update aircraft: %w", err)
		}
		e.logger.Debug("Updated aircraft", zap.String("icao", icao))
	}

	ref, err = store.GetAircraftRefByIdentity(ctx, icao)
	if err != nil {
		return 0, false, fmt.Errorf("get aircraft id: %w", err)
	}
	return ref, inserted, nil
}
