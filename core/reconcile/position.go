package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RecordPosition appends the record's position to the flight unless the flight's most
// recent stored position carries the same message token. Only the latest row is
// compared; older rows with the same token are not looked at.
//
// The record must satisfy HasPosition; callers also filter out on-ground reports.
func (e *Engine) RecordPosition(ctx context.Context, store Store, flightRef int64, r *Record, now time.Time) (inserted bool, err error) {
	if !r.HasPosition() {
		return false, fmt.Errorf("record position: incomplete position for %s", r.ICAO)
	}

	last, found, err := store.GetMostRecentPositionToken(ctx, flightRef)
	if err != nil {
		return false, fmt.Errorf("get latest position: %w", err)
	}
	if found && last == r.Messages {
		e.logger.Debug("Position unchanged", zap.Int64("flight", flightRef), zap.Int64("message", r.Messages))
		return false, nil
	}

	p := Position{
		Flight:       flightRef,
		Time:         now,
		Message:      r.Messages,
		Squawk:       r.Squawk,
		Latitude:     *r.Latitude,
		Longitude:    *r.Longitude,
		Track:        *r.Track,
		Altitude:     r.Altitude.Feet,
		VerticalRate: *r.VerticalRate,
		Speed:        *r.Speed,
	}
	if err := store.InsertPosition(ctx, p); err != nil {
		return false, fmt.Errorf("insert position: %w", err)
	}

	e.logger.Debug("Inserted position",
		zap.Int64("flight", flightRef),
		zap.Int64("message", r.Messages),
		zap.Bool("squawk", r.Squawk != nil),
	)
	return true, nil
}
