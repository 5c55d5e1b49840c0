package reconcile

import (
	"context"
	"time"
)

// Store is the set of persistence capabilities the engine needs.
// All calls made through one Store value belong to the same transaction.
type Store interface {
	// CountAircraftByIdentity returns the number of aircraft rows with this identity code.
	CountAircraftByIdentity(ctx context.Context, icao string) (int64, error)
	// GetAircraftRefByIdentity returns the aircraft's internal id, or ErrNotFound.
	GetAircraftRefByIdentity(ctx context.Context, icao string) (int64, error)
	// InsertAircraft creates an aircraft row.
	InsertAircraft(ctx context.Context, icao string, firstSeen, lastSeen time.Time) error
	// UpdateAircraftLastSeen refreshes lastSeen, leaving firstSeen untouched.
	UpdateAircraftLastSeen(ctx context.Context, icao string, lastSeen time.Time) error

	// CountFlightByCallsign returns the number of flight rows with this callsign.
	CountFlightByCallsign(ctx context.Context, callsign string) (int64, error)
	// GetFlightRefByCallsign returns the flight's internal id, or ErrNotFound.
	GetFlightRefByCallsign(ctx context.Context, callsign string) (int64, error)
	// InsertFlight creates a flight row associated with an aircraft.
	InsertFlight(ctx context.Context, aircraftRef int64, callsign string, firstSeen, lastSeen time.Time) error
	// UpdateFlightAssociation re-points the flight at aircraftRef and refreshes lastSeen.
	UpdateFlightAssociation(ctx context.Context, aircraftRef int64, lastSeen time.Time, callsign string) error

	// GetMostRecentPositionToken returns the message token of the flight's latest position.
	// found is false when the flight has no positions yet.
	GetMostRecentPositionToken(ctx context.Context, flightRef int64) (token int64, found bool, err error)
	// InsertPosition appends a position row. A nil Squawk leaves the column NULL.
	InsertPosition(ctx context.Context, p Position) error
}

// TxRunner scopes a Store to one transaction. InTx commits when fn returns nil and
// rolls back on error or panic; the Store must not be used after fn returns.
type TxRunner interface {
	InTx(ctx context.Context, fn func(store Store) error) error
}
