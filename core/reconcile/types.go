package reconcile

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by a Store when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMissingIdentity is returned when a snapshot contains a record without an identity code.
	ErrMissingIdentity = errors.New("record has no identity code")
)

// Altitude is a barometric altitude report. Ground marks the receiver's on-ground
// sentinel, in which case Feet carries no meaning.
type Altitude struct {
	Feet   int
	Ground bool
}

// Record is one aircraft state from a snapshot. Nil pointers mark fields the receiver
// did not report.
type Record struct {
	// ICAO is the transponder identity code.
	ICAO string
	// Callsign is the raw flight identifier; blank means absent.
	Callsign string
	// Squawk is the Mode A code, if reported.
	Squawk *string
	// Messages is the per-aircraft message counter used as the position de-dup token.
	Messages int64

	Latitude     *float64
	Longitude    *float64
	Altitude     *Altitude
	Track        *float64
	VerticalRate *int
	Speed        *int
}

// HasPosition reports whether all six position fields are present.
func (r *Record) HasPosition() bool {
	return r.Latitude != nil &&
		r.Longitude != nil &&
		r.Altitude != nil &&
		r.Track != nil &&
		r.VerticalRate != nil &&
		r.Speed != nil
}

// Airborne reports whether an altitude is present and is not the on-ground sentinel.
func (r *Record) Airborne() bool {
	return r.Altitude != nil && !r.Altitude.Ground
}

// Position is a row appended to a flight's position history.
type Position struct {
	Flight       int64
	Time         time.Time
	Message      int64
	Squawk       *string
	Latitude     float64
	Longitude    float64
	Track        float64
	Altitude     int
	VerticalRate int
	Speed        int
}

// Result summarizes the changes committed for one snapshot.
type Result struct {
	Records int `json:"records"`

	AircraftInserted int `json:"aircraft_inserted"`
	AircraftUpdated  int `json:"aircraft_updated"`

	FlightsInserted int `json:"flights_inserted"`
	FlightsUpdated  int `json:"flights_updated"`

	PositionsInserted  int `json:"positions_inserted"`
	PositionsDuplicate int `json:"positions_duplicate"`
	// PositionsSkipped counts records with a callsign whose position group was
	// incomplete or on the ground.
	PositionsSkipped int `json:"positions_skipped"`
}
