package flights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flight-logger/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Aircraft is a stored aircraft row.
type Aircraft struct {
	ID        int64     `json:"id"`
	ICAO      string    `json:"icao"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// Flight is a stored flight row.
type Flight struct {
	ID         int64     `json:"id"`
	AircraftID int64     `json:"aircraft_id"`
	Callsign   string    `json:"callsign"`
	FirstSeen  time.Time `json:"first_seen"`
	LastSeen   time.Time `json:"last_seen"`
}

// PositionRow is a stored position row.
type PositionRow struct {
	ID           int64     `json:"id"`
	FlightID     int64     `json:"flight_id"`
	Time         time.Time `json:"time"`
	Message      int64     `json:"message"`
	Squawk       *string   `json:"squawk"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Track        float64   `json:"track"`
	Altitude     int       `json:"altitude"`
	VerticalRate int       `json:"vertical_rate"`
	Speed        int       `json:"speed"`
}

// Counts holds the number of rows per table.
type Counts struct {
	Aircraft  int64 `json:"aircraft"`
	Flights   int64 `json:"flights"`
	Positions int64 `json:"positions"`
}

// selectAs selects the mapped columns of t aliased to their logical names, so rows
// scan into the structs above regardless of profile.
func selectAs(db *gorm.DB, t Table, logical ...string) *gorm.DB {
	parts := make([]string, 0, len(logical))
	args := make([]any, 0, len(logical))
	for _, name := range logical {
		parts = append(parts, "? AS "+name)
		args = append(args, clause.Column{Name: t.Col(name)})
	}
	return db.Select(strings.Join(parts, ", "), args...)
}

// FindAircraft returns the aircraft with the given identity code.
func (s *Store) FindAircraft(ctx context.Context, icao string) (*Aircraft, error) {
	t := s.profile.Aircraft
	var rows []Aircraft
	err := selectAs(s.table(ctx, t), t, ColID, ColICAO, ColFirstSeen, ColLastSeen).
		Where(eq(t.Col(ColICAO), icao)).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find aircraft %s: %w", icao, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("aircraft %s: %w", icao, reconcile.ErrNotFound)
	}
	return &rows[0], nil
}

// FindFlight returns the flight with the given callsign.
func (s *Store) FindFlight(ctx context.Context, callsign string) (*Flight, error) {
	t := s.profile.Flights
	var rows []struct {
		ID        int64
		Aircraft  int64
		Callsign  string
		FirstSeen time.Time
		LastSeen  time.Time
	}
	err := selectAs(s.table(ctx, t), t, ColID, ColAircraft, ColCallsign, ColFirstSeen, ColLastSeen).
		Where(eq(t.Col(ColCallsign), strings.TrimSpace(callsign))).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find flight %s: %w", callsign, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("flight %s: %w", callsign, reconcile.ErrNotFound)
	}
	r := rows[0]
	return &Flight{
		ID:         r.ID,
		AircraftID: r.Aircraft,
		Callsign:   r.Callsign,
		FirstSeen:  r.FirstSeen,
		LastSeen:   r.LastSeen,
	}, nil
}

// ListPositions returns up to limit positions of a flight, newest first. A limit of
// zero or less returns all of them.
func (s *Store) ListPositions(ctx context.Context, flightID int64, limit int) ([]PositionRow, error) {
	t := s.profile.Positions
	var rows []struct {
		ID           int64
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
	q := selectAs(s.table(ctx, t), t,
		ColID, ColFlight, ColTime, ColMessage, ColSquawk, ColLatitude,
		ColLongitude, ColTrack, ColAltitude, ColVerticalRate, ColSpeed).
		Where(eq(t.Col(ColFlight), flightID)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: t.Col(ColTime)}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: t.Col(ColID)}, Desc: true})
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list positions of flight %d: %w", flightID, err)
	}

	positions := make([]PositionRow, 0, len(rows))
	for _, r := range rows {
		positions = append(positions, PositionRow{
			ID:           r.ID,
			FlightID:     r.Flight,
			Time:         r.Time,
			Message:      r.Message,
			Squawk:       r.Squawk,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			Track:        r.Track,
			Altitude:     r.Altitude,
			VerticalRate: r.VerticalRate,
			Speed:        r.Speed,
		})
	}
	return positions, nil
}

// Count returns the number of rows in each table.
func (s *Store) Count(ctx context.Context) (*Counts, error) {
	var c Counts
	targets := []struct {
		table Table
		dest  *int64
	}{
		{s.profile.Aircraft, &c.Aircraft},
		{s.profile.Flights, &c.Flights},
		{s.profile.Positions, &c.Positions},
	}
	for _, target := range targets {
		if err := s.table(ctx, target.table).Count(target.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", target.table.Name, err)
		}
	}
	return &c, nil
}
