package flights

import (
	"context"
	"fmt"
	"time"

	"flight-logger/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists aircraft, flights and positions through gorm using a schema profile.
// A Store created by NewStore runs transactions; the Store handed to a transaction
// callback is bound to that transaction.
type Store struct {
	db      *gorm.DB
	profile Profile
}

var (
	_ reconcile.Store    = (*Store)(nil)
	_ reconcile.TxRunner = (*Store)(nil)
)

// NewStore creates a store for db using the given profile.
func NewStore(db *gorm.DB, profile Profile) *Store {
	return &Store{db: db, profile: profile}
}

// Profile returns the schema profile the store writes to.
func (s *Store) Profile() Profile {
	return s.profile
}

// InTx runs fn inside one database transaction. The transaction commits when fn
// returns nil and rolls back on error or panic.
func (s *Store) InTx(ctx context.Context, fn func(store reconcile.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, profile: s.profile})
	})
}

// eq builds a quoted column = value condition so mixed-case column names survive
// dialects that fold unquoted identifiers.
func eq(column string, value any) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

func (s *Store) table(ctx context.Context, t Table) *gorm.DB {
	return s.db.WithContext(ctx).Table(t.Name)
}

func (s *Store) CountAircraftByIdentity(ctx context.Context, icao string) (int64, error) {
	t := s.profile.Aircraft
	var count int64
	if err := s.table(ctx, t).Where(eq(t.Col(ColICAO), icao)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count aircraft %s: %w", icao, err)
	}
	return count, nil
}

func (s *Store) GetAircraftRefByIdentity(ctx context.Context, icao string) (int64, error) {
	t := s.profile.Aircraft
	return s.pluckID(ctx, t, eq(t.Col(ColICAO), icao), "aircraft "+icao)
}

func (s *Store) InsertAircraft(ctx context.Context, icao string, firstSeen, lastSeen time.Time) error {
	t := s.profile.Aircraft
	row := map[string]any{
		t.Col(ColICAO):      icao,
		t.Col(ColFirstSeen): firstSeen,
		t.Col(ColLastSeen):  lastSeen,
	}
	if err := s.table(ctx, t).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert aircraft %s: %w", icao, err)
	}
	return nil
}

func (s *Store) UpdateAircraftLastSeen(ctx context.Context, icao string, lastSeen time.Time) error {
	t := s.profile.Aircraft
	err := s.table(ctx, t).
		Where(eq(t.Col(ColICAO), icao)).
		Updates(map[string]any{t.Col(ColLastSeen): lastSeen}).Error
	if err != nil {
		return fmt.Errorf("failed to update aircraft %s: %w", icao, err)
	}
	return nil
}

func (s *Store) CountFlightByCallsign(ctx context.Context, callsign string) (int64, error) {
	t := s.profile.Flights
	var count int64
	if err := s.table(ctx, t).Where(eq(t.Col(ColCallsign), callsign)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count flight %s: %w", callsign, err)
	}
	return count, nil
}

func (s *Store) GetFlightRefByCallsign(ctx context.Context, callsign string) (int64, error) {
	t := s.profile.Flights
	return s.pluckID(ctx, t, eq(t.Col(ColCallsign), callsign), "flight "+callsign)
}

func (s *Store) InsertFlight(ctx context.Context, aircraftRef int64, callsign string, firstSeen, lastSeen time.Time) error {
	t := s.profile.Flights
	row := map[string]any{
		t.Col(ColAircraft):  aircraftRef,
		t.Col(ColCallsign):  callsign,
		t.Col(ColFirstSeen): firstSeen,
		t.Col(ColLastSeen):  lastSeen,
	}
	if err := s.table(ctx, t).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert flight %s: %w", callsign, err)
	}
	return nil
}

func (s *Store) UpdateFlightAssociation(ctx context.Context, aircraftRef int64, lastSeen time.Time, callsign string) error {
	t := s.profile.Flights
	err := s.table(ctx, t).
		Where(eq(t.Col(ColCallsign), callsign)).
		Updates(map[string]any{
			t.Col(ColAircraft): aircraftRef,
			t.Col(ColLastSeen): lastSeen,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update flight %s: %w", callsign, err)
	}
	return nil
}

// GetMostRecentPositionToken reads the message token of the flight's newest position.
// Rows sharing a timestamp are ordered by id so the last inserted one wins.
func (s *Store) GetMostRecentPositionToken(ctx context.Context, flightRef int64) (int64, bool, error) {
	t := s.profile.Positions
	var tokens []int64
	err := s.table(ctx, t).
		Where(eq(t.Col(ColFlight), flightRef)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: t.Col(ColTime)}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: t.Col(ColID)}, Desc: true}).
		Limit(1).
		Pluck(t.Col(ColMessage), &tokens).Error
	if err != nil {
		return 0, false, fmt.Errorf("failed to read latest position of flight %d: %w", flightRef, err)
	}
	if len(tokens) == 0 {
		return 0, false, nil
	}
	return tokens[0], true, nil
}

// InsertPosition appends a position row. The squawk column is left out entirely when
// the record has none, so it stays NULL instead of taking a column default.
func (s *Store) InsertPosition(ctx context.Context, p reconcile.Position) error {
	t := s.profile.Positions
	row := map[string]any{
		t.Col(ColFlight):       p.Flight,
		t.Col(ColTime):         p.Time,
		t.Col(ColMessage):      p.Message,
		t.Col(ColLatitude):     p.Latitude,
		t.Col(ColLongitude):    p.Longitude,
		t.Col(ColTrack):        p.Track,
		t.Col(ColAltitude):     p.Altitude,
		t.Col(ColVerticalRate): p.VerticalRate,
		t.Col(ColSpeed):        p.Speed,
	}
	if p.Squawk != nil {
		row[t.Col(ColSquawk)] = *p.Squawk
	}
	if err := s.table(ctx, t).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert position for flight %d: %w", p.Flight, err)
	}
	return nil
}

func (s *Store) pluckID(ctx context.Context, t Table, cond clause.Expression, what string) (int64, error) {
	var ids []int64
	if err := s.table(ctx, t).Where(cond).Limit(1).Pluck(t.Col(ColID), &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to get id of %s: %w", what, err)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%s: %w", what, reconcile.ErrNotFound)
	}
	return ids[0], nil
}
