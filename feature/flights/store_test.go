package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight-logger/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingStore fails InsertAircraft for one identity code.
type failingStore struct {
	reconcile.Store
	icao string
	err  error
}

func (f *failingStore) InsertAircraft(ctx context.Context, icao string, firstSeen, lastSeen time.Time) error {
	if icao == f.icao {
		return f.err
	}
	return f.Store.InsertAircraft(ctx, icao, firstSeen, lastSeen)
}

type failingRunner struct {
	store *Store
	icao  string
	err   error
}

func (r *failingRunner) InTx(ctx context.Context, fn func(store reconcile.Store) error) error {
	return r.store.InTx(ctx, func(s reconcile.Store) error {
		return fn(&failingStore{Store: s, icao: r.icao, err: r.err})
	})
}

func TestStore_AircraftUpsertIsIdempotent(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		engine := newEngine(store)

		_, err := engine.ProcessSnapshot(ctx, []reconcile.Record{{ICAO: "a0b1c2"}})
		require.NoError(t, err)
		res, err := engine.ProcessSnapshot(ctx, []reconcile.Record{{ICAO: "a0b1c2"}})
		require.NoError(t, err)
		assert.Equal(t, 1, res.AircraftUpdated)

		counts, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts.Aircraft)

		a, err := store.FindAircraft(ctx, "a0b1c2")
		require.NoError(t, err)
		assert.True(t, a.FirstSeen.Equal(t0), "firstSeen is kept: %s", a.FirstSeen)
		assert.True(t, a.LastSeen.Equal(t0.Add(time.Minute)), "lastSeen is refreshed: %s", a.LastSeen)
	})
}

func TestStore_FlightReassociation(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		engine := newEngine(store)

		_, err := engine.ProcessSnapshot(ctx, []reconcile.Record{{ICAO: "aaaaaa", Callsign: "UAL123  "}})
		require.NoError(t, err)
		_, err = engine.ProcessSnapshot(ctx, []reconcile.Record{{ICAO: "bbbbbb", Callsign: "UAL123"}})
		require.NoError(t, err)

		counts, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts.Flights)

		b, err := store.FindAircraft(ctx, "bbbbbb")
		require.NoError(t, err)
		f, err := store.FindFlight(ctx, "UAL123")
		require.NoError(t, err)
		assert.Equal(t, "UAL123", f.Callsign)
		assert.Equal(t, b.ID, f.AircraftID)
		assert.True(t, f.FirstSeen.Equal(t0))
		assert.True(t, f.LastSeen.Equal(t0.Add(time.Minute)))
	})
}

func TestStore_PositionDedupByAdjacentToken(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		engine := newEngine(store)

		for _, msg := range []int64{42, 42, 43, 42} {
			_, err := engine.ProcessSnapshot(ctx, []reconcile.Record{airborne("aaaaaa", "ASA7", msg)})
			require.NoError(t, err)
		}

		f, err := store.FindFlight(ctx, "ASA7")
		require.NoError(t, err)
		positions, err := store.ListPositions(ctx, f.ID, 0)
		require.NoError(t, err)

		require.Len(t, positions, 3)
		assert.Equal(t, []int64{42, 43, 42}, []int64{positions[2].Message, positions[1].Message, positions[0].Message})
	})
}

func TestStore_LatestTokenTieBrokenByID(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		err := store.InTx(ctx, func(s reconcile.Store) error {
			for _, msg := range []int64{5, 9} {
				p := reconcile.Position{Flight: 1, Time: t0, Message: msg}
				if err := s.InsertPosition(ctx, p); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		token, found, err := store.GetMostRecentPositionToken(ctx, 1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(9), token)

		_, found, err = store.GetMostRecentPositionToken(ctx, 2)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestStore_IncompleteAndGroundPositionsSkipped(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		engine := newEngine(store)

		partial := airborne("aaaaaa", "N123AB", 1)
		partial.VerticalRate = nil
		ground := airborne("bbbbbb", "N456CD", 1)
		ground.Altitude = &reconcile.Altitude{Ground: true}

		res, err := engine.ProcessSnapshot(ctx, []reconcile.Record{partial, ground})
		require.NoError(t, err)
		assert.Equal(t, 2, res.PositionsSkipped)

		counts, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, &Counts{Aircraft: 2, Flights: 2, Positions: 0}, counts)
	})
}

func TestStore_SquawkBranching(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		engine := newEngine(store)

		withSquawk := airborne("aaaaaa", "SWA1", 1)
		withSquawk.Squawk = ptr("1200")
		_, err := engine.ProcessSnapshot(ctx, []reconcile.Record{withSquawk, airborne("bbbbbb", "SWA2", 1)})
		require.NoError(t, err)

		f1, err := store.FindFlight(ctx, "SWA1")
		require.NoError(t, err)
		p1, err := store.ListPositions(ctx, f1.ID, 10)
		require.NoError(t, err)
		require.Len(t, p1, 1)
		require.NotNil(t, p1[0].Squawk)
		assert.Equal(t, "1200", *p1[0].Squawk)

		f2, err := store.FindFlight(ctx, "SWA2")
		require.NoError(t, err)
		p2, err := store.ListPositions(ctx, f2.ID, 10)
		require.NoError(t, err)
		require.Len(t, p2, 1)
		assert.Nil(t, p2[0].Squawk)

		var nulls int64
		positions := store.Profile().Positions
		err = db.Table(positions.Name).Where(positions.Col(ColSquawk) + " IS NULL").Count(&nulls).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), nulls)
	})
}

func TestStore_PositionFields(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		_, err := newEngine(store).ProcessSnapshot(ctx, []reconcile.Record{airborne("aaaaaa", "QXE2", 77)})
		require.NoError(t, err)

		f, err := store.FindFlight(ctx, "QXE2")
		require.NoError(t, err)
		positions, err := store.ListPositions(ctx, f.ID, 1)
		require.NoError(t, err)
		require.Len(t, positions, 1)

		p := positions[0]
		assert.Equal(t, f.ID, p.FlightID)
		assert.True(t, p.Time.Equal(t0))
		assert.Equal(t, int64(77), p.Message)
		assert.InDelta(t, 47.4502, p.Latitude, 1e-9)
		assert.InDelta(t, -122.3088, p.Longitude, 1e-9)
		assert.InDelta(t, 181.2, p.Track, 1e-9)
		assert.Equal(t, 8500, p.Altitude)
		assert.Equal(t, 1024, p.VerticalRate)
		assert.Equal(t, 250, p.Speed)
	})
}

func TestStore_SnapshotAtomicity(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		boom := errors.New("disk full")

		// A committed snapshot before the failing one must survive untouched.
		_, err := newEngine(store).ProcessSnapshot(ctx, []reconcile.Record{airborne("ffffff", "PRE1", 1)})
		require.NoError(t, err)

		engine := newEngine(&failingRunner{store: store, icao: "cccccc", err: boom})
		res, err := engine.ProcessSnapshot(ctx, []reconcile.Record{
			airborne("aaaaaa", "A1", 1),
			airborne("bbbbbb", "B1", 1),
			airborne("cccccc", "C1", 1),
			airborne("dddddd", "D1", 1),
			airborne("eeeeee", "E1", 1),
		})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, boom)

		counts, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, &Counts{Aircraft: 1, Flights: 1, Positions: 1}, counts)

		_, err = store.FindAircraft(ctx, "aaaaaa")
		assert.ErrorIs(t, err, reconcile.ErrNotFound)
	})
}

func TestStore_NotFound(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()

		_, err := store.GetAircraftRefByIdentity(ctx, "000000")
		assert.ErrorIs(t, err, reconcile.ErrNotFound)
		_, err = store.GetFlightRefByCallsign(ctx, "NONE")
		assert.ErrorIs(t, err, reconcile.ErrNotFound)
		_, err = store.FindFlight(ctx, "NONE")
		assert.ErrorIs(t, err, reconcile.ErrNotFound)
	})
}

func TestStore_ListPositionsLimit(t *testing.T) {
	forEachProfile(t, func(t *testing.T, db *gorm.DB, store *Store) {
		ctx := context.Background()
		engine := newEngine(store)
		for msg := int64(1); msg <= 5; msg++ {
			_, err := engine.ProcessSnapshot(ctx, []reconcile.Record{airborne("aaaaaa", "FFT9", msg)})
			require.NoError(t, err)
		}

		f, err := store.FindFlight(ctx, "FFT9")
		require.NoError(t, err)
		positions, err := store.ListPositions(ctx, f.ID, 2)
		require.NoError(t, err)

		require.Len(t, positions, 2)
		assert.Equal(t, int64(5), positions[0].Message)
		assert.Equal(t, int64(4), positions[1].Message)
	})
}
