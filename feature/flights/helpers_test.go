package flights

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"flight-logger/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var schemas = map[string][]string{
	ProfilePortal: {
		`CREATE TABLE adsb_aircraft (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			icao VARCHAR(24) NOT NULL,
			firstSeen DATETIME NOT NULL,
			lastSeen DATETIME NOT NULL
		)`,
		`CREATE TABLE adsb_flights (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			aircraft INTEGER NOT NULL,
			flight VARCHAR(100) NOT NULL,
			firstSeen DATETIME NOT NULL,
			lastSeen DATETIME NOT NULL
		)`,
		`CREATE TABLE adsb_positions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			flight INTEGER NOT NULL,
			time DATETIME NOT NULL,
			message INTEGER NOT NULL,
			squawk VARCHAR(4),
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			track DOUBLE NOT NULL,
			altitude INTEGER NOT NULL,
			verticleRate INTEGER NOT NULL,
			speed INTEGER NOT NULL
		)`,
	},
	ProfileStandard: {
		`CREATE TABLE aircraft (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			icao VARCHAR(24) NOT NULL UNIQUE,
			first_seen DATETIME NOT NULL,
			last_seen DATETIME NOT NULL
		)`,
		`CREATE TABLE flight (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			aircraft_id INTEGER NOT NULL REFERENCES aircraft(id),
			callsign VARCHAR(16) NOT NULL UNIQUE,
			first_seen DATETIME NOT NULL,
			last_seen DATETIME NOT NULL
		)`,
		`CREATE TABLE position (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			flight_id INTEGER NOT NULL REFERENCES flight(id),
			time DATETIME NOT NULL,
			message INTEGER NOT NULL,
			squawk VARCHAR(4),
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			track DOUBLE NOT NULL,
			altitude INTEGER NOT NULL,
			vertical_rate INTEGER NOT NULL,
			speed INTEGER NOT NULL
		)`,
	},
}

// setupTestDB creates an in-memory SQLite DB with the tables of the given profile.
func setupTestDB(t *testing.T, profile string) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, profile)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, ddl := range schemas[profile] {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// steppingClock returns successive timestamps one minute apart, starting at t0.
func steppingClock() func() time.Time {
	next := t0
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func newEngine(runner reconcile.TxRunner) *reconcile.Engine {
	return reconcile.NewEngine(runner, zap.NewNop(), reconcile.WithClock(steppingClock()))
}

func ptr[T any](v T) *T { return &v }

func airborne(icao, callsign string, message int64) reconcile.Record {
	return reconcile.Record{
		ICAO:         icao,
		Callsign:     callsign,
		Messages:     message,
		Latitude:     ptr(47.4502),
		Longitude:    ptr(-122.3088),
		Altitude:     &reconcile.Altitude{Feet: 8500},
		Track:        ptr(181.2),
		VerticalRate: ptr(1024),
		Speed:        ptr(250),
	}
}

func forEachProfile(t *testing.T, fn func(t *testing.T, db *gorm.DB, store *Store)) {
	for _, name := range []string{ProfilePortal, ProfileStandard} {
		t.Run(name, func(t *testing.T) {
			profile, err := GetProfileByName(name)
			if err != nil {
				t.Fatal(err)
			}
			db := setupTestDB(t, name)
			fn(t, db, NewStore(db, profile))
		})
	}
}
