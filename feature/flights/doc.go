// Package flights persists reconciled aircraft, flights and positions.
//
// Store implements reconcile.Store and reconcile.TxRunner on top of gorm. All
// statements go through a Profile, which maps the logical tables and columns onto
// the physical schema:
//
//   - portal: adsb_aircraft, adsb_flights and adsb_positions with camelCase columns
//   - standard: aircraft, flight and position with snake_case columns
//
// The dialect (MySQL, PostgreSQL, SQLite) is chosen by core/database; nothing in this
// package depends on it. Store also offers the read queries used by the status API,
// and CheckSchema compares a profile against the live database.
//
// # Usage
//
//	profile, err := flights.GetProfileByName(cfg.Database.Profile)
//	store := flights.NewStore(db, profile)
//	engine := reconcile.NewEngine(store, log)
package flights
