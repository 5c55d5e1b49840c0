// Package reconcile turns full-state aircraft snapshots into aircraft, flight and
// position rows.
//
// A snapshot is a flat list of Records as reported by the receiver at one point in
// time. The Engine reconciles each record against the persistence Store in three steps:
//
//  1. Aircraft: insert on first sighting, otherwise refresh lastSeen.
//  2. Flight: only for records carrying a callsign. The trimmed callsign is the flight
//     key; an existing flight is re-pointed at the reporting aircraft and lastSeen refreshed.
//  3. Position: only when the full position group is present and the aircraft is airborne.
//     The report is appended unless the flight's most recent stored position carries the
//     same message counter.
//
// # Transactions
//
// Every snapshot runs inside one TxRunner.InTx call. The Store handed to the callback is
// bound to that transaction; the whole snapshot commits or none of it does. The engine
// never retries: a failed snapshot is returned to the caller and is considered lost.
//
// # Stores
//
// Store is a capability interface, not a query builder. feature/flights implements it once
// on top of GORM; the SQL dialect and table naming are chosen at startup by configuration.
//
// # Usage
//
//	engine := reconcile.NewEngine(flights.NewStore(db, profile), logger)
//	result, err := engine.ProcessSnapshot(ctx, records)
package reconcile
