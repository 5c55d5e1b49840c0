// Package status serves the read-only HTTP API of a running flight logger.
//
// Public routes:
//
//	GET /health                       liveness
//	GET /metrics                      Prometheus exposition
//
// Routes behind the X-API-Key check when server.api_key is set:
//
//	GET /stats                        ingest counters and table sizes
//	GET /schema                       profile columns checked against the database
//	GET /aircraft/:icao               one aircraft
//	GET /flights/:callsign            one flight
//	GET /flights/:callsign/positions  latest positions, ?limit=N (default 100, max 1000)
package status
