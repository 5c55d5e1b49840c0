package status

import (
	"context"

	"flight-logger/feature/flights"
	"flight-logger/feature/ingest"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Reader is the read side of the flights store.
type Reader interface {
	FindAircraft(ctx context.Context, icao string) (*flights.Aircraft, error)
	FindFlight(ctx context.Context, callsign string) (*flights.Flight, error)
	ListPositions(ctx context.Context, flightID int64, limit int) ([]flights.PositionRow, error)
	Count(ctx context.Context) (*flights.Counts, error)
	CheckSchema() (*flights.SchemaReport, error)
}

// StatsSource provides the ingest worker's counters.
type StatsSource interface {
	Stats() ingest.Stats
}

// Service backs the status endpoints.
type Service struct {
	reader   Reader
	stats    StatsSource
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// NewService creates a new status service.
func NewService(reader Reader, stats StatsSource, gatherer prometheus.Gatherer, logger *zap.Logger) *Service {
	return &Service{
		reader:   reader,
		stats:    stats,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Aircraft looks up an aircraft by identity code.
func (s *Service) Aircraft(ctx context.Context, icao string) (*flights.Aircraft, error) {
	return s.reader.FindAircraft(ctx, icao)
}

// Flight looks up a flight by callsign.
func (s *Service) Flight(ctx context.Context, callsign string) (*flights.Flight, error) {
	return s.reader.FindFlight(ctx, callsign)
}

// Positions returns the latest positions of the flight with the given callsign.
func (s *Service) Positions(ctx context.Context, callsign string, limit int) (*flights.Flight, []flights.PositionRow, error) {
	flight, err := s.reader.FindFlight(ctx, callsign)
	if err != nil {
		return nil, nil, err
	}
	positions, err := s.reader.ListPositions(ctx, flight.ID, limit)
	if err != nil {
		return nil, nil, err
	}
	return flight, positions, nil
}

// Counts returns the number of stored rows per table.
func (s *Service) Counts(ctx context.Context) (*flights.Counts, error) {
	return s.reader.Count(ctx)
}

// Ingest returns the ingest counters, or nil when no worker is running.
func (s *Service) Ingest() *ingest.Stats {
	if s.stats == nil {
		return nil
	}
	stats := s.stats.Stats()
	return &stats
}

// Schema checks the configured profile against the database.
func (s *Service) Schema() (*flights.SchemaReport, error) {
	return s.reader.CheckSchema()
}
