package service

import (
	"context"

	"go.uber.org/zap"

	"railboard/internal/models"
)

// LiveboardFetcher returns the raw departures currently on a station's board.
type LiveboardFetcher interface {
	Liveboard(ctx context.Context, station string) ([]models.RawDeparture, error)
}

// DepartureWriter persists a station batch and reports how many rows were new.
type DepartureWriter interface {
	InsertBatch(ctx context.Context, departures []*models.Departure) (int, error)
}

// IngestService runs the fetch -> normalize -> write pipeline for one station.
type IngestService struct {
	fetcher LiveboardFetcher
	writer  DepartureWriter
	logger  *zap.Logger
}

// NewIngestService returns service instance.
func NewIngestService(fetcher LiveboardFetcher, writer DepartureWriter, logger *zap.Logger) *IngestService {
	return &IngestService{
		fetcher: fetcher,
		writer:  writer,
		logger:  logger,
	}
}

// IngestStation fetches the station's liveboard and stores every departure
// not seen before, returning the number of newly inserted rows. Records that
// fail normalization are skipped without aborting the batch; upstream and
// storage failures propagate to the caller.
func (s *IngestService) IngestStation(ctx context.Context, station string) (int, error) {
	raws, err := s.fetcher.Liveboard(ctx, station)
	if err != nil {
		return 0, err
	}

	departures := make([]*models.Departure, 0, len(raws))
	for _, raw := range raws {
		departure, err := NormalizeDeparture(station, raw)
		if err != nil {
			s.logger.Debug("skipping malformed departure",
				zap.String("station", station),
				zap.String("vehicle", raw.Vehicle),
				zap.Error(err))
			continue
		}
		departures = append(departures, departure)
	}

	inserted, err := s.writer.InsertBatch(ctx, departures)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("station ingested",
		zap.String("station", station),
		zap.Int("fetched", len(raws)),
		zap.Int("inserted", inserted))
	return inserted, nil
}
