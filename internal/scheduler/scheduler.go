package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Ingestor runs one station's ingestion and reports the inserted row count.
type Ingestor interface {
	IngestStation(ctx context.Context, station string) (int, error)
}

// StatusRecorder receives the outcome of every station run. Optional.
type StatusRecorder interface {
	RecordRun(ctx context.Context, station string, inserted int, runErr error) error
}

// Scheduler polls every configured station on a fixed interval.
type Scheduler struct {
	stations []string
	interval time.Duration
	workers  int
	ingestor Ingestor
	recorder StatusRecorder
	logger   *zap.Logger
}

// New builds a scheduler over the station registry. recorder may be nil.
// Non-positive worker counts and intervals are clamped to safe minimums.
func New(stations []string, interval time.Duration, workers int, ingestor Ingestor, recorder StatusRecorder, logger *zap.Logger) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		stations: stations,
		interval: interval,
		workers:  workers,
		ingestor: ingestor,
		recorder: recorder,
		logger:   logger,
	}
}

// Run ticks until the context is cancelled. The first cycle fires after one
// full interval, not at startup.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started",
		zap.Duration("interval", s.interval),
		zap.Int("stations", len(s.stations)),
		zap.Int("workers", s.workers))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle fans the station registry out over the worker pool and waits for
// every station to finish. One station's failure never suppresses another.
func (s *Scheduler) RunCycle(ctx context.Context) {
	jobs := make(chan string)
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for station := range jobs {
				s.ingestOne(ctx, station)
			}
		}()
	}

	for _, station := range s.stations {
		jobs <- station
	}
	close(jobs)
	wg.Wait()
}

func (s *Scheduler) ingestOne(ctx context.Context, station string) {
	inserted, err := s.ingestor.IngestStation(ctx, station)
	if err != nil {
		s.logger.Error("station ingestion failed",
			zap.String("station", station),
			zap.Error(err))
	} else {
		s.logger.Info("station ingestion complete",
			zap.String("station", station),
			zap.Int("inserted", inserted))
	}

	if s.recorder == nil {
		return
	}
	if recErr := s.recorder.RecordRun(ctx, station, inserted, err); recErr != nil {
		s.logger.Warn("failed to record run status",
			zap.String("station", station),
			zap.Error(recErr))
	}
}
