package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"railboard/internal/redisstore"
)

// StatusReader returns the last recorded run outcome for a station.
type StatusReader interface {
	Get(ctx context.Context, station string) (*redisstore.StationStatus, error)
}

// RowCounter reports how many departures are stored for a station.
type RowCounter interface {
	CountByStation(ctx context.Context, station string) (int64, error)
}

// StatusHandler reports the last run outcome per configured station.
type StatusHandler struct {
	stations []string
	statuses StatusReader
	counter  RowCounter
	logger   *zap.Logger
}

// NewStatusHandler returns handler. statuses may be nil when no run cache is configured.
func NewStatusHandler(stations []string, statuses StatusReader, counter RowCounter, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		stations: stations,
		statuses: statuses,
		counter:  counter,
		logger:   logger,
	}
}

type stationStatusEntry struct {
	Station   string                    `json:"station"`
	TotalRows int64                     `json:"total_rows"`
	LastRun   *redisstore.StationStatus `json:"last_run,omitempty"`
}

// ServeHTTP handles GET /status.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries := make([]stationStatusEntry, 0, len(h.stations))

	for _, station := range h.stations {
		entry := stationStatusEntry{Station: station}

		total, err := h.counter.CountByStation(ctx, station)
		if err != nil {
			h.logger.Error("failed to count departures", zap.String("station", station), zap.Error(err))
			http.Error(w, "failed to read station totals", http.StatusInternalServerError)
			return
		}
		entry.TotalRows = total

		if h.statuses != nil {
			status, err := h.statuses.Get(ctx, station)
			if err != nil {
				h.logger.Warn("failed to read run status", zap.String("station", station), zap.Error(err))
			} else {
				entry.LastRun = status
			}
		}

		entries = append(entries, entry)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"stations": entries})
}
