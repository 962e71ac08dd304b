package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Ingestor runs one station's ingestion and reports the inserted row count.
type Ingestor interface {
	IngestStation(ctx context.Context, station string) (int, error)
}

// FetchHandler runs the ingestion pipeline for one station on demand.
type FetchHandler struct {
	ingestor       Ingestor
	defaultStation string
	logger         *zap.Logger
}

// NewFetchHandler returns handler.
func NewFetchHandler(ingestor Ingestor, defaultStation string, logger *zap.Logger) *FetchHandler {
	return &FetchHandler{
		ingestor:       ingestor,
		defaultStation: defaultStation,
		logger:         logger,
	}
}

type fetchResponse struct {
	Station      string `json:"station"`
	InsertedRows int    `json:"inserted_rows"`
}

// ServeHTTP handles GET /fetch?station=<name>.
func (h *FetchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	station := r.URL.Query().Get("station")
	if station == "" {
		station = h.defaultStation
	}

	inserted, err := h.ingestor.IngestStation(r.Context(), station)
	if err != nil {
		h.logger.Error("on-demand ingestion failed",
			zap.String("station", station),
			zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, fetchResponse{
		Station:      station,
		InsertedRows: inserted,
	})
}
