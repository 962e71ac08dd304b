package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type fakeIngestor struct {
	lastStation string
	inserted    int
	err         error
}

func (f *fakeIngestor) IngestStation(ctx context.Context, station string) (int, error) {
	f.lastStation = station
	if f.err != nil {
		return 0, f.err
	}
	return f.inserted, nil
}

func TestFetchHandlerReturnsInsertedCount(t *testing.T) {
	ingestor := &fakeIngestor{inserted: 3}
	h := NewFetchHandler(ingestor, "Brugge", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/fetch?station=Gent-Sint-Pieters", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ingestor.lastStation != "Gent-Sint-Pieters" {
		t.Errorf("ingested station = %q, want %q", ingestor.lastStation, "Gent-Sint-Pieters")
	}

	var body struct {
		Station      string `json:"station"`
		InsertedRows int    `json:"inserted_rows"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Station != "Gent-Sint-Pieters" || body.InsertedRows != 3 {
		t.Errorf("body = %+v, want station/inserted_rows echoed", body)
	}
}

func TestFetchHandlerDefaultsStation(t *testing.T) {
	ingestor := &fakeIngestor{}
	h := NewFetchHandler(ingestor, "Brugge", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/fetch", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if ingestor.lastStation != "Brugge" {
		t.Errorf("ingested station = %q, want default %q", ingestor.lastStation, "Brugge")
	}
}

func TestFetchHandlerReportsErrorText(t *testing.T) {
	ingestor := &fakeIngestor{err: errors.New("liveboard for \"Brugge\" unavailable")}
	h := NewFetchHandler(ingestor, "Brugge", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/fetch", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unavailable") {
		t.Errorf("body = %q, want error text", rec.Body.String())
	}
}
