package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"railboard/internal/redisstore"
)

type fakeStatusReader struct {
	statuses map[string]*redisstore.StationStatus
}

func (f *fakeStatusReader) Get(ctx context.Context, station string) (*redisstore.StationStatus, error) {
	return f.statuses[station], nil
}

type fakeCounter struct {
	counts map[string]int64
}

func (f *fakeCounter) CountByStation(ctx context.Context, station string) (int64, error) {
	return f.counts[station], nil
}

func TestStatusHandlerListsConfiguredStations(t *testing.T) {
	stations := []string{"Brugge", "Brussels-Central"}
	reader := &fakeStatusReader{
		statuses: map[string]*redisstore.StationStatus{
			"Brugge": {Station: "Brugge", InsertedRows: 4, RanAt: time.Now().UTC()},
		},
	}
	counter := &fakeCounter{counts: map[string]int64{"Brugge": 120, "Brussels-Central": 88}}
	h := NewStatusHandler(stations, reader, counter, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Stations []struct {
			Station   string                    `json:"station"`
			TotalRows int64                     `json:"total_rows"`
			LastRun   *redisstore.StationStatus `json:"last_run"`
		} `json:"stations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Stations) != 2 {
		t.Fatalf("got %d stations, want 2", len(body.Stations))
	}
	if body.Stations[0].TotalRows != 120 || body.Stations[0].LastRun == nil {
		t.Errorf("first entry = %+v, want totals and last run", body.Stations[0])
	}
	if body.Stations[1].LastRun != nil {
		t.Errorf("second entry has last run despite no recorded outcome")
	}
}

func TestStatusHandlerWithoutRunCache(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{"Brugge": 10}}
	h := NewStatusHandler([]string{"Brugge"}, nil, counter, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
