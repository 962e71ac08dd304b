package irail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"railboard/internal/models"
)

// UpstreamError reports a failed liveboard call for one station.
type UpstreamError struct {
	Station string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("irail: liveboard for %q unavailable: %v", e.Station, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client fetches liveboards from the iRail API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient builds HTTP client wrapper with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type liveboardResponse struct {
	Departures struct {
		Departure []models.RawDeparture `json:"departure"`
	} `json:"departures"`
}

// Liveboard issues one GET for the station and returns its departure list.
// The list is empty when the response carries no departures. Any transport
// failure, timeout, non-2xx status or undecodable body yields *UpstreamError.
func (c *Client) Liveboard(ctx context.Context, station string) ([]models.RawDeparture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, &UpstreamError{Station: station, Err: err}
	}
	q := req.URL.Query()
	q.Set("station", station)
	q.Set("format", "json")
	q.Set("lang", "en")
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("liveboard request failed", zap.String("station", station), zap.Error(err))
		return nil, &UpstreamError{Station: station, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("liveboard returned non-success", zap.String("station", station), zap.Int("status", resp.StatusCode))
		return nil, &UpstreamError{Station: station, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var payload liveboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UpstreamError{Station: station, Err: fmt.Errorf("decode response: %w", err)}
	}
	// Drain whatever the decoder left behind so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return payload.Departures.Departure, nil
}
