package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// RawValue tolerates upstream scalar fields encoded as either a JSON string
// or a JSON number; the textual form is kept for the normalizer to parse.
type RawValue string

// UnmarshalJSON accepts "123", 123 and null.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	}
	*v = RawValue(data)
	return nil
}

// RawDeparture is one departure object as returned by the liveboard API.
// Only the consumed fields are mapped; the upstream sends more.
type RawDeparture struct {
	Vehicle  string   `json:"vehicle"`
	Platform string   `json:"platform"`
	Delay    RawValue `json:"delay"`
	Time     RawValue `json:"time"`
}

// Departure is the canonical persisted record.
type Departure struct {
	ID            int64
	Station       string
	TrainID       string
	DepartureTime time.Time
	DelaySeconds  int
	Platform      string
	CreatedAt     time.Time
}
