package models

import (
	"encoding/json"
	"testing"
)

func TestRawDepartureDecodesLooseFields(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTime  RawValue
		wantDelay RawValue
	}{
		{
			name:      "string scalars",
			body:      `{"vehicle": "BE.NMBS.IC1832", "platform": "7", "time": "1700000000", "delay": "60"}`,
			wantTime:  "1700000000",
			wantDelay: "60",
		},
		{
			name:      "numeric scalars",
			body:      `{"vehicle": "BE.NMBS.IC540", "time": 1700000300, "delay": 0}`,
			wantTime:  "1700000300",
			wantDelay: "0",
		},
		{
			name:     "null and absent",
			body:     `{"vehicle": "BE.NMBS.IC540", "time": "1700000300", "delay": null}`,
			wantTime: "1700000300",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var raw RawDeparture
			if err := json.Unmarshal([]byte(tc.body), &raw); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if raw.Time != tc.wantTime {
				t.Errorf("time = %q, want %q", raw.Time, tc.wantTime)
			}
			if raw.Delay != tc.wantDelay {
				t.Errorf("delay = %q, want %q", raw.Delay, tc.wantDelay)
			}
		})
	}
}
