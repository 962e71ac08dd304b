package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"railboard/internal/models"
)

// carrierPrefix is prepended by iRail to every NMBS vehicle code.
const carrierPrefix = "BE.NMBS."

// NormalizeDeparture maps one raw liveboard record onto the canonical row.
// A missing or non-integer time, or a present but non-integer delay, fails
// the record; the caller decides what to do with the failure (skip it).
func NormalizeDeparture(station string, raw models.RawDeparture) (*models.Departure, error) {
	if raw.Time == "" {
		return nil, fmt.Errorf("service: departure missing time field")
	}
	epoch, err := strconv.ParseInt(string(raw.Time), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("service: parse departure time %q: %w", raw.Time, err)
	}

	delay := 0
	if raw.Delay != "" {
		delay, err = strconv.Atoi(string(raw.Delay))
		if err != nil {
			return nil, fmt.Errorf("service: parse delay %q: %w", raw.Delay, err)
		}
	}

	return &models.Departure{
		Station:       station,
		TrainID:       strings.TrimPrefix(raw.Vehicle, carrierPrefix),
		DepartureTime: time.Unix(epoch, 0),
		DelaySeconds:  delay,
		Platform:      raw.Platform,
	}, nil
}
