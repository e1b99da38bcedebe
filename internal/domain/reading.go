// Package domain — power supply readings.
// A Reading is parsed once per cycle and never persisted.
package domain

import "fmt"

// StatusDischarging is the only STATUS value that enables monitoring.
const StatusDischarging = "Discharging"

// Reading is one snapshot of battery telemetry.
// Charge and Rate share a unit family (µAh/µA, µWh/µW or mWh/mW), so
// their ratio is hours of runtime left.
type Reading struct {
	Status    string
	Charge    float64
	Rate      float64
	HasCharge bool
	HasRate   bool
	Fields    map[string]string // raw telemetry, for diagnostics
}

// Discharging returns true if the battery is currently draining.
func (r Reading) Discharging() bool {
	return r.Status == StatusDischarging
}

// Minutes estimates the remaining runtime while discharging.
// Only the rate may be signed; a negative charge is rejected.
func (r Reading) Minutes() (float64, error) {
	if !r.HasCharge {
		return 0, fmt.Errorf("charge: %w", ErrMissingField)
	}
	if !r.HasRate {
		return 0, fmt.Errorf("current: %w", ErrMissingField)
	}
	if r.Charge < 0 {
		return 0, fmt.Errorf("charge %v: %w", r.Charge, ErrNegativeCharge)
	}
	rate := r.Rate
	if rate < 0 {
		rate = -rate
	}
	if rate == 0 {
		return 0, ErrZeroCurrent
	}
	return 60 * r.Charge / rate, nil
}
