package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Telemetry errors
	ErrZeroCurrent    = errors.New("instantaneous current is zero, remaining time undefined")
	ErrMissingField   = errors.New("required power supply field missing")
	ErrNotNumeric     = errors.New("power supply field is not numeric")
	ErrNegativeCharge = errors.New("remaining charge is negative")
	ErrMalformedLine  = errors.New("malformed power supply line")
	ErrNoBattery      = errors.New("no battery found")

	// State file errors (recovered locally, never fatal)
	ErrStateMalformed       = errors.New("state file is malformed")
	ErrStateSessionMismatch = errors.New("state file belongs to another session")

	// Retry budget
	ErrRetriesExhausted = errors.New("retry budget exhausted")
)
