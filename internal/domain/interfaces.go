package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; the monitor depends on them.

// ReadingSource produces one battery reading per call.
// Implemented by infra/powersupply.
type ReadingSource interface {
	Read(ctx context.Context) (Reading, error)
}

// StateStore persists State between cycles. Implemented by infra/statefile.
type StateStore interface {
	// Load returns the stored state for session, or DefaultState.
	Load(session int) State

	// Save writes st unconditionally.
	Save(st State) error
}

// ActionRunner executes an alert command. Implemented by infra/alert.
type ActionRunner interface {
	Run(ctx context.Context, command string) error
}
