// Package domain — persisted monitor state and the transition decider.
package domain

import "fmt"

// NoSession marks a state that is not owned by any session. Real ids are
// never negative; 0 is a valid sid for a leader outside the pid namespace.
const NoSession = -1

// State is what survives between invocations.
type State struct {
	SessionID int
	Severity  Severity
	Charging  bool
}

// DefaultState is used when no trustworthy state exists.
func DefaultState() State {
	return State{
		SessionID: NoSession,
		Severity:  SeverityNormal,
		Charging:  true,
	}
}

// String renders the state for log lines.
func (s State) String() string {
	return fmt.Sprintf("session=%d severity=%s charging=%t", s.SessionID, s.Severity, s.Charging)
}

// Decision is the outcome of comparing a fresh reading with the prior state.
type Decision struct {
	State    State    // state to persist
	Fire     bool     // run the action for Severity
	Severity Severity // freshly classified severity
	Reason   string
}

// Decide applies the monotonicity rule. minutes is ignored while charging.
//
// While discharging, an action fires on a fresh discharge cycle or when
// severity strictly worsens. An apparent improvement keeps old unchanged.
// Normal never fires since it has no action.
func Decide(old State, discharging bool, minutes float64, session int) Decision {
	if !discharging {
		return Decision{
			State:    State{SessionID: session, Severity: SeverityNormal, Charging: true},
			Severity: SeverityNormal,
			Reason:   "charging",
		}
	}

	sev := Classify(minutes)
	next := State{SessionID: session, Severity: sev, Charging: false}

	switch {
	case old.Charging:
		return Decision{State: next, Fire: sev != SeverityNormal, Severity: sev, Reason: "discharge started"}
	case sev.MoreSevereThan(old.Severity):
		return Decision{State: next, Fire: sev != SeverityNormal, Severity: sev, Reason: "severity increased"}
	default:
		// do not allow the level to recover while discharging
		return Decision{State: old, Severity: sev, Reason: "severity has not increased"}
	}
}
