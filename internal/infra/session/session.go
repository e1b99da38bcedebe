// Package session derives the identifier that scopes persisted state.
// It is computed once at process start and passed down explicitly.
package session

import (
	"fmt"
	"os"
)

// Scope selects which process attribute identifies a monitoring session.
type Scope string

const (
	ScopeSession      Scope = "sid"  // getsid(0), survives re-parenting
	ScopeProcessGroup Scope = "pgid" // getpgrp()
	ScopeParent       Scope = "ppid" // parent pid
)

// ParseScope validates a configured scope. Empty means ScopeSession.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeSession:
		return ScopeSession, nil
	case ScopeProcessGroup, ScopeParent:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown session scope %q (want sid, pgid or ppid)", s)
	}
}

// Current returns the identifier for the given scope.
func Current(scope Scope) (int, error) {
	switch scope {
	case ScopeParent:
		return os.Getppid(), nil
	case ScopeProcessGroup:
		return processGroup()
	default:
		return sessionID()
	}
}
