package session

import (
	"os"
	"testing"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", ScopeSession, false},
		{"sid", ScopeSession, false},
		{"pgid", ScopeProcessGroup, false},
		{"ppid", ScopeParent, false},
		{"uid", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScope(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScope(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	for _, scope := range []Scope{ScopeSession, ScopeProcessGroup, ScopeParent} {
		id, err := Current(scope)
		if err != nil {
			t.Fatalf("Current(%s) error: %v", scope, err)
		}
		// ids from outside a pid namespace read as 0
		if id < 0 {
			t.Errorf("Current(%s) = %d, want non-negative id", scope, id)
		}
	}

	ppid, _ := Current(ScopeParent)
	if ppid != os.Getppid() {
		t.Errorf("Current(ppid) = %d, want %d", ppid, os.Getppid())
	}
}

func TestCurrent_StableWithinProcess(t *testing.T) {
	a, _ := Current(ScopeSession)
	b, _ := Current(ScopeSession)
	if a != b {
		t.Errorf("session id changed within a process: %d then %d", a, b)
	}
}
