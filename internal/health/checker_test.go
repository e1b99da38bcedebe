package health

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tutu-network/batmon/internal/domain"
	"github.com/tutu-network/batmon/internal/infra/alert"
)

type stubSource struct {
	reading domain.Reading
	err     error
}

func (s stubSource) Read(context.Context) (domain.Reading, error) {
	return s.reading, s.err
}

func shellActions() alert.Actions {
	return alert.Actions{Critical: "sh -c true", Lowest: "true", Low: ""}
}

// ─── Checker Tests ──────────────────────────────────────────────────────────

func TestNewChecker(t *testing.T) {
	c := NewChecker(stubSource{}, filepath.Join(t.TempDir(), "battery.json"), shellActions())
	if c == nil {
		t.Fatal("NewChecker() returned nil")
	}
	// battery, state_dir, action_critical, action_lowest
	if len(c.checks) != 4 {
		t.Errorf("checks = %d, want 4", len(c.checks))
	}
}

func TestChecker_RunAllHealthy(t *testing.T) {
	src := stubSource{reading: domain.Reading{Status: "Full"}}
	c := NewChecker(src, filepath.Join(t.TempDir(), "battery.json"), shellActions())

	statuses := c.RunAll(context.Background())
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %q should be healthy, got error: %s", s.Name, s.Error)
		}
	}
	if !IsHealthy(statuses) {
		t.Error("IsHealthy() should be true when all checks pass")
	}
}

func TestChecker_BatteryUnreadable(t *testing.T) {
	c := NewChecker(stubSource{err: errors.New("no battery")}, filepath.Join(t.TempDir(), "battery.json"), alert.Actions{})

	statuses := c.RunAll(context.Background())
	if statuses[0].Name != "battery" || statuses[0].Healthy {
		t.Errorf("battery status = %+v, want unhealthy", statuses[0])
	}
	if IsHealthy(statuses) {
		t.Error("IsHealthy() should be false")
	}
}

func TestChecker_ZeroCurrentUnhealthy(t *testing.T) {
	src := stubSource{reading: domain.Reading{Status: domain.StatusDischarging, HasCharge: true, HasRate: true, Charge: 10}}
	c := NewChecker(src, filepath.Join(t.TempDir(), "battery.json"), alert.Actions{})

	if s := c.RunAll(context.Background())[0]; s.Healthy {
		t.Error("zero current should be reported")
	}
}

func TestChecker_StateDirMissing(t *testing.T) {
	c := NewChecker(stubSource{}, filepath.Join(t.TempDir(), "missing", "battery.json"), alert.Actions{})
	if s := c.RunAll(context.Background())[1]; s.Name != "state_dir" || s.Healthy {
		t.Errorf("state_dir status = %+v, want unhealthy", s)
	}
}

func TestCheckCommand(t *testing.T) {
	if err := checkCommand("sh -c 'exit 0'"); err != nil {
		t.Errorf("checkCommand(sh) error: %v", err)
	}
	if err := checkCommand("batmon-definitely-not-installed --flag"); err == nil {
		t.Error("missing binary should fail")
	}
	if err := checkCommand("   "); err == nil {
		t.Error("empty command should fail")
	}
}

func TestIsHealthy_Empty(t *testing.T) {
	// No checks — vacuously healthy
	if !IsHealthy(nil) {
		t.Error("IsHealthy(nil) should be true")
	}
}
