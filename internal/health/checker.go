// Package health runs one-shot diagnostics of a batmon installation:
// battery readable, state directory writable, alert commands installed.
package health

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tutu-network/batmon/internal/domain"
	"github.com/tutu-network/batmon/internal/infra/alert"
)

// Check defines a single named health check.
type Check struct {
	Name    string
	CheckFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs its checks in order, once per RunAll.
type Checker struct {
	checks []Check
}

// NewChecker creates a checker for a source, state path and action set.
func NewChecker(src domain.ReadingSource, statePath string, actions alert.Actions) *Checker {
	checks := []Check{
		{
			Name: "battery",
			CheckFn: func(ctx context.Context) error {
				r, err := src.Read(ctx)
				if err != nil {
					return err
				}
				if r.Discharging() {
					_, err = r.Minutes()
				}
				return err
			},
		},
		{
			Name: "state_dir",
			CheckFn: func(ctx context.Context) error {
				return checkWritableDir(filepath.Dir(statePath))
			},
		},
	}
	for _, sev := range domain.Severities() {
		cmd, ok := actions.For(sev)
		if !ok {
			continue
		}
		checks = append(checks, Check{
			Name: "action_" + sev.String(),
			CheckFn: func(ctx context.Context) error {
				return checkCommand(cmd)
			},
		})
	}
	return &Checker{checks: checks}
}

// RunAll executes every check and returns the results.
func (c *Checker) RunAll(ctx context.Context) []Status {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{
			Name:      check.Name,
			CheckedAt: time.Now(),
		}
		if err := check.CheckFn(ctx); err != nil {
			s.Error = err.Error()
		} else {
			s.Healthy = true
		}
		statuses[i] = s
	}
	return statuses
}

// IsHealthy returns true if every status passed.
func IsHealthy(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}

// ─── Check Implementations ──────────────────────────────────────────────────

func checkWritableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("check state dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	f, err := os.CreateTemp(dir, ".batmon-health-*")
	if err != nil {
		return fmt.Errorf("state dir not writable: %w", err)
	}
	f.Close()
	return os.Remove(f.Name())
}

// checkCommand only verifies the first word of the command is on PATH.
func checkCommand(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return fmt.Errorf("%s: %w", fields[0], err)
	}
	return nil
}
