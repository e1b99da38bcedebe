// Package alert maps severity bands to shell commands and runs them.
package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/tutu-network/batmon/internal/domain"
)

const nagbar = "i3-nagbar -m 'Less than %d minutes of battery remaining!' %s"

// Actions holds one command per non-normal band. Empty disables a band.
type Actions struct {
	Critical string `toml:"critical"`
	Lowest   string `toml:"lowest"`
	Low      string `toml:"low"`
}

// DefaultActions hibernates on critical, offers a choice on lowest and
// warns on low.
func DefaultActions() Actions {
	return Actions{
		Critical: "pm-hibernate",
		Lowest:   fmt.Sprintf(nagbar, int(domain.SeverityLowest.Threshold()), "-b hibernate pm-hibernate -b suspend pm-suspend"),
		Low:      fmt.Sprintf(nagbar, int(domain.SeverityLow.Threshold()), "-t warning"),
	}
}

// For returns the command for a severity. Normal never has one.
func (a Actions) For(s domain.Severity) (string, bool) {
	var cmd string
	switch s {
	case domain.SeverityCritical:
		cmd = a.Critical
	case domain.SeverityLowest:
		cmd = a.Lowest
	case domain.SeverityLow:
		cmd = a.Low
	}
	return cmd, cmd != ""
}

// ShellRunner runs commands through the host shell and waits for them.
type ShellRunner struct {
	Shell  string
	logger *slog.Logger
}

// NewShellRunner creates a runner using /bin/sh.
func NewShellRunner(logger *slog.Logger) *ShellRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellRunner{Shell: "/bin/sh", logger: logger}
}

// Run blocks until the command exits. A non-zero exit is logged, not returned;
// only failure to start the shell is an error.
func (r *ShellRunner) Run(ctx context.Context, command string) error {
	start := time.Now()
	cmd := exec.CommandContext(ctx, r.Shell, "-c", command)
	out, err := cmd.CombinedOutput()

	attrs := []any{"cmd", command, "took", time.Since(start).Round(time.Millisecond)}
	if s := strings.TrimSpace(string(out)); s != "" {
		attrs = append(attrs, "output", s)
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		r.logger.Info("action finished", attrs...)
	case errors.As(err, &exitErr):
		r.logger.Warn("action exited non-zero", append(attrs, "code", exitErr.ExitCode())...)
	default:
		r.logger.Error("action failed to run", append(attrs, "err", err)...)
		return fmt.Errorf("run %q: %w", command, err)
	}
	return nil
}
