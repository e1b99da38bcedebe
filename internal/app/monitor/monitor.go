// Package monitor runs the read, classify, decide, persist cycle.
// Everything is synchronous: one reading per cycle, no overlapping cycles.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tutu-network/batmon/internal/domain"
	"github.com/tutu-network/batmon/internal/infra/alert"
	"github.com/tutu-network/batmon/internal/infra/metrics"
)

// RetryConfig bounds retries of a zero-current reading.
type RetryConfig struct {
	Attempts int           // total attempts, including the first
	Delay    time.Duration // pause between attempts
}

// DefaultRetryConfig returns two attempts five seconds apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts: 2,
		Delay:    5 * time.Second,
	}
}

// Options wires a Monitor.
type Options struct {
	Source   domain.ReadingSource
	Store    domain.StateStore
	Runner   domain.ActionRunner
	Actions  alert.Actions
	Session  int
	Retry    RetryConfig
	Textfile string // optional Prometheus textfile path
	Logger   *slog.Logger
}

// Monitor owns one battery and one state file.
type Monitor struct {
	source   domain.ReadingSource
	store    domain.StateStore
	runner   domain.ActionRunner
	actions  alert.Actions
	session  int
	retry    RetryConfig
	textfile string
	logger   *slog.Logger

	sleep func(ctx context.Context, d time.Duration) error
	newID func() string
}

// New creates a monitor.
func New(opts Options) *Monitor {
	if opts.Retry.Attempts < 1 {
		opts.Retry.Attempts = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Monitor{
		source:   opts.Source,
		store:    opts.Store,
		runner:   opts.Runner,
		actions:  opts.Actions,
		session:  opts.Session,
		retry:    opts.Retry,
		textfile: opts.Textfile,
		logger:   opts.Logger,
		sleep:    sleepContext,
		newID:    uuid.NewString,
	}
}

// Outcome summarizes one cycle.
type Outcome struct {
	Attempts int
	Skipped  bool // retry budget ran out, state untouched
	Minutes  float64
	Decision domain.Decision
	Fired    bool
}

// Cycle performs one full read, classify, decide, act, persist pass.
func (m *Monitor) Cycle(ctx context.Context) (Outcome, error) {
	log := m.logger.With("cycle", m.newID())

	reading, minutes, attempts, err := m.readWithRetry(ctx, log)
	out := Outcome{Attempts: attempts, Minutes: minutes}
	if errors.Is(err, domain.ErrRetriesExhausted) {
		log.Warn("giving up on this cycle", "attempts", attempts, "err", err)
		out.Skipped = true
		metrics.Cycles.WithLabelValues("skipped").Inc()
		return out, nil
	}
	if err != nil {
		metrics.Cycles.WithLabelValues("error").Inc()
		return out, err
	}

	old := m.store.Load(m.session)
	log.Info("old state", "state", old)

	d := domain.Decide(old, reading.Discharging(), minutes, m.session)
	out.Decision = d
	log.Info("new state", "state", d.State, "classified", d.Severity, "reason", d.Reason)

	if d.Fire {
		out.Fired = m.fire(ctx, log, d.Severity)
	}

	if err := m.store.Save(d.State); err != nil {
		metrics.Cycles.WithLabelValues("error").Inc()
		return out, fmt.Errorf("save state: %w", err)
	}

	metrics.ObserveState(d.State, minutes)
	metrics.Cycles.WithLabelValues("ok").Inc()
	if err := metrics.WriteTextfile(m.textfile); err != nil {
		log.Warn("write metrics textfile", "path", m.textfile, "err", err)
	}
	return out, nil
}

// readWithRetry reads and estimates minutes. Only a zero current is retried;
// any other failure returns immediately.
func (m *Monitor) readWithRetry(ctx context.Context, log *slog.Logger) (domain.Reading, float64, int, error) {
	for attempt := 1; ; attempt++ {
		reading, err := m.source.Read(ctx)
		if err != nil {
			return reading, 0, attempt, fmt.Errorf("read battery: %w", err)
		}
		for k, v := range reading.Fields {
			log.Debug("battery field", "key", k, "value", v)
		}
		if !reading.Discharging() {
			return reading, 0, attempt, nil
		}

		minutes, err := reading.Minutes()
		if err == nil {
			log.Debug("estimate", "minutes", minutes)
			return reading, minutes, attempt, nil
		}
		if !errors.Is(err, domain.ErrZeroCurrent) {
			return reading, 0, attempt, err
		}

		log.Warn("zero current reading", "attempt", attempt, "of", m.retry.Attempts)
		if attempt >= m.retry.Attempts {
			return reading, 0, attempt, fmt.Errorf("%w: %v", domain.ErrRetriesExhausted, err)
		}
		if err := m.sleep(ctx, m.retry.Delay); err != nil {
			return reading, 0, attempt, err
		}
	}
}

func (m *Monitor) fire(ctx context.Context, log *slog.Logger, sev domain.Severity) bool {
	cmd, ok := m.actions.For(sev)
	if !ok {
		log.Info("no action for severity", "severity", sev)
		return false
	}
	log.Info("firing action", "severity", sev, "cmd", cmd)
	metrics.ActionsFired.WithLabelValues(sev.String()).Inc()
	if err := m.runner.Run(ctx, cmd); err != nil {
		log.Error("action", "err", err)
	}
	return true
}

// Run performs a single cycle when interval is zero, otherwise polls until
// ctx is cancelled. Cycle failures are logged and never stop the loop.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	m.safeCycle(ctx)
	if interval <= 0 {
		return nil
	}
	for {
		if err := m.sleep(ctx, interval); err != nil {
			m.logger.Info("stopping", "reason", err)
			return nil
		}
		m.safeCycle(ctx)
	}
}

func (m *Monitor) safeCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("cycle panicked", "panic", r)
			for _, line := range strings.Split(strings.TrimSpace(string(debug.Stack())), "\n") {
				m.logger.Error(line)
			}
		}
	}()
	if _, err := m.Cycle(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Error("cycle failed", "err", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
