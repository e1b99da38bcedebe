package daemon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tutu-network/batmon/internal/app/monitor"
	"github.com/tutu-network/batmon/internal/domain"
	"github.com/tutu-network/batmon/internal/infra/alert"
	"github.com/tutu-network/batmon/internal/infra/powersupply"
	"github.com/tutu-network/batmon/internal/infra/session"
	"github.com/tutu-network/batmon/internal/infra/statefile"
)

// Options are the command-line overrides.
type Options struct {
	ConfigPath string
	Verbose    int
	Quiet      int
	LogFile    string // overrides Logging.File when set
	Event      string // informational label only
	Interval   time.Duration
}

// Daemon is the wired batmon runtime.
type Daemon struct {
	Config   Config
	Session  int
	Logger   *slog.Logger
	Source   domain.ReadingSource
	Store    *statefile.Store
	Monitor  *monitor.Monitor
	interval time.Duration
	sink     io.Closer
}

// New loads configuration and wires every component.
func New(opts Options) (*Daemon, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogFile != "" {
		cfg.Logging.File = opts.LogFile
	}
	return NewWithConfig(cfg, opts)
}

// NewWithConfig wires a Daemon from an already loaded configuration.
func NewWithConfig(cfg Config, opts Options) (*Daemon, error) {
	base, err := ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	scope, err := session.ParseScope(cfg.State.SessionScope)
	if err != nil {
		return nil, err
	}
	delay, err := cfg.RetryDelay()
	if err != nil {
		return nil, err
	}
	src, err := powersupply.New(powersupply.Kind(cfg.Battery.Source), cfg.Battery.UeventPath, cfg.Battery.Index)
	if err != nil {
		return nil, err
	}

	sid, err := session.Current(scope)
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}

	sink := OpenLogSink(cfg.Logging)
	attrs := []any{"pid", os.Getpid(), "session", sid}
	if opts.Event != "" {
		attrs = append(attrs, "event", opts.Event)
	}
	logger := NewLogger(sink, AdjustLevel(base, opts.Verbose, opts.Quiet), attrs...)

	store := statefile.New(cfg.State.Path, logger)
	mon := monitor.New(monitor.Options{
		Source:   src,
		Store:    store,
		Runner:   alert.NewShellRunner(logger),
		Actions:  cfg.Actions,
		Session:  sid,
		Retry:    monitor.RetryConfig{Attempts: cfg.Retry.Attempts, Delay: delay},
		Textfile: cfg.Metrics.Textfile,
		Logger:   logger,
	})

	return &Daemon{
		Config:   cfg,
		Session:  sid,
		Logger:   logger,
		Source:   src,
		Store:    store,
		Monitor:  mon,
		interval: opts.Interval,
		sink:     sink,
	}, nil
}

// Run runs once, or polls until SIGINT/SIGTERM when an interval is set.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d.Logger.Debug("starting", "interval", d.interval, "scope", d.Config.State.SessionScope, "source", d.Config.Battery.Source)
	return d.Monitor.Run(ctx, d.interval)
}

// Close releases the log sink.
func (d *Daemon) Close() {
	if d.sink != nil {
		_ = d.sink.Close()
	}
}
