// Package cli implements the batmon command-line interface using Cobra.
// The root command runs the monitor; status and classify are read-only.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tutu-network/batmon/internal/daemon"
)

var rootOpts struct {
	configPath string
	verbose    int
	quiet      int
	logFile    string
	event      string
	interval   int
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&rootOpts.configPath, "config", "c", "", "Config file (default ~/.batmon/config.toml)")
	f.CountVarP(&rootOpts.verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	f.CountVarP(&rootOpts.quiet, "quiet", "q", "Decrease log verbosity (repeatable)")
	f.StringVarP(&rootOpts.logFile, "log", "l", "", "Log destination, - for stderr (overrides config)")

	rootCmd.Flags().StringVarP(&rootOpts.event, "event", "e", "", "Label of the event that triggered this run, logged only")
	rootCmd.Flags().IntVarP(&rootOpts.interval, "interval", "i", 0, "Poll every N seconds (default: run once)")
}

var rootCmd = &cobra.Command{
	Use:   "batmon",
	Short: "batmon — Battery runtime monitor",
	Long: `batmon estimates remaining battery runtime, classifies it as
critical, lowest, low or normal, and runs an alert command when the level
gets worse while discharging.

Run it from a udev rule or a status bar with no interval, or let it poll
with --interval.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMonitor,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if rootOpts.interval < 0 {
		return fmt.Errorf("interval must be positive, got %d", rootOpts.interval)
	}
	d, err := daemon.New(daemonOptions())
	if err != nil {
		return err
	}
	defer d.Close()

	return d.Run(cmd.Context())
}

func daemonOptions() daemon.Options {
	return daemon.Options{
		ConfigPath: rootOpts.configPath,
		Verbose:    rootOpts.verbose,
		Quiet:      rootOpts.quiet,
		LogFile:    rootOpts.logFile,
		Event:      rootOpts.event,
		Interval:   time.Duration(rootOpts.interval) * time.Second,
	}
}
