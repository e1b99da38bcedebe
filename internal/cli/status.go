package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tutu-network/batmon/internal/daemon"
	"github.com/tutu-network/batmon/internal/domain"
)

func init() {
	statusCmd.Flags().BoolVar(&statusFields, "fields", false, "Also print every raw telemetry field")
	rootCmd.AddCommand(statusCmd)
}

var statusFields bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the live reading and the persisted state",
	Long:  `Read the battery once and print the estimate next to the stored state. Never fires an action or writes state.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(daemonOptions())
	if err != nil {
		return err
	}
	defer d.Close()

	reading, err := d.Source.Read(cmd.Context())
	if err != nil {
		return fmt.Errorf("read battery: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STATUS\t%s\n", reading.Status)
	if reading.Discharging() {
		minutes, err := reading.Minutes()
		switch {
		case errors.Is(err, domain.ErrZeroCurrent):
			fmt.Fprintln(w, "MINUTES\tunknown (zero current)")
		case err != nil:
			return err
		default:
			fmt.Fprintf(w, "MINUTES\t%.1f\n", minutes)
			fmt.Fprintf(w, "SEVERITY\t%s\n", domain.Classify(minutes))
		}
	}

	printStored(w, d)
	if statusFields {
		printFields(w, reading.Fields)
	}
	return w.Flush()
}

func printStored(w io.Writer, d *daemon.Daemon) {
	st, err := d.Store.Read()
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(w, "STORED\tnone")
	case err != nil:
		fmt.Fprintf(w, "STORED\tinvalid (%v)\n", err)
	case st.SessionID != d.Session:
		fmt.Fprintf(w, "STORED\t%s (stale, current session %d)\n", st, d.Session)
	default:
		fmt.Fprintf(w, "STORED\t%s\n", st)
	}
}

func printFields(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%s\n", k, fields[k])
	}
}
