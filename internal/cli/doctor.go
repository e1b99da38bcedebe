package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tutu-network/batmon/internal/daemon"
	"github.com/tutu-network/batmon/internal/health"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the battery source, state directory and alert commands",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(daemonOptions())
	if err != nil {
		return err
	}
	defer d.Close()

	statuses := health.NewChecker(d.Source, d.Store.Path, d.Config.Actions).RunAll(cmd.Context())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK\tSTATUS\tDETAIL")
	for _, s := range statuses {
		state := "ok"
		if !s.Healthy {
			state = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, state, s.Error)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !health.IsHealthy(statuses) {
		return fmt.Errorf("some checks failed")
	}
	return nil
}
