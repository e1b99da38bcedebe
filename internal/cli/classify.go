package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tutu-network/batmon/internal/domain"
)

func init() {
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify MINUTES",
	Short: "Print the severity band for a remaining-minutes value",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	minutes, err := strconv.ParseFloat(args[0], 64)
	if err != nil || minutes < 0 {
		return fmt.Errorf("minutes must be a non-negative number, got %q", args[0])
	}
	sev := domain.Classify(minutes)
	fmt.Fprintf(cmd.OutOrStdout(), "%s (<= %g min)\n", sev, sev.Threshold())
	return nil
}
