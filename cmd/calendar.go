package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tpuiseux/claude-coach/export"
	"github.com/tpuiseux/claude-coach/plan"
)

var calendarOut string

// calendarCmd renders the whole plan as an iCalendar file.
var calendarCmd = &cobra.Command{
	Use:   "calendar <plan.json>",
	Short: "Export the plan as an iCalendar (.ics) file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		res := export.ExportCalendar(p, time.Now())
		if !res.Success {
			return fmt.Errorf("export calendar: %s", res.Error)
		}
		out := calendarOut
		if out == "" {
			out = res.Filename
		}
		if err := os.WriteFile(out, res.Artifact.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(res.Artifact.Data))
		return nil
	},
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarOut, "out", "o", "", "output file (default <plan name>.ics)")
	rootCmd.AddCommand(calendarCmd)
}
