package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tpuiseux/claude-coach/export"
	"github.com/tpuiseux/claude-coach/plan"
)

// formatsCmd prints which per-workout formats apply to a sport.
var formatsCmd = &cobra.Command{
	Use:   "formats <sport>",
	Short: "List the export formats supported for a sport",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sport := plan.Sport(args[0])
		formats := export.SupportedFormats(sport)
		if len(formats) == 0 {
			fmt.Printf("no per-workout export formats support %s\n", sport)
			return nil
		}
		for _, f := range formats {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
