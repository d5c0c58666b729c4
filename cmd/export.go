package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tpuiseux/claude-coach/config"
	"github.com/tpuiseux/claude-coach/export"
	"github.com/tpuiseux/claude-coach/plan"
)

var (
	exportFormat  string
	exportWorkout string
	exportAll     bool
	exportOut     string
	flagFTP       float64
	flagLTHR      float64
	flagSpeed     float64
)

// exportCmd encodes one workout, or the whole plan into a zip archive.
var exportCmd = &cobra.Command{
	Use:   "export <plan.json>",
	Short: "Export workouts to a trainer file format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		set, err := loadSettings()
		if err != nil {
			return err
		}
		format := export.Format(exportFormat)

		if exportAll {
			return runBatch(p, format, set)
		}
		if exportWorkout == "" {
			return fmt.Errorf("either --workout or --all is required")
		}

		w := findWorkout(p, exportWorkout)
		if w == nil {
			return fmt.Errorf("no workout with id or name %q in plan", exportWorkout)
		}
		res := export.ExportOne(w, format, set)
		if !res.Success {
			return fmt.Errorf("export %s: %s", w.Name, res.Error)
		}
		return materialize(res.Artifact)
	},
}

func runBatch(p *plan.Plan, format export.Format, set plan.Settings) error {
	res := export.ExportBatch(p, format, set)
	for _, e := range res.Errors {
		color.Red("failed: %s", e)
	}
	if res.Skipped > 0 {
		color.Yellow("skipped %d workout(s) not supported by %s", res.Skipped, format)
	}
	if res.Archive == nil {
		return fmt.Errorf("no workout could be exported as %s", format)
	}
	if err := materialize(res.Archive); err != nil {
		return err
	}
	color.Green("exported %d workout(s) to %s", res.Exported, filepath.Join(exportOut, res.Archive.Filename))
	return nil
}

func findWorkout(p *plan.Plan, key string) *plan.Workout {
	for i := range p.Workouts {
		w := &p.Workouts[i].Workout
		if w.ID == key || w.Name == key {
			return w
		}
	}
	return nil
}

func loadSettings() (plan.Settings, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return plan.Settings{}, err
	}
	set := cfg.Settings()
	if flagFTP > 0 {
		set.FTPWatts = flagFTP
	}
	if flagLTHR > 0 {
		set.ThresholdHRBPM = flagLTHR
	}
	if flagSpeed > 0 {
		set.SpeedKPH = flagSpeed
	}
	return set, nil
}

// materialize writes an artifact into the output directory. This is the file
// side effect at the edge of the codec layer.
func materialize(a *export.Artifact) error {
	if err := os.MkdirAll(exportOut, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(exportOut, a.Filename)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(a.Data))
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "zwo", "target format: zwo, erg, mrc or fit")
	exportCmd.Flags().StringVarP(&exportWorkout, "workout", "w", "", "id or name of a single workout to export")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every supported workout into a zip archive")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory")
	exportCmd.Flags().Float64Var(&flagFTP, "ftp", 0, "threshold power in watts (overrides config)")
	exportCmd.Flags().Float64Var(&flagLTHR, "lthr", 0, "threshold heart rate in BPM (overrides config)")
	exportCmd.Flags().Float64Var(&flagSpeed, "speed", 0, "assumed speed in km/h for distance-based steps (overrides config)")
	rootCmd.AddCommand(exportCmd)
}
