package plan

import "github.com/tpuiseux/claude-coach/units"

// Phase locates a flattened step within the session.
type Phase string

const (
	PhaseWarmup   Phase = "warmup"
	PhaseMain     Phase = "main"
	PhaseCooldown Phase = "cooldown"
)

// TimedStep is one entry of the flattened, time-ordered step sequence. For a
// ramp step the embedded Intensity carries both boundary values, so an encoder
// can render either a ramp primitive or two flat points.
type TimedStep struct {
	Phase    Phase
	StartMin float64
	EndMin   float64
	Step     WorkoutStep
}

// Minutes returns the step's contribution to the time axis in minutes.
func (t TimedStep) Minutes() float64 {
	return t.EndMin - t.StartMin
}

// StepMinutes converts a step's duration to minutes, estimating a time axis
// for distance-based steps from the assumed average speed in set.
func StepMinutes(s WorkoutStep, set Settings) float64 {
	return units.EstimatedSeconds(s.Duration.Value, s.Duration.Unit, set.SpeedKPH) / 60.0
}

// Flatten walks a structured workout and yields the flat, time-ordered step
// sequence: warm-up steps, main-set items with interval sets expanded in block
// order (all of repeat 1 before any of repeat 2), then cool-down steps.
func Flatten(sw *StructuredWorkout, set Settings) []TimedStep {
	var out []TimedStep
	elapsed := 0.0

	emit := func(phase Phase, s WorkoutStep) {
		d := StepMinutes(s, set)
		out = append(out, TimedStep{
			Phase:    phase,
			StartMin: elapsed,
			EndMin:   elapsed + d,
			Step:     s,
		})
		elapsed += d
	}

	for _, s := range sw.Warmup {
		emit(PhaseWarmup, s)
	}
	for _, item := range sw.Main {
		switch v := item.(type) {
		case *WorkoutStep:
			emit(PhaseMain, *v)
		case *IntervalSet:
			for r := 0; r < v.Repeats; r++ {
				for _, s := range v.Steps {
					emit(PhaseMain, s)
				}
			}
		}
	}
	for _, s := range sw.Cooldown {
		emit(PhaseCooldown, s)
	}
	return out
}

// TotalMinutes is the elapsed end time of the flattened sequence.
func TotalMinutes(steps []TimedStep) float64 {
	if len(steps) == 0 {
		return 0
	}
	return steps[len(steps)-1].EndMin
}
