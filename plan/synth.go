package plan

import (
	"math"

	"github.com/tpuiseux/claude-coach/units"
)

// mainPercent maps a workout type to its main-phase target as percent of
// threshold power. The values are strictly increasing with effort.
var mainPercent = map[WorkoutType]float64{
	TypeRecovery:  50,
	TypeEndurance: 65,
	TypeTempo:     80,
	TypeThreshold: 95,
	TypeIntervals: 105,
	TypeVO2Max:    115,
}

const (
	warmupStartPercent   = 40
	cooldownStartPercent = 60
	cooldownEndPercent   = 40
)

// MainIntensityPercent returns the default main-set target for a workout type,
// as percent of threshold power. Unknown types default to endurance.
func MainIntensityPercent(wt WorkoutType) float64 {
	if p, ok := mainPercent[wt]; ok {
		return p
	}
	return mainPercent[TypeEndurance]
}

// Synthesize produces a canonical warm-up/main/cool-down profile for a workout
// that has only a total duration and a type tag. Warm-up is 10% of the total
// clamped to [5,15] minutes, cool-down 10% clamped to [5,10], the remainder is
// the main phase. Totals that leave no room for a main phase after the clamped
// bookends become a single steady main step instead.
func Synthesize(totalMin float64, wt WorkoutType) *StructuredWorkout {
	main := MainIntensityPercent(wt)

	warmup := clamp(math.Round(totalMin*0.10), 5, 15)
	cooldown := clamp(math.Round(totalMin*0.10), 5, 10)
	mainMin := totalMin - warmup - cooldown

	if mainMin <= 0 {
		return &StructuredWorkout{
			Main: []MainItem{&WorkoutStep{
				Kind:     StepWork,
				Duration: Duration{Value: totalMin, Unit: units.UnitMinutes},
				Intensity: Intensity{
					Unit:  units.UnitPercentFTP,
					Value: main,
				},
			}},
		}
	}

	return &StructuredWorkout{
		Warmup: []WorkoutStep{{
			Kind:     StepWarmup,
			Duration: Duration{Value: warmup, Unit: units.UnitMinutes},
			Intensity: Intensity{
				Unit: units.UnitPercentFTP,
				Low:  warmupStartPercent,
				High: main,
			},
		}},
		Main: []MainItem{&WorkoutStep{
			Kind:     StepWork,
			Duration: Duration{Value: mainMin, Unit: units.UnitMinutes},
			Intensity: Intensity{
				Unit:  units.UnitPercentFTP,
				Value: main,
			},
		}},
		Cooldown: []WorkoutStep{{
			Kind:     StepCooldown,
			Duration: Duration{Value: cooldown, Unit: units.UnitMinutes},
			Intensity: Intensity{
				Unit: units.UnitPercentFTP,
				Low:  cooldownStartPercent,
				High: cooldownEndPercent,
			},
		}},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
