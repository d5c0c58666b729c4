// Package zwo encodes a workout into the XML interval-trainer format consumed
// by smart-trainer apps. Intensity is expressed as a decimal fraction of
// threshold power, rounded to two decimals only at serialization.
package zwo

import (
	"encoding/xml"
	"fmt"
	"math"

	"github.com/tpuiseux/claude-coach/plan"
	"github.com/tpuiseux/claude-coach/units"
)

const fileAuthor = "claude-coach"

type workoutFile struct {
	XMLName     xml.Name `xml:"workout_file"`
	Author      string   `xml:"author"`
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	SportType   string   `xml:"sportType"`
	Workout     workout  `xml:"workout"`
}

type workout struct {
	Steps []any
}

type steadyState struct {
	XMLName     xml.Name `xml:"SteadyState"`
	Duration    int      `xml:"Duration,attr"`
	Power       string   `xml:"Power,attr"`
	CadenceLow  int      `xml:"CadenceLow,attr,omitempty"`
	CadenceHigh int      `xml:"CadenceHigh,attr,omitempty"`
}

type ramp struct {
	XMLName     xml.Name `xml:"Ramp"`
	Duration    int      `xml:"Duration,attr"`
	PowerLow    string   `xml:"PowerLow,attr"`
	PowerHigh   string   `xml:"PowerHigh,attr"`
	CadenceLow  int      `xml:"CadenceLow,attr,omitempty"`
	CadenceHigh int      `xml:"CadenceHigh,attr,omitempty"`
}

type warmupElem struct {
	XMLName   xml.Name `xml:"Warmup"`
	Duration  int      `xml:"Duration,attr"`
	PowerLow  string   `xml:"PowerLow,attr"`
	PowerHigh string   `xml:"PowerHigh,attr"`
}

type cooldownElem struct {
	XMLName   xml.Name `xml:"Cooldown"`
	Duration  int      `xml:"Duration,attr"`
	PowerLow  string   `xml:"PowerLow,attr"`
	PowerHigh string   `xml:"PowerHigh,attr"`
}

type intervalsT struct {
	XMLName        xml.Name `xml:"IntervalsT"`
	Repeat         int      `xml:"Repeat,attr"`
	OnDuration     int      `xml:"OnDuration,attr"`
	OffDuration    int      `xml:"OffDuration,attr"`
	OnPower        string   `xml:"OnPower,attr"`
	OffPower       string   `xml:"OffPower,attr"`
	Cadence        int      `xml:"Cadence,attr,omitempty"`
	CadenceResting int      `xml:"CadenceResting,attr,omitempty"`
}

// Encode renders the workout as an XML interval-trainer file. Only cycling and
// running sessions are expressible; any other sport is a caller contract
// violation.
func Encode(w *plan.Workout, set plan.Settings) ([]byte, error) {
	sportType, ok := sportTypes[w.Sport]
	if !ok {
		return nil, fmt.Errorf("zwo: %w: %s", plan.ErrUnsupportedSport, w.Sport)
	}

	sw, err := w.Resolved()
	if err != nil {
		return nil, fmt.Errorf("zwo: %w", err)
	}

	doc := workoutFile{
		Author:      fileAuthor,
		Name:        w.Name,
		Description: w.Description,
		SportType:   sportType,
	}

	for _, s := range sw.Warmup {
		doc.Workout.Steps = append(doc.Workout.Steps, warmupElem{
			Duration:  stepSeconds(s, set),
			PowerLow:  fraction(s.Intensity.Unit, s.Intensity.Start()),
			PowerHigh: fraction(s.Intensity.Unit, s.Intensity.End()),
		})
	}
	for _, item := range sw.Main {
		switch v := item.(type) {
		case *plan.WorkoutStep:
			doc.Workout.Steps = append(doc.Workout.Steps, stepElem(*v, set))
		case *plan.IntervalSet:
			doc.Workout.Steps = append(doc.Workout.Steps, setElems(v, set)...)
		}
	}
	for _, s := range sw.Cooldown {
		lo, hi := s.Intensity.Start(), s.Intensity.End()
		if lo > hi {
			lo, hi = hi, lo
		}
		doc.Workout.Steps = append(doc.Workout.Steps, cooldownElem{
			Duration:  stepSeconds(s, set),
			PowerLow:  fraction(s.Intensity.Unit, lo),
			PowerHigh: fraction(s.Intensity.Unit, hi),
		})
	}

	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("zwo: marshal workout: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

var sportTypes = map[plan.Sport]string{
	plan.SportCycling: "bike",
	plan.SportRunning: "run",
}

// setElems renders an interval set. A set of exactly one steady time-based
// work step and one steady time-based recovery step collapses into the native
// repeated-interval primitive; any other shape degrades to emitting the
// expanded steps individually.
func setElems(set *plan.IntervalSet, s plan.Settings) []any {
	if on, off, ok := onOffShape(set); ok {
		elem := intervalsT{
			Repeat:      set.Repeats,
			OnDuration:  stepSeconds(on, s),
			OffDuration: stepSeconds(off, s),
			OnPower:     fraction(on.Intensity.Unit, on.Intensity.Value),
			OffPower:    fraction(off.Intensity.Unit, off.Intensity.Value),
		}
		if on.Cadence != nil {
			elem.Cadence = on.Cadence.Low
		}
		if off.Cadence != nil {
			elem.CadenceResting = off.Cadence.Low
		}
		return []any{elem}
	}

	var out []any
	for r := 0; r < set.Repeats; r++ {
		for _, step := range set.Steps {
			out = append(out, stepElem(step, s))
		}
	}
	return out
}

// onOffShape reports whether the set matches the one-work-one-recovery pattern
// the IntervalsT primitive expresses.
func onOffShape(set *plan.IntervalSet) (on, off plan.WorkoutStep, ok bool) {
	if len(set.Steps) != 2 {
		return on, off, false
	}
	on, off = set.Steps[0], set.Steps[1]
	if on.Kind != plan.StepWork || off.Kind != plan.StepRecovery {
		return on, off, false
	}
	if on.Intensity.IsRamp() || off.Intensity.IsRamp() {
		return on, off, false
	}
	if on.Duration.Unit.IsDistance() || off.Duration.Unit.IsDistance() {
		return on, off, false
	}
	return on, off, true
}

func stepElem(step plan.WorkoutStep, s plan.Settings) any {
	if step.Intensity.IsRamp() {
		elem := ramp{
			Duration:  stepSeconds(step, s),
			PowerLow:  fraction(step.Intensity.Unit, step.Intensity.Start()),
			PowerHigh: fraction(step.Intensity.Unit, step.Intensity.End()),
		}
		if step.Cadence != nil {
			elem.CadenceLow = step.Cadence.Low
			elem.CadenceHigh = step.Cadence.High
		}
		return elem
	}
	elem := steadyState{
		Duration: stepSeconds(step, s),
		Power:    fraction(step.Intensity.Unit, step.Intensity.Value),
	}
	if step.Cadence != nil {
		elem.CadenceLow = step.Cadence.Low
		elem.CadenceHigh = step.Cadence.High
	}
	return elem
}

func stepSeconds(step plan.WorkoutStep, s plan.Settings) int {
	return int(math.Round(units.EstimatedSeconds(step.Duration.Value, step.Duration.Unit, s.SpeedKPH)))
}

func fraction(unit units.IntensityUnit, v float64) string {
	return fmt.Sprintf("%.2f", units.Fraction(plan.PowerPercent(unit, v)))
}
