// Package fitenc builds the binary step-message workout file. It constructs
// the ordered workout and workout-step records; byte-level framing is
// delegated to the FIT encoder dependency behind a narrow message-sink
// interface, so record construction stays testable without real framing.
package fitenc

import (
	"fmt"
	"math"

	"github.com/tormoder/fit"

	"github.com/tpuiseux/claude-coach/plan"
	"github.com/tpuiseux/claude-coach/units"
)

// MessageSink receives ordered step records and finalizes them into bytes.
type MessageSink interface {
	Append(step *fit.WorkoutStepMsg)
	Finalize(workout *fit.WorkoutMsg) ([]byte, error)
}

// Messages is the ordered record list this layer is responsible for.
type Messages struct {
	Workout *fit.WorkoutMsg
	Steps   []*fit.WorkoutStepMsg
}

var sports = map[plan.Sport]fit.Sport{
	plan.SportCycling:  fit.SportCycling,
	plan.SportRunning:  fit.SportRunning,
	plan.SportSwimming: fit.SportSwimming,
	plan.SportStrength: fit.SportTraining,
}

// Build constructs the workout and step messages for a workout. Every sport
// except rest and race is encodable; rejected sports are a caller contract
// violation. An interval set emits its child steps once, followed by a repeat
// record referencing the first child by message index.
func Build(w *plan.Workout, set plan.Settings) (*Messages, error) {
	sport, ok := sports[w.Sport]
	if !ok {
		return nil, fmt.Errorf("fit: %w: %s", plan.ErrUnsupportedSport, w.Sport)
	}

	sw, err := w.Resolved()
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	var steps []*fit.WorkoutStepMsg
	add := func(m *fit.WorkoutStepMsg) {
		m.MessageIndex = fit.MessageIndex(len(steps))
		steps = append(steps, m)
	}

	for _, s := range sw.Warmup {
		add(stepMsg(s, set))
	}
	for _, item := range sw.Main {
		switch v := item.(type) {
		case *plan.WorkoutStep:
			add(stepMsg(*v, set))
		case *plan.IntervalSet:
			first := len(steps)
			for _, s := range v.Steps {
				add(stepMsg(s, set))
			}
			repeat := fit.NewWorkoutStepMsg()
			repeat.DurationType = fit.WktStepDurationRepeatUntilStepsCmplt
			repeat.DurationValue = uint32(first)
			repeat.TargetType = fit.WktStepTargetOpen
			repeat.TargetValue = uint32(v.Repeats)
			add(repeat)
		}
	}
	for _, s := range sw.Cooldown {
		add(stepMsg(s, set))
	}

	workout := fit.NewWorkoutMsg()
	workout.WktName = w.Name
	workout.Sport = sport
	workout.SubSport = fit.SubSportGeneric
	workout.NumValidSteps = uint16(len(steps))

	return &Messages{Workout: workout, Steps: steps}, nil
}

// Encode builds the record list and finalizes it through the given sink.
// A nil sink selects the real FIT file sink.
func Encode(w *plan.Workout, set plan.Settings, sink MessageSink) ([]byte, error) {
	msgs, err := Build(w, set)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NewFileSink()
	}
	for _, s := range msgs.Steps {
		sink.Append(s)
	}
	data, err := sink.Finalize(msgs.Workout)
	if err != nil {
		return nil, fmt.Errorf("fit: finalize workout file: %w", err)
	}
	return data, nil
}

var intensities = map[plan.StepKind]fit.Intensity{
	plan.StepWarmup:   fit.IntensityWarmup,
	plan.StepCooldown: fit.IntensityCooldown,
	plan.StepWork:     fit.IntensityActive,
	plan.StepRecovery: fit.IntensityRest,
	plan.StepActive:   fit.IntensityActive,
}

func stepMsg(s plan.WorkoutStep, set plan.Settings) *fit.WorkoutStepMsg {
	m := fit.NewWorkoutStepMsg()
	m.WktStepName = s.Name
	if in, ok := intensities[s.Kind]; ok {
		m.Intensity = in
	}
	setDuration(m, s)
	setTarget(m, s, set)
	return m
}

// setDuration writes the duration record fields: time in milliseconds,
// distance in centimeters, anything non-positive as an open-ended step.
func setDuration(m *fit.WorkoutStepMsg, s plan.WorkoutStep) {
	if s.Duration.Value <= 0 {
		m.DurationType = fit.WktStepDurationOpen
		return
	}
	if meters, ok := units.Meters(s.Duration.Value, s.Duration.Unit); ok {
		m.DurationType = fit.WktStepDurationDistance
		m.DurationValue = uint32(math.Round(meters * 100))
		return
	}
	seconds, _ := units.Seconds(s.Duration.Value, s.Duration.Unit)
	m.DurationType = fit.WktStepDurationTime
	m.DurationValue = uint32(math.Round(seconds * 1000))
}

// setTarget writes the intensity target. Percent-of-FTP becomes a custom
// power range in watts (offset by 1000) when the athlete FTP is known, raw
// percent on the 0-1000 scale otherwise. Percent-of-LTHR becomes a custom
// heart-rate range in BPM (offset by 100), raw percent of max otherwise.
// Heart-rate zones map to the zone target value. Perceived effort has no
// native target and degrades to open; a cadence range then becomes the
// target so the prescription is not lost entirely.
func setTarget(m *fit.WorkoutStepMsg, s plan.WorkoutStep, set plan.Settings) {
	lo := math.Min(s.Intensity.Start(), s.Intensity.End())
	hi := math.Max(s.Intensity.Start(), s.Intensity.End())

	switch s.Intensity.Unit {
	case units.UnitPercentFTP:
		m.TargetType = fit.WktStepTargetPower
		m.TargetValue = 0
		if set.FTPWatts > 0 {
			m.CustomTargetValueLow = uint32(math.Round(set.FTPWatts*units.Fraction(lo))) + 1000
			m.CustomTargetValueHigh = uint32(math.Round(set.FTPWatts*units.Fraction(hi))) + 1000
		} else {
			m.CustomTargetValueLow = uint32(math.Round(lo * 10))
			m.CustomTargetValueHigh = uint32(math.Round(hi * 10))
		}
	case units.UnitPercentLTHR:
		m.TargetType = fit.WktStepTargetHeartRate
		m.TargetValue = 0
		if set.ThresholdHRBPM > 0 {
			m.CustomTargetValueLow = uint32(math.Round(set.ThresholdHRBPM*units.Fraction(lo))) + 100
			m.CustomTargetValueHigh = uint32(math.Round(set.ThresholdHRBPM*units.Fraction(hi))) + 100
		} else {
			m.CustomTargetValueLow = uint32(math.Round(lo))
			m.CustomTargetValueHigh = uint32(math.Round(hi))
		}
	case units.UnitHRZone:
		m.TargetType = fit.WktStepTargetHeartRate
		m.TargetValue = uint32(s.Intensity.Value)
	default:
		if s.Cadence != nil {
			m.TargetType = fit.WktStepTargetCadence
			m.TargetValue = 0
			m.CustomTargetValueLow = uint32(s.Cadence.Low)
			m.CustomTargetValueHigh = uint32(s.Cadence.High)
			return
		}
		m.TargetType = fit.WktStepTargetOpen
	}
}
