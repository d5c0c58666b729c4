// Package plan holds the read-only training-plan model handed to the export
// codec layer, plus the structure walker and the simple-workout synthesizer
// that turn a workout into the flat step sequence the encoders consume.
package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/tpuiseux/claude-coach/units"
)

// ErrUnsupportedSport marks a caller contract violation: an encoder was asked
// for a sport it does not support. Encoders wrap it with format context and
// the orchestrator matches it with errors.Is.
var ErrUnsupportedSport = errors.New("unsupported sport")

// Sport tags a workout with its discipline.
type Sport string

const (
	SportCycling  Sport = "cycling"
	SportRunning  Sport = "running"
	SportSwimming Sport = "swimming"
	SportStrength Sport = "strength"
	SportRest     Sport = "rest"
	SportRace     Sport = "race"
)

// Exportable reports whether per-workout encoders apply to the sport at all.
// Rest days and race placeholders carry no encodable session.
func (s Sport) Exportable() bool {
	return s != SportRest && s != SportRace
}

// WorkoutType selects intensity defaults when a workout has no structured body.
type WorkoutType string

const (
	TypeRecovery  WorkoutType = "recovery"
	TypeEndurance WorkoutType = "endurance"
	TypeTempo     WorkoutType = "tempo"
	TypeThreshold WorkoutType = "threshold"
	TypeIntervals WorkoutType = "intervals"
	TypeVO2Max    WorkoutType = "vo2max"
)

// StepKind tags a step's role within the session.
type StepKind string

const (
	StepWarmup   StepKind = "warmup"
	StepCooldown StepKind = "cooldown"
	StepWork     StepKind = "work"
	StepRecovery StepKind = "recovery"
	StepActive   StepKind = "active"
)

// Duration is a numeric value with its unit. Distance units have no exact time
// equivalent; formats needing a time axis estimate one via Settings.SpeedKPH.
type Duration struct {
	Value float64            `json:"value"`
	Unit  units.DurationUnit `json:"unit"`
}

// Intensity is a step's target. Value is the steady target on the step's
// scale. When Low and High are both set and distinct, the step is a ramp
// running chronologically from Low to High; a descending ramp has Low > High.
type Intensity struct {
	Unit  units.IntensityUnit `json:"unit"`
	Value float64             `json:"value"`
	Low   float64             `json:"low,omitempty"`
	High  float64             `json:"high,omitempty"`
}

// IsRamp reports whether the intensity describes a ramp rather than a steady
// target.
func (i Intensity) IsRamp() bool {
	return (i.Low != 0 || i.High != 0) && i.Low != i.High
}

// Start returns the intensity at the beginning of the step.
func (i Intensity) Start() float64 {
	if i.IsRamp() {
		return i.Low
	}
	return i.Value
}

// End returns the intensity at the end of the step.
func (i Intensity) End() float64 {
	if i.IsRamp() {
		return i.High
	}
	return i.Value
}

// CadenceRange bounds the prescribed cadence in revolutions per minute.
type CadenceRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// WorkoutStep is one atomic instruction of a structured workout.
type WorkoutStep struct {
	Kind      StepKind      `json:"kind"`
	Duration  Duration      `json:"duration"`
	Intensity Intensity     `json:"intensity"`
	Cadence   *CadenceRange `json:"cadence,omitempty"`
	Name      string        `json:"name,omitempty"`
}

// IntervalSet replays an ordered step block a fixed number of times.
// Expansion produces Repeats x len(Steps) flattened steps, block by block.
type IntervalSet struct {
	Repeats int           `json:"repeats"`
	Steps   []WorkoutStep `json:"steps"`
}

// MainItem is the sum type of a main-set entry: either a single *WorkoutStep
// or an *IntervalSet.
type MainItem interface {
	mainItem()
}

func (*WorkoutStep) mainItem() {}
func (*IntervalSet) mainItem() {}

// StructuredWorkout is the optional detailed body of a workout. When present,
// Main must be non-empty.
type StructuredWorkout struct {
	Warmup   []WorkoutStep `json:"warmup,omitempty"`
	Main     []MainItem    `json:"main"`
	Cooldown []WorkoutStep `json:"cooldown,omitempty"`
}

// Workout is one training session. The codec layer treats it as a read-only
// view for the duration of one export call.
type Workout struct {
	ID          string             `json:"id"`
	Sport       Sport              `json:"sport"`
	Type        WorkoutType        `json:"type"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	DurationMin float64            `json:"duration_min,omitempty"`
	DistanceKM  float64            `json:"distance_km,omitempty"`
	Structure   *StructuredWorkout `json:"structure,omitempty"`
}

// Resolved returns the workout's structured body, synthesizing a canonical
// three-phase profile from the total duration and type when no explicit
// structure exists.
func (w *Workout) Resolved() (*StructuredWorkout, error) {
	if w.Structure != nil {
		if len(w.Structure.Main) == 0 {
			return nil, fmt.Errorf("workout %q: structured body has empty main set", w.Name)
		}
		return w.Structure, nil
	}
	if w.DurationMin <= 0 {
		return nil, fmt.Errorf("workout %q: no structured body and no total duration", w.Name)
	}
	return Synthesize(w.DurationMin, w.Type), nil
}

// Date is a calendar day, serialized as 2006-01-02.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a quoted 2006-01-02 date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a quoted string, got %s", s)
	}
	t, err := time.Parse("2006-01-02", s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date as a quoted 2006-01-02 string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// PlannedWorkout is one workout occurrence on a calendar day.
type PlannedWorkout struct {
	Date    Date    `json:"date"`
	Workout Workout `json:"workout"`
}

// Plan is a multi-week training plan ending at a target date.
type Plan struct {
	Name       string           `json:"name"`
	TargetDate Date             `json:"target_date"`
	Workouts   []PlannedWorkout `json:"workouts"`
}

// Settings carries the athlete context encoders need to turn fractional
// intensities into absolute watts or BPM. It is passed explicitly to every
// encoder call so exports stay referentially transparent.
type Settings struct {
	FTPWatts       float64
	ThresholdHRBPM float64

	// SpeedKPH is the assumed average speed for distance-based steps when a
	// format needs a time axis. Zero selects units.DefaultSpeedKPH.
	SpeedKPH float64
}
