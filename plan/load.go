package plan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// UnmarshalJSON decodes the main-set sum type. The presence of a "repeats"
// field discriminates an interval set from a single step.
func (sw *StructuredWorkout) UnmarshalJSON(b []byte) error {
	var raw struct {
		Warmup   []WorkoutStep     `json:"warmup"`
		Main     []json.RawMessage `json:"main"`
		Cooldown []WorkoutStep     `json:"cooldown"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	sw.Warmup = raw.Warmup
	sw.Cooldown = raw.Cooldown
	sw.Main = sw.Main[:0]
	for i, item := range raw.Main {
		var probe struct {
			Repeats *int `json:"repeats"`
		}
		if err := json.Unmarshal(item, &probe); err != nil {
			return fmt.Errorf("main item %d: %w", i, err)
		}
		if probe.Repeats != nil {
			var set IntervalSet
			if err := json.Unmarshal(item, &set); err != nil {
				return fmt.Errorf("main item %d: %w", i, err)
			}
			if set.Repeats < 1 {
				return fmt.Errorf("main item %d: repeats must be >= 1, got %d", i, set.Repeats)
			}
			if len(set.Steps) == 0 {
				return fmt.Errorf("main item %d: interval set has no steps", i)
			}
			sw.Main = append(sw.Main, &set)
			continue
		}
		var step WorkoutStep
		if err := json.Unmarshal(item, &step); err != nil {
			return fmt.Errorf("main item %d: %w", i, err)
		}
		sw.Main = append(sw.Main, &step)
	}
	return nil
}

// MarshalJSON renders the main-set sum type back to its wire shape.
func (sw StructuredWorkout) MarshalJSON() ([]byte, error) {
	type alias struct {
		Warmup   []WorkoutStep `json:"warmup,omitempty"`
		Main     []any         `json:"main"`
		Cooldown []WorkoutStep `json:"cooldown,omitempty"`
	}
	out := alias{Warmup: sw.Warmup, Cooldown: sw.Cooldown}
	for _, item := range sw.Main {
		out.Main = append(out.Main, item)
	}
	return json.Marshal(out)
}

// Load reads a plan snapshot from a JSON file. Workouts missing a stable
// identifier are assigned one so calendar UIDs stay unique.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}
	for i := range p.Workouts {
		if p.Workouts[i].Workout.ID == "" {
			p.Workouts[i].Workout.ID = uuid.NewString()
		}
	}
	return &p, nil
}
