package plan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const planJSON = `{
  "name": "Build Block",
  "target_date": "2026-10-04",
  "workouts": [
    {
      "date": "2026-09-01",
      "workout": {
        "id": "w1",
        "sport": "cycling",
        "type": "intervals",
        "name": "VO2 session",
        "structure": {
          "warmup": [
            {"kind": "warmup", "duration": {"value": 10, "unit": "minutes"},
             "intensity": {"unit": "percent_ftp", "low": 50, "high": 65}}
          ],
          "main": [
            {"repeats": 3, "steps": [
              {"kind": "work", "duration": {"value": 5, "unit": "minutes"},
               "intensity": {"unit": "percent_ftp", "value": 100}},
              {"kind": "recovery", "duration": {"value": 5, "unit": "minutes"},
               "intensity": {"unit": "percent_ftp", "value": 50}}
            ]},
            {"kind": "work", "duration": {"value": 10, "unit": "minutes"},
             "intensity": {"unit": "percent_ftp", "value": 85}}
          ],
          "cooldown": []
        }
      }
    },
    {
      "date": "2026-09-02",
      "workout": {"sport": "rest", "type": "recovery", "name": "Rest"}
    }
  ]
}`

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plan file: %v", err)
	}
	return path
}

func TestLoadDiscriminatesMainItems(t *testing.T) {
	p, err := Load(writePlanFile(t, planJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "Build Block" {
		t.Fatalf("plan name = %q", p.Name)
	}
	if p.TargetDate.Format("2006-01-02") != "2026-10-04" {
		t.Fatalf("target date = %s", p.TargetDate.Format("2006-01-02"))
	}

	sw := p.Workouts[0].Workout.Structure
	if sw == nil || len(sw.Main) != 2 {
		t.Fatalf("expected 2 main items, got %+v", sw)
	}
	set, ok := sw.Main[0].(*IntervalSet)
	if !ok {
		t.Fatalf("main[0] is %T, want *IntervalSet", sw.Main[0])
	}
	if set.Repeats != 3 || len(set.Steps) != 2 {
		t.Fatalf("interval set = %dx%d steps", set.Repeats, len(set.Steps))
	}
	if _, ok := sw.Main[1].(*WorkoutStep); !ok {
		t.Fatalf("main[1] is %T, want *WorkoutStep", sw.Main[1])
	}
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	p, err := Load(writePlanFile(t, planJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Workouts[0].Workout.ID != "w1" {
		t.Fatalf("explicit id was rewritten to %q", p.Workouts[0].Workout.ID)
	}
	if p.Workouts[1].Workout.ID == "" {
		t.Fatal("missing id was not assigned")
	}
}

func TestLoadRejectsBadIntervalSets(t *testing.T) {
	bad := strings.Replace(planJSON, `"repeats": 3`, `"repeats": 0`, 1)
	if _, err := Load(writePlanFile(t, bad)); err == nil {
		t.Fatal("expected error for repeats < 1")
	}

	bad = strings.Replace(planJSON, `"repeats": 3, "steps": [`, `"repeats": 3, "steps_x": [`, 1)
	if _, err := Load(writePlanFile(t, bad)); err == nil {
		t.Fatal("expected error for interval set without steps")
	}
}

func TestStructuredWorkoutRoundTrip(t *testing.T) {
	orig := rampStructure()
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back StructuredWorkout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Main) != len(orig.Main) {
		t.Fatalf("main length %d != %d", len(back.Main), len(orig.Main))
	}
	if _, ok := back.Main[0].(*IntervalSet); !ok {
		t.Fatalf("round-tripped main[0] is %T", back.Main[0])
	}
}
