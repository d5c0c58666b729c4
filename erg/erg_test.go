package erg

import (
	"errors"
	"strings"
	"testing"

	"github.com/tpuiseux/claude-coach/plan"
)

func enduranceRide() *plan.Workout {
	return &plan.Workout{
		ID:          "w1",
		Sport:       plan.SportCycling,
		Type:        plan.TypeEndurance,
		Name:        "Endurance ride",
		Description: "Steady aerobic hour",
		DurationMin: 60,
	}
}

func dataLines(t *testing.T, out []byte) []string {
	t.Helper()
	text := string(out)
	start := strings.Index(text, "[COURSE DATA]")
	end := strings.Index(text, "[END COURSE DATA]")
	if start < 0 || end < 0 {
		t.Fatalf("missing course data block in output:\n%s", text)
	}
	block := strings.TrimSpace(text[start+len("[COURSE DATA]") : end])
	return strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
}

func TestEncodeSixtyMinuteEndurancePercent(t *testing.T) {
	out, err := Encode(enduranceRide(), Percent, plan.Settings{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "[COURSE HEADER]") || !strings.Contains(text, "[END COURSE HEADER]") {
		t.Fatal("missing course header block")
	}
	if !strings.Contains(text, "MINUTES PERCENT") {
		t.Fatal("percent variant must declare MINUTES PERCENT columns")
	}
	if strings.Contains(text, "FTP =") {
		t.Fatal("percent variant must not write an FTP line")
	}

	lines := dataLines(t, out)
	if lines[0] != "0.00\t40" {
		t.Fatalf("first breakpoint = %q, want 0.00\\t40", lines[0])
	}
	if lines[len(lines)-1] != "60.00\t40" {
		t.Fatalf("last breakpoint = %q, want 60.00\\t40", lines[len(lines)-1])
	}
	// The main set sits at the endurance percentage.
	found := false
	for _, l := range lines {
		if strings.HasSuffix(l, "\t65") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no breakpoint at the endurance percentage 65 in %v", lines)
	}
}

func TestEncodeWattsVariantMultipliesFTP(t *testing.T) {
	out, err := Encode(enduranceRide(), Watts, plan.Settings{FTPWatts: 200})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "MINUTES WATTS") {
		t.Fatal("watts variant must declare MINUTES WATTS columns")
	}
	if !strings.Contains(text, "FTP = 200") {
		t.Fatal("watts variant must carry the FTP header line")
	}

	lines := dataLines(t, out)
	// 40% of 200 W = 80 W at the very start.
	if lines[0] != "0.00\t80" {
		t.Fatalf("first breakpoint = %q, want 0.00\\t80", lines[0])
	}
	// Main set: 65% of 200 W = 130 W.
	found := false
	for _, l := range lines {
		if strings.HasSuffix(l, "\t130") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no 130 W main-set breakpoint in %v", lines)
	}
}

func TestEncodeWattsRequiresFTP(t *testing.T) {
	if _, err := Encode(enduranceRide(), Watts, plan.Settings{}); err == nil {
		t.Fatal("watts variant without FTP must fail")
	}
}

func TestEncodeStepsBecomeExplicitBreakpoints(t *testing.T) {
	w := enduranceRide()
	w.Structure = &plan.StructuredWorkout{
		Main: []plan.MainItem{&plan.IntervalSet{
			Repeats: 2,
			Steps: []plan.WorkoutStep{
				{Kind: plan.StepWork, Duration: plan.Duration{Value: 1, Unit: "minutes"},
					Intensity: plan.Intensity{Unit: "percent_ftp", Value: 120}},
				{Kind: plan.StepRecovery, Duration: plan.Duration{Value: 2, Unit: "minutes"},
					Intensity: plan.Intensity{Unit: "percent_ftp", Value: 50}},
			},
		}},
	}
	out, err := Encode(w, Percent, plan.Settings{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	lines := dataLines(t, out)
	// No interval compression: 4 expanded steps, 2 breakpoints each.
	if len(lines) != 8 {
		t.Fatalf("expected 8 breakpoints, got %d: %v", len(lines), lines)
	}
	if lines[0] != "0.00\t120" || lines[1] != "1.00\t120" {
		t.Fatalf("first step breakpoints = %q, %q", lines[0], lines[1])
	}
	if lines[6] != "4.00\t50" || lines[7] != "6.00\t50" {
		t.Fatalf("last step breakpoints = %q, %q", lines[6], lines[7])
	}
}

func TestEncodeRejectsNonCycling(t *testing.T) {
	for _, sport := range []plan.Sport{plan.SportRunning, plan.SportSwimming, plan.SportRest, plan.SportRace} {
		w := &plan.Workout{Sport: sport, Name: "x", Type: plan.TypeEndurance, DurationMin: 60}
		if _, err := Encode(w, Percent, plan.Settings{}); !errors.Is(err, plan.ErrUnsupportedSport) {
			t.Fatalf("sport %s: error %v does not wrap ErrUnsupportedSport", sport, err)
		}
	}
}
