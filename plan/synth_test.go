package plan

import (
	"math"
	"testing"
)

func TestSynthesizeSixtyMinuteEndurance(t *testing.T) {
	sw := Synthesize(60, TypeEndurance)

	if len(sw.Warmup) != 1 || len(sw.Main) != 1 || len(sw.Cooldown) != 1 {
		t.Fatalf("expected three phases, got %d/%d/%d", len(sw.Warmup), len(sw.Main), len(sw.Cooldown))
	}
	if got := sw.Warmup[0].Duration.Value; got != 6 {
		t.Fatalf("warmup = %g min, want 6 (10%% of 60)", got)
	}
	if got := sw.Cooldown[0].Duration.Value; got != 6 {
		t.Fatalf("cooldown = %g min, want 6", got)
	}
	main, ok := sw.Main[0].(*WorkoutStep)
	if !ok {
		t.Fatalf("main item is %T, want *WorkoutStep", sw.Main[0])
	}
	if main.Duration.Value != 48 {
		t.Fatalf("main = %g min, want 48", main.Duration.Value)
	}
	if main.Intensity.Value != 65 {
		t.Fatalf("endurance intensity = %g%%, want 65", main.Intensity.Value)
	}
	if sw.Warmup[0].Intensity.Low != 40 || sw.Warmup[0].Intensity.High != 65 {
		t.Fatalf("warmup ramp = %g->%g, want 40->65", sw.Warmup[0].Intensity.Low, sw.Warmup[0].Intensity.High)
	}
	if sw.Cooldown[0].Intensity.Low != 60 || sw.Cooldown[0].Intensity.High != 40 {
		t.Fatalf("cooldown ramp = %g->%g, want 60->40", sw.Cooldown[0].Intensity.Low, sw.Cooldown[0].Intensity.High)
	}
}

func TestSynthesizeClamps(t *testing.T) {
	// 200 min: 10% is 20, clamped to 15 warmup and 10 cooldown.
	sw := Synthesize(200, TypeTempo)
	if sw.Warmup[0].Duration.Value != 15 {
		t.Fatalf("warmup = %g, want clamp at 15", sw.Warmup[0].Duration.Value)
	}
	if sw.Cooldown[0].Duration.Value != 10 {
		t.Fatalf("cooldown = %g, want clamp at 10", sw.Cooldown[0].Duration.Value)
	}
	main := sw.Main[0].(*WorkoutStep)
	if main.Duration.Value != 175 {
		t.Fatalf("main = %g, want 175", main.Duration.Value)
	}

	// 20 min: 10% is 2, clamped up to 5 on both ends.
	sw = Synthesize(20, TypeRecovery)
	if sw.Warmup[0].Duration.Value != 5 || sw.Cooldown[0].Duration.Value != 5 {
		t.Fatalf("short workout bookends = %g/%g, want 5/5",
			sw.Warmup[0].Duration.Value, sw.Cooldown[0].Duration.Value)
	}
}

func TestSynthesizeVeryShortTotalFallsBackToSingleStep(t *testing.T) {
	// Under 10 minutes the clamped bookends would exceed the total; the
	// whole duration becomes one steady main step instead.
	sw := Synthesize(8, TypeThreshold)
	if len(sw.Warmup) != 0 || len(sw.Cooldown) != 0 {
		t.Fatalf("expected no bookends for 8 min total, got %d/%d", len(sw.Warmup), len(sw.Cooldown))
	}
	main := sw.Main[0].(*WorkoutStep)
	if main.Duration.Value != 8 {
		t.Fatalf("main = %g, want the full 8 minutes", main.Duration.Value)
	}
	if main.Duration.Value < 0 {
		t.Fatal("negative main duration must never be produced")
	}
}

func TestMainIntensityStrictlyIncreasing(t *testing.T) {
	order := []WorkoutType{TypeRecovery, TypeEndurance, TypeTempo, TypeThreshold, TypeIntervals, TypeVO2Max}
	prev := math.Inf(-1)
	for _, wt := range order {
		p := MainIntensityPercent(wt)
		if p <= prev {
			t.Fatalf("intensity table not strictly increasing at %s: %g <= %g", wt, p, prev)
		}
		prev = p
	}
}

func TestSynthesizedTotalsMatch(t *testing.T) {
	for _, total := range []float64{30, 45, 60, 90, 120, 180} {
		sw := Synthesize(total, TypeIntervals)
		steps := Flatten(sw, Settings{})
		if got := TotalMinutes(steps); math.Abs(got-total) > 1e-9 {
			t.Fatalf("synthesized %g min workout flattens to %g min", total, got)
		}
	}
}

func TestResolvedPrefersStructureThenSynthesizes(t *testing.T) {
	structured := &Workout{Name: "s", Structure: rampStructure()}
	sw, err := structured.Resolved()
	if err != nil {
		t.Fatalf("Resolved with structure: %v", err)
	}
	if sw != structured.Structure {
		t.Fatal("Resolved should return the explicit structure untouched")
	}

	simple := &Workout{Name: "u", Type: TypeEndurance, DurationMin: 60}
	sw, err = simple.Resolved()
	if err != nil {
		t.Fatalf("Resolved without structure: %v", err)
	}
	if len(sw.Warmup) != 1 || len(sw.Main) != 1 || len(sw.Cooldown) != 1 {
		t.Fatal("Resolved should synthesize a three-phase body")
	}

	empty := &Workout{Name: "e"}
	if _, err := empty.Resolved(); err == nil {
		t.Fatal("Resolved should fail with no structure and no duration")
	}
}
