// Package erg encodes a cycling workout into the text ERG/MRC course format:
// a key=value course header followed by tab-separated breakpoints of elapsed
// minutes against percent of FTP (MRC) or absolute watts (ERG).
package erg

import (
	"fmt"
	"math"
	"strings"

	"github.com/tpuiseux/claude-coach/plan"
	"github.com/tpuiseux/claude-coach/units"
)

// Variant selects the intensity column of the course file.
type Variant int

const (
	// Percent writes a MINUTES PERCENT course (MRC).
	Percent Variant = iota
	// Watts writes a MINUTES WATTS course (ERG), multiplying percent of FTP
	// by the athlete's threshold power.
	Watts
)

// Breakpoint is one course data line.
type Breakpoint struct {
	Minutes float64
	Value   float64
}

// Encode renders the workout as an ERG or MRC course file. The format is
// cycling-only; any other sport is a caller contract violation. The Watts
// variant requires a positive FTP in the settings.
func Encode(w *plan.Workout, variant Variant, set plan.Settings) ([]byte, error) {
	if w.Sport != plan.SportCycling {
		return nil, fmt.Errorf("erg: %w: %s", plan.ErrUnsupportedSport, w.Sport)
	}
	if variant == Watts && set.FTPWatts <= 0 {
		return nil, fmt.Errorf("erg: watts variant requires a positive FTP, got %g", set.FTPWatts)
	}

	sw, err := w.Resolved()
	if err != nil {
		return nil, fmt.Errorf("erg: %w", err)
	}
	points := Breakpoints(plan.Flatten(sw, set))

	var b strings.Builder
	b.WriteString("[COURSE HEADER]\r\n")
	b.WriteString("VERSION = 2\r\n")
	b.WriteString("UNITS = ENGLISH\r\n")
	fmt.Fprintf(&b, "DESCRIPTION = %s\r\n", headerValue(w.Description, w.Name))
	fmt.Fprintf(&b, "FILE NAME = %s\r\n", headerValue(w.Name, "workout"))
	if variant == Watts {
		fmt.Fprintf(&b, "FTP = %d\r\n", int(math.Round(set.FTPWatts)))
		b.WriteString("MINUTES WATTS\r\n")
	} else {
		b.WriteString("MINUTES PERCENT\r\n")
	}
	b.WriteString("[END COURSE HEADER]\r\n")

	b.WriteString("[COURSE DATA]\r\n")
	for _, p := range points {
		value := p.Value
		if variant == Watts {
			value = units.Fraction(value) * set.FTPWatts
		}
		fmt.Fprintf(&b, "%.2f\t%d\r\n", p.Minutes, int(math.Round(value)))
	}
	b.WriteString("[END COURSE DATA]\r\n")

	return []byte(b.String()), nil
}

// Breakpoints converts the flattened sequence into course data points on the
// percent-of-FTP scale. Every expanded step contributes explicitly: a steady
// step repeats its value at start and end, a ramp contributes its two
// boundary intensities. Rounding to integers happens at serialization.
func Breakpoints(steps []plan.TimedStep) []Breakpoint {
	out := make([]Breakpoint, 0, 2*len(steps))
	for _, ts := range steps {
		i := ts.Step.Intensity
		out = append(out,
			Breakpoint{Minutes: ts.StartMin, Value: plan.PowerPercent(i.Unit, i.Start())},
			Breakpoint{Minutes: ts.EndMin, Value: plan.PowerPercent(i.Unit, i.End())},
		)
	}
	return out
}

// headerValue keeps course header lines single-line, falling back when the
// preferred text is empty.
func headerValue(preferred, fallback string) string {
	v := strings.TrimSpace(preferred)
	if v == "" {
		v = fallback
	}
	return strings.Join(strings.Fields(v), " ")
}
