// Package export selects the applicable encoder per workout, wraps every
// outcome into structured result data, and packages bulk exports into a
// single zip archive. Failures never propagate past this boundary as panics
// or errors; batch exports continue past individual failures.
package export

import (
	"fmt"
	"time"

	"github.com/tpuiseux/claude-coach/erg"
	"github.com/tpuiseux/claude-coach/fitenc"
	"github.com/tpuiseux/claude-coach/ical"
	"github.com/tpuiseux/claude-coach/plan"
	"github.com/tpuiseux/claude-coach/zwo"
)

// Format identifies a per-workout target file format.
type Format string

const (
	FormatZWO Format = "zwo"
	FormatERG Format = "erg"
	FormatMRC Format = "mrc"
	FormatFIT Format = "fit"
)

// Formats lists every per-workout format, in presentation order.
var Formats = []Format{FormatZWO, FormatERG, FormatMRC, FormatFIT}

// Artifact is the encoded output of one export call: a payload plus the
// suggested filename, handed to a file-materialization side effect.
type Artifact struct {
	Filename string
	Data     []byte
}

// Result reports one export outcome as data.
type Result struct {
	Success  bool      `json:"success"`
	Filename string    `json:"filename,omitempty"`
	Error    string    `json:"error,omitempty"`
	Artifact *Artifact `json:"-"`
}

// BatchResult aggregates a bulk export: the packaged archive (nil when no
// artifact was produced), per-workout failures, and skip/success counts.
type BatchResult struct {
	Archive  *Artifact
	Exported int
	Skipped  int
	Errors   []string
}

// SupportedFormats returns the per-workout formats applicable to a sport.
// The calendar format is plan-level and outside this table.
func SupportedFormats(sport plan.Sport) []Format {
	var out []Format
	for _, f := range Formats {
		if Supports(f, sport) {
			out = append(out, f)
		}
	}
	return out
}

// Supports reports whether a format can encode a sport.
func Supports(f Format, sport plan.Sport) bool {
	switch f {
	case FormatZWO:
		return sport == plan.SportCycling || sport == plan.SportRunning
	case FormatERG, FormatMRC:
		return sport == plan.SportCycling
	case FormatFIT:
		return sport.Exportable()
	}
	return false
}

// ExportOne encodes a single workout into the requested format. Any failure,
// including a panic out of the delegated binary encoder, is reported as data.
func ExportOne(w *plan.Workout, format Format, set plan.Settings) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Error: fmt.Sprintf("encode %s: panic: %v", format, r)}
		}
	}()

	data, err := encode(w, format, set)
	if err != nil {
		return Result{Error: err.Error()}
	}
	name := Filename(w.Name, string(format))
	return Result{
		Success:  true,
		Filename: name,
		Artifact: &Artifact{Filename: name, Data: data},
	}
}

// ExportBatch encodes every non-rest workout of the plan into the requested
// format. Workouts whose sport the format does not support are counted as
// skipped, not failed; encode failures are collected and the remaining
// artifacts are still packaged. Zero artifacts produce no archive.
func ExportBatch(p *plan.Plan, format Format, set plan.Settings) BatchResult {
	var out BatchResult
	artifacts := make(map[string][]byte)

	for i := range p.Workouts {
		w := &p.Workouts[i].Workout
		if w.Sport == plan.SportRest {
			continue
		}
		if !Supports(format, w.Sport) {
			out.Skipped++
			continue
		}
		res := ExportOne(w, format, set)
		if !res.Success {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", w.Name, res.Error))
			continue
		}
		name := res.Filename
		for n := 2; ; n++ {
			if _, taken := artifacts[name]; !taken {
				break
			}
			name = Filename(fmt.Sprintf("%s %d", w.Name, n), string(format))
		}
		artifacts[name] = res.Artifact.Data
		out.Exported++
	}

	if len(artifacts) == 0 {
		return out
	}
	data, err := zipArtifacts(artifacts)
	if err != nil {
		out.Errors = append(out.Errors, fmt.Sprintf("create archive: %v", err))
		return out
	}
	out.Archive = &Artifact{
		Filename: Filename(p.Name, "zip"),
		Data:     data,
	}
	return out
}

// ExportCalendar encodes the whole plan as an iCalendar artifact.
func ExportCalendar(p *plan.Plan, now time.Time) Result {
	data, err := ical.Encode(p, now)
	if err != nil {
		return Result{Error: err.Error()}
	}
	name := Filename(p.Name, "ics")
	return Result{
		Success:  true,
		Filename: name,
		Artifact: &Artifact{Filename: name, Data: data},
	}
}

func encode(w *plan.Workout, format Format, set plan.Settings) ([]byte, error) {
	switch format {
	case FormatZWO:
		return zwo.Encode(w, set)
	case FormatERG:
		return erg.Encode(w, erg.Watts, set)
	case FormatMRC:
		return erg.Encode(w, erg.Percent, set)
	case FormatFIT:
		return fitenc.Encode(w, set, nil)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
