// Package ical encodes a whole training plan as an RFC-5545 calendar: one
// all-day event per workout occurrence plus one event for the target date.
package ical

import (
	"fmt"
	"strings"
	"time"

	"github.com/tpuiseux/claude-coach/plan"
)

const (
	prodID    = "-//claude-coach//training plan//EN"
	uidDomain = "claude-coach"
	dayLayout = "20060102"
)

// Encode renders the plan as an iCalendar file. The now argument feeds the
// DTSTAMP properties so output is reproducible.
func Encode(p *plan.Plan, now time.Time) ([]byte, error) {
	if p == nil || len(p.Workouts) == 0 {
		return nil, fmt.Errorf("ical: plan has no workouts")
	}
	stamp := now.UTC().Format("20060102T150405Z")

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+prodID)
	writeLine(&b, "CALSCALE:GREGORIAN")

	for _, pw := range p.Workouts {
		w := pw.Workout
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, fmt.Sprintf("UID:%s-%s@%s", w.ID, pw.Date.Format(dayLayout), uidDomain))
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART;VALUE=DATE:"+pw.Date.Format(dayLayout))
		writeLine(&b, "DTEND;VALUE=DATE:"+pw.Date.AddDate(0, 0, 1).Format(dayLayout))
		writeLine(&b, "SUMMARY:"+Escape(summary(w)))
		if desc := description(w); desc != "" {
			writeLine(&b, "DESCRIPTION:"+Escape(desc))
		}
		writeLine(&b, "TRANSP:TRANSPARENT")
		writeLine(&b, "END:VEVENT")
	}

	if !p.TargetDate.IsZero() {
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, fmt.Sprintf("UID:target-%s@%s", p.TargetDate.Format(dayLayout), uidDomain))
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART;VALUE=DATE:"+p.TargetDate.Format(dayLayout))
		writeLine(&b, "DTEND;VALUE=DATE:"+p.TargetDate.AddDate(0, 0, 1).Format(dayLayout))
		writeLine(&b, "SUMMARY:"+Escape("Target: "+p.Name))
		writeLine(&b, "TRANSP:OPAQUE")
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return []byte(b.String()), nil
}

func summary(w plan.Workout) string {
	if w.Sport == plan.SportRest {
		return "Rest day"
	}
	return w.Name
}

func description(w plan.Workout) string {
	parts := make([]string, 0, 3)
	if w.Description != "" {
		parts = append(parts, w.Description)
	}
	if w.DurationMin > 0 {
		parts = append(parts, fmt.Sprintf("Duration: %.0f min", w.DurationMin))
	}
	if w.DistanceKM > 0 {
		parts = append(parts, fmt.Sprintf("Distance: %.1f km", w.DistanceKM))
	}
	return strings.Join(parts, "\n")
}

func writeLine(b *strings.Builder, line string) {
	for _, folded := range Fold(line) {
		b.WriteString(folded)
		b.WriteString("\r\n")
	}
}
