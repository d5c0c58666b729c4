// Package units normalizes heterogeneous duration and intensity units into
// the representations the export formats need. All functions are pure; rounding
// happens only at serialization time in the encoders.
package units

// DurationUnit is the unit of a workout step's duration.
type DurationUnit string

const (
	UnitSeconds    DurationUnit = "seconds"
	UnitMinutes    DurationUnit = "minutes"
	UnitHours      DurationUnit = "hours"
	UnitMeters     DurationUnit = "meters"
	UnitKilometers DurationUnit = "kilometers"
	UnitMiles      DurationUnit = "miles"
)

// IntensityUnit is the scale a step's intensity target is expressed in.
type IntensityUnit string

const (
	UnitPercentFTP  IntensityUnit = "percent_ftp"
	UnitPercentLTHR IntensityUnit = "percent_lthr"
	UnitHRZone      IntensityUnit = "hr_zone"
	UnitRPE         IntensityUnit = "rpe"
)

const (
	metersPerMile = 1609.344

	// DefaultSpeedKPH is the assumed average speed used to give distance-based
	// steps a time axis in formats that require one. It is an approximation,
	// not a physical guarantee; callers can override it through Settings.
	DefaultSpeedKPH = 30.0
)

// IsDistance reports whether u measures distance rather than time.
func (u DurationUnit) IsDistance() bool {
	switch u {
	case UnitMeters, UnitKilometers, UnitMiles:
		return true
	}
	return false
}

// Seconds converts a time-based duration to seconds. The second return value
// is false for distance units, which have no exact time equivalent.
func Seconds(value float64, unit DurationUnit) (float64, bool) {
	switch unit {
	case UnitSeconds:
		return value, true
	case UnitMinutes:
		return value * 60, true
	case UnitHours:
		return value * 3600, true
	}
	return 0, false
}

// Meters converts a distance-based duration to meters. The second return value
// is false for time units.
func Meters(value float64, unit DurationUnit) (float64, bool) {
	switch unit {
	case UnitMeters:
		return value, true
	case UnitKilometers:
		return value * 1000, true
	case UnitMiles:
		return value * metersPerMile, true
	}
	return 0, false
}

// EstimatedSeconds converts any duration to seconds. Time units convert
// exactly; distance units are estimated with the given assumed average speed
// (DefaultSpeedKPH when speedKPH is not positive).
func EstimatedSeconds(value float64, unit DurationUnit, speedKPH float64) float64 {
	if s, ok := Seconds(value, unit); ok {
		return s
	}
	m, ok := Meters(value, unit)
	if !ok {
		return 0
	}
	if speedKPH <= 0 {
		speedKPH = DefaultSpeedKPH
	}
	return m / (speedKPH * 1000.0 / 3600.0)
}

// Fraction maps a percent-style intensity (75 meaning 75% of threshold) to a
// decimal fraction (0.75). Supra-threshold efforts legitimately exceed 1.0.
func Fraction(percent float64) float64 {
	return percent / 100.0
}
