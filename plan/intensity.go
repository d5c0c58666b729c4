package plan

import "github.com/tpuiseux/claude-coach/units"

// rpePercent maps perceived effort 1..10 to percent of threshold power.
var rpePercent = []float64{40, 48, 55, 62, 70, 78, 86, 95, 105, 115}

// zonePercent maps heart-rate zones 1..5 to percent of threshold power.
var zonePercent = []float64{50, 65, 80, 95, 110}

// PowerPercent maps an intensity value on any supported scale to percent of
// threshold power, for formats whose only axis is power. Percent-of-LTHR is
// taken as the same percent of FTP, and zones and perceived effort go through
// fixed tables; both are modeled approximations, good enough for the target
// importers.
func PowerPercent(unit units.IntensityUnit, v float64) float64 {
	switch unit {
	case units.UnitPercentFTP, units.UnitPercentLTHR:
		return v
	case units.UnitHRZone:
		return lookup(zonePercent, v)
	case units.UnitRPE:
		return lookup(rpePercent, v)
	}
	return v
}

func lookup(table []float64, v float64) float64 {
	i := int(v)
	if i < 1 {
		i = 1
	}
	if i > len(table) {
		i = len(table)
	}
	return table[i-1]
}
