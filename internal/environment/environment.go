// Package environment resolves the raw takeoff request into the derived
// parameters every downstream correction kernel consumes.
package environment

import (
	"math"

	"github.com/otto-perf/takeoff-performance/internal/tables"
)

// MaxHeadwind is the headwind component beyond which additional headwind no
// longer increases the allowable weight (the tables are not extrapolated
// past it).
const MaxHeadwind = 50.0

// LineupDistance gives the runway length, in meters, consumed aligning the
// aircraft onto the centerline before brake release, indexed by the turn
// angle performed to get there.
var LineupDistance = map[int]float64{
	0:   0,
	90:  60,
	180: 120,
}

// Resolved holds the environment-derived intermediates, computed once per
// call from the raw inputs and the process-wide constant
// tables.
type Resolved struct {
	IsaTemp      float64
	PressureAlt  float64
	TRef         float64
	TMax         float64
	TFlexMax     float64
	AdjustedTora float64
	Headwind     float64
}

// IsaTemp returns the ISA standard temperature, in degC, at the given
// altitude in feet. Resolve uses it at field elevation; the landing
// distance calculator (§4.9) evaluates it at pressure altitude.
func IsaTemp(altitudeFt float64) float64 { return 15 - 0.0019812*altitudeFt }

// PressureAlt converts a field elevation and QNH into pressure altitude.
func PressureAlt(elevation, qnh float64) float64 {
	return elevation + 145442.15*(1-math.Pow(qnh/1013.25, 0.190263))
}

// Resolve computes the environment parameters from the raw request fields.
// lineupDegrees must be one of 0, 90, 180.
func Resolve(elevation, qnh, oat, wind float64, lineupDegrees int, tora float64, tRefTable, tMaxTable tables.Table1D) Resolved {
	isaTemp := IsaTemp(elevation)
	pressureAlt := PressureAlt(elevation, qnh)

	lineup := LineupDistance[lineupDegrees]
	adjustedTora := tora - lineup

	headwind := math.Min(MaxHeadwind, wind)

	return Resolved{
		IsaTemp:      isaTemp,
		PressureAlt:  pressureAlt,
		TRef:         tRefTable.Lerp(elevation),
		TMax:         tMaxTable.Lerp(pressureAlt),
		TFlexMax:     isaTemp + 59,
		AdjustedTora: adjustedTora,
		Headwind:     headwind,
	}
}
