// Package landing implements the landing-distance calculator: a
// per-autobrake-mode sum of weighted correction terms against a published
// reference distance, margined by a fixed factor.
package landing

import (
	"math"

	"github.com/otto-perf/takeoff-performance/internal/environment"
	"github.com/otto-perf/takeoff-performance/internal/tables"
)

// MarginFactor is the regulatory safety margin every landing distance is
// scaled by.
const MarginFactor = 1.15

// Request bundles one autobrake mode's landing-distance inputs in the
// plain, enum-free terms the internal packages share; the public package
// maps its own FlapLanding/RunwayCondition enums onto Flap/Surface and sets
// Mode for each autobrake mode before calling Distance.
type Request struct {
	Mode    int // 0=Low,1=Medium,2=Max
	Flap    int // 0=Full,1=Conf3
	Surface tables.Surface

	WeightKg      float64
	ApproachSpeed float64 // computed actual approach speed, kt
	TargetVls     float64 // Vls[flap](weight), kt
	Tailwind      float64 // signed knots, positive = tailwind component
	ReverseThrust bool
	PressureAlt   float64
	Slope         float64 // signed percent, negative = downhill
	OAT           float64
	Overweight    bool
	Autoland      bool
}

// TailwindComponent resolves the tail-only wind component,
// max(0, cos(pi - deltaHeading)*|wind|), from the angle between the wind
// direction and the runway heading.
func TailwindComponent(headingDeltaRad, windKt float64) float64 {
	return math.Max(0, math.Cos(math.Pi-headingDeltaRad)*math.Abs(windKt))
}

// ApproachSpeed looks up the target approach speed Vls for the given
// landing flap setting and weight, interpolated over the published
// 270-512t curve.
func ApproachSpeed(ts *tables.TableSet, flap int, weightKg float64) float64 {
	return ts.Landing.Vls[flap].Lerp(weightKg / 1000)[0]
}

// Distance computes one autobrake mode's margined landing distance.
func Distance(ts *tables.TableSet, r Request) float64 {
	key := tables.AutobrakeKey{Mode: r.Mode, Flap: r.Flap, Surface: r.Surface}
	lt := &ts.Landing

	ref := lt.RefDistance[key]
	refWeight := lt.RefWeightKg[key]

	dw := r.WeightKg - refWeight
	var deltaWeight float64
	if dw >= 0 {
		deltaWeight = lt.WeightCorrAbove[key] * dw
	} else {
		deltaWeight = lt.WeightCorrBelow[key] * -dw
	}

	deltaSpeed := math.Max(0, r.ApproachSpeed-r.TargetVls) / 5 * lt.SpeedCorrection[key]

	tailwind := math.Max(0, r.Tailwind)
	deltaWind := tailwind / 5 * lt.WindCorrection[key]

	var deltaReverse float64
	if r.ReverseThrust {
		deltaReverse = lt.ReverserCorrection[key] * 2
	}

	deltaAltitude := math.Max(0, r.PressureAlt/1000) * lt.AltitudeCorrection[key]

	deltaSlope := math.Max(0, -r.Slope) * lt.SlopeCorrection[key]

	isa := environment.IsaTemp(r.PressureAlt)
	deltaTemp := math.Max(0, r.OAT-isa) / 10 * lt.TempCorrection[key]

	var deltaOverweight float64
	if r.Overweight {
		deltaOverweight = lt.OverweightCorr[key]
	}

	var deltaAutoland float64
	if r.Autoland {
		if r.Flap == 0 {
			deltaAutoland = lt.AutolandFullCorr[key]
		} else {
			deltaAutoland = lt.AutolandConf3Corr[key]
		}
	}

	sum := deltaWeight + deltaSpeed + deltaWind + deltaReverse +
		deltaAltitude + deltaSlope + deltaTemp + deltaOverweight + deltaAutoland

	return (ref + sum) * MarginFactor
}
