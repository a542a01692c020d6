// Package kernels implements the piecewise-linear correction kernels that
// adjust a base limit weight for slope, pressure altitude, temperature, and
// wind. Every function here is pure and allocation-free: it takes the
// per-configuration coefficient tuples and the environment parameters
// already resolved by the environment package and returns a subtractive
// correction in kilograms.
package kernels

import "math"

// TempCoeffs is the six-coefficient temperature kernel used by the Runway,
// SecondSegment, and Vmcg families: three-segment piecewise-linear in L and
// the temperature excess over each segment anchor.
type TempCoeffs struct {
	C0, C1, C2, C3, C4, C5 float64
}

// BrakeTempCoeffs is the simplified two-coefficient temperature kernel used
// by BrakeEnergy, which ignores L and has no above-Tmax term.
type BrakeTempCoeffs struct {
	C0, C1 float64
}

// WindCoeffs is the four-coefficient wind kernel shared by Runway,
// SecondSegment, and BrakeEnergy. A separate tuple is supplied for head and
// tail wind.
type WindCoeffs struct {
	W0, W1, W2, W3 float64
}

// VmcgWindCoeffs is Vmcg's extended wind kernel: an 8-coefficient head
// tuple and a 6-coefficient tail tuple, the extra pairs forming an
// ISA-to-Tref segment no other family carries.
type VmcgWindCoeffs struct {
	HeadW0, HeadW1, HeadW2, HeadW3, HeadW4, HeadW5, HeadW6, HeadW7 float64
	TailW0, TailW1, TailW2, TailW3, TailW4, TailW5                 float64
}

// SlopeDelta is the subtractive slope correction: 1000 * slopeCoef *
// adjustedTora * slope. With the negative tabulated slopeCoef, a downhill
// (negative) slope yields a positive delta and so reduces the allowable
// weight, while an uphill slope increases it — see DESIGN.md for the
// sign-convention decision pinned against Open Question (i).
func SlopeDelta(slopeCoef, adjustedTora, slope float64) float64 {
	return 1000 * slopeCoef * adjustedTora * slope
}

// AltitudeDelta is the subtractive pressure-altitude correction.
func AltitudeDelta(pressureAlt, a1, a2 float64) float64 {
	return 1000 * pressureAlt * (pressureAlt*a1 + a2)
}

// TemperatureDelta evaluates the three-segment temperature kernel shared by
// Runway, SecondSegment, and Vmcg. ok is false, and delta must be ignored,
// when t exceeds tFlexMax — the kernel is not defined there and the caller
// must treat the anchor as invalid rather than propagate NaN.
func TemperatureDelta(l float64, c TempCoeffs, t, isaTemp, tRef, tMax, tFlexMax float64) (delta float64, ok bool) {
	if t > tFlexMax {
		return 0, false
	}
	delta = 1000 * (l*c.C0 + c.C1) * (math.Min(t, tRef) - isaTemp)
	if t > tRef {
		delta += 1000 * (l*c.C2 + c.C3) * (math.Min(t, tMax) - tRef)
	}
	if t > tMax {
		delta += 1000 * (l*c.C4 + c.C5) * (t - tMax)
	}
	return delta, true
}

// BrakeEnergyTemperatureDelta evaluates BrakeEnergy's simplified temperature
// kernel, which ignores L and never adds an above-Tmax term.
func BrakeEnergyTemperatureDelta(c BrakeTempCoeffs, t, isaTemp, tRef, tMax, tFlexMax float64) (delta float64, ok bool) {
	if t > tFlexMax {
		return 0, false
	}
	delta = 1000 * c.C0 * (math.Min(t, tRef) - isaTemp)
	if t > tRef {
		delta += 1000 * c.C1 * (math.Min(t, tMax) - tRef)
	}
	return delta, true
}

// WindDelta evaluates the shared four-coefficient wind kernel used by
// Runway, SecondSegment, and BrakeEnergy, selecting the head or tail tuple
// by the sign of wind and zeroing the result if it comes out same-signed as
// wind (an extrapolated, unphysical sign flip at the table edges).
func WindDelta(l float64, head, tail WindCoeffs, wind, t, tRef, tMax float64) float64 {
	c := tail
	if wind >= 0 {
		c = head
	}
	delta := 1000 * (l*c.W0 + c.W1) * wind
	if t > tRef {
		delta += 1000 * c.W2 * wind * (math.Min(t, tMax) - tRef)
	}
	if t > tMax {
		delta += 1000 * c.W3 * wind * (t - tMax)
	}
	return guardSign(delta, wind)
}

// VmcgWindDelta evaluates Vmcg's extended wind kernel.
func VmcgWindDelta(l float64, c VmcgWindCoeffs, wind, t, isaTemp, tRef, tMax float64) float64 {
	var delta float64
	if wind >= 0 {
		delta = 1000 * (l*c.HeadW0 + c.HeadW1) * wind
		delta += 1000 * (l*c.HeadW2 + c.HeadW3) * wind * (math.Min(t, tRef) - isaTemp)
		if t > tRef {
			delta += 1000 * (l*c.HeadW4 + c.HeadW5) * wind * (math.Min(t, tMax) - tRef)
		}
		if t > tMax {
			delta += 1000 * (l*c.HeadW6 + c.HeadW7) * wind * (t - tMax)
		}
	} else {
		delta = 1000 * (l*c.TailW0 + c.TailW1) * wind
		delta += 1000 * (l*c.TailW2 + c.TailW3) * wind * (math.Min(t, tRef) - isaTemp)
		if t > tRef {
			delta += 1000 * (l*c.TailW4 + c.TailW5) * wind * (math.Min(t, tMax) - tRef)
		}
	}
	return guardSign(delta, wind)
}

func guardSign(delta, wind float64) float64 {
	if wind == 0 || delta == 0 {
		return delta
	}
	if sign(delta) == sign(wind) {
		return 0
	}
	return delta
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// BleedDelta is the subtractive bleed-air correction: BE kg when
// engine+wing anti-ice is running, plus BP kg when the packs are on.
func BleedDelta(engineWingAntiIce, packsOn bool, be, bp float64) float64 {
	var d float64
	if engineWingAntiIce {
		d += be
	}
	if packsOn {
		d += bp
	}
	return d
}
