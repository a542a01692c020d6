// Package limits implements the limit-weight solver: for each of the four
// limit families, it walks the base → slope → altitude → temperature/wind →
// bleed chain at each of the four temperature anchors and selects the
// governing family per anchor.
package limits

import (
	"github.com/otto-perf/takeoff-performance/internal/environment"
	"github.com/otto-perf/takeoff-performance/internal/kernels"
	"github.com/otto-perf/takeoff-performance/internal/tables"
)

// Factor identifies a limit family. Values line up positionally with
// performance.LimitingFactor so the calculator layer can convert with a
// plain int cast.
type Factor int

const (
	FactorRunway Factor = iota
	FactorSecondSegment
	FactorBrakeEnergy
	FactorVmcg
)

// allFactors lists the four families in their fixed tie-break order.
var allFactors = [4]Factor{FactorRunway, FactorSecondSegment, FactorBrakeEnergy, FactorVmcg}

// Anchor identifies a temperature anchor. Values line up positionally with
// performance.TemperatureAnchor.
type Anchor int

const (
	AnchorOAT Anchor = iota
	AnchorTRef
	AnchorTMax
	AnchorTFlexMax
)

// Limits stores every intermediate computed for one family across all four
// anchors.
type Limits struct {
	Base       float64
	SlopeLimit float64
	AltLimit   float64

	LimitNoBleed [4]float64 // indexed by Anchor
	Limit        [4]float64
	DeltaT       [4]float64
	DeltaW       [4]float64
}

// Solved is the complete limit-weight solution for one configuration and
// environment: every family's Limits plus the governing factor per anchor.
type Solved struct {
	Family          [4]Limits // indexed by Factor
	GoverningFactor [4]Factor // indexed by Anchor
}

// brakeEnergyL is the runway-length term the wind kernel uses for
// BrakeEnergy. The family's temperature kernel has no L-dependence at all
// ("N/A" K), and no K is published for its wind kernel either, so the
// pressure-altitude subtraction is omitted and L reduces to adjustedTora
// alone — see DESIGN.md.
func brakeEnergyL(adjustedTora float64) float64 { return adjustedTora }

// familyL returns the runway-length term L each family's temperature/wind
// kernels are evaluated at: L = adjustedTora - pressureAlt/K, with K = 12,
// 5, and 1 for Runway, SecondSegment, and Vmcg; BrakeEnergy has no K.
func familyL(f Factor, adjustedTora, pressureAlt float64) float64 {
	switch f {
	case FactorRunway:
		return adjustedTora - pressureAlt/12
	case FactorSecondSegment:
		return adjustedTora - pressureAlt/5
	case FactorVmcg:
		return adjustedTora - pressureAlt
	default: // FactorBrakeEnergy
		return brakeEnergyL(adjustedTora)
	}
}

// EvalNoBleed recomputes a family's no-bleed limit-weight at an arbitrary
// temperature t, reusing the altLimit already computed by Solve (base,
// slope, and altitude corrections do not depend on t). ok is false, and the
// value must be ignored, when t exceeds tFlexMax. Used by the
// flex-temperature search (internal/flex), which scans t one degree at a
// time between the four fixed anchors Solve evaluates.
func (s Solved) EvalNoBleed(ts *tables.TableSet, conf int, p environment.Resolved, f Factor, t float64) (limitNoBleed float64, ok bool) {
	i := conf - 1
	altLimit := s.Family[f].AltLimit
	L := familyL(f, p.AdjustedTora, p.PressureAlt)

	switch f {
	case FactorRunway:
		dT, ok := kernels.TemperatureDelta(L, ts.Runway.Temperature[i], t, p.IsaTemp, p.TRef, p.TMax, p.TFlexMax)
		if !ok {
			return 0, false
		}
		dW := kernels.WindDelta(L, ts.Runway.WindHead[i], ts.Runway.WindTail[i], p.Headwind, t, p.TRef, p.TMax)
		return altLimit - dT - dW, true
	case FactorSecondSegment:
		dT, ok := kernels.TemperatureDelta(L, ts.SecondSegment.Temperature[i], t, p.IsaTemp, p.TRef, p.TMax, p.TFlexMax)
		if !ok {
			return 0, false
		}
		dW := kernels.WindDelta(L, ts.SecondSegment.WindHead[i], ts.SecondSegment.WindTail[i], p.Headwind, t, p.TRef, p.TMax)
		return altLimit - dT - dW, true
	case FactorBrakeEnergy:
		dT, ok := kernels.BrakeEnergyTemperatureDelta(ts.BrakeEnergy.Temperature[i], t, p.IsaTemp, p.TRef, p.TMax, p.TFlexMax)
		if !ok {
			return 0, false
		}
		dW := kernels.WindDelta(L, ts.BrakeEnergy.WindHead[i], ts.BrakeEnergy.WindTail[i], p.Headwind, t, p.TRef, p.TMax)
		return altLimit - dT - dW, true
	case FactorVmcg:
		dT, ok := kernels.TemperatureDelta(L, ts.Vmcg.Temperature[i], t, p.IsaTemp, p.TRef, p.TMax, p.TFlexMax)
		if !ok {
			return 0, false
		}
		dW := kernels.VmcgWindDelta(L, ts.Vmcg.Wind[i], p.Headwind, t, p.IsaTemp, p.TRef, p.TMax)
		return altLimit - dT - dW, true
	default:
		return 0, false
	}
}

// Solve computes the limit-weight chain for all four families at all four
// temperature anchors, for the given configuration (1-based) and resolved
// environment.
func Solve(ts *tables.TableSet, conf int, p environment.Resolved, oat, slope float64, engineWingAntiIce, packsOn bool) Solved {
	i := conf - 1
	anchorTemp := [4]float64{oat, p.TRef, p.TMax, p.TFlexMax}
	deltaB := kernels.BleedDelta(engineWingAntiIce, packsOn, ts.BleedBE, ts.BleedBP)

	var s Solved

	// Runway: K=12, base from table.
	{
		var l Limits
		l.Base = ts.Runway.Base[i].Lerp(p.AdjustedTora)
		l.SlopeLimit = l.Base - kernels.SlopeDelta(ts.Runway.SlopeCoef[i], p.AdjustedTora, slope)
		l.AltLimit = l.SlopeLimit - kernels.AltitudeDelta(p.PressureAlt, ts.Runway.Altitude[i][0], ts.Runway.Altitude[i][1])
		L := p.AdjustedTora - p.PressureAlt/12
		for a := 0; a < 4; a++ {
			t := anchorTemp[a]
			dT, _ := kernels.TemperatureDelta(L, ts.Runway.Temperature[i], t, p.IsaTemp, p.TRef, p.TMax, p.TFlexMax)
			dW := kernels.WindDelta(L, ts.Runway.WindHead[i], ts.Runway.WindTail[i], p.Headwind, t, p.TRef, p.TMax)
			l.DeltaT[a], l.DeltaW[a] = dT, dW
			l.LimitNoBleed[a] = l.AltLimit - dT - dW
			l.Limit[a] = l.LimitNoBleed[a] - deltaB
		}
		s.Family[FactorRunway] = l
	}

	// SecondSegment: K=5, base from polynomial.
	{
		var l Limits
		l.Base = ts.SecondSegment.BasePoly[i][0] + ts.SecondSegment.BasePoly[i][1]*p.AdjustedTora
		l.SlopeLimit = l.Base - kernels.SlopeDelta(ts.SecondSegment.SlopeCoef[i], p.AdjustedTora, slope)
		l.AltLimit = l.SlopeLimit - kernels.AltitudeDelta(p.PressureAlt, ts.SecondSegment.Altitude[i][0], ts.SecondSegment.Altitude[i][1])
		L := p.AdjustedTora - p.PressureAlt/5
		for a := 0; a < 4; a++ {
			t := anchorTemp[a]
			dT, _ := kernels.TemperatureDelta(L, ts.SecondSegment.Temperature[i], t, p.IsaTemp, p.TRef, p.TMax, p.TFlexMax)
			dW := kernels.WindDelta(L, ts.SecondSegment.WindHead[i], ts.SecondSegment.WindTail[i], p.Headwind, t, p.TRef, p.TMax)
			l.DeltaT[a], l.DeltaW[a] = dT, dW
			l.LimitNoBleed[a] = l.AltLimit - dT - dW
			l.Limit[a] = l.LimitNoBleed[a] - deltaB
		}
		s.Family[FactorSecondSegment] = l
	}

	// BrakeEnergy: constant temperature coefficients (no L), base from polynomial.
	{
		var l Limits
		l.Base = ts.BrakeEnergy.BasePoly[i][0] + ts.BrakeEnergy.BasePoly[i][1]*p.AdjustedTora
		l.SlopeLimit = l.Base - kernels.SlopeDelta(ts.BrakeEnergy.SlopeCoef[i], p.AdjustedTora, slope)
		l.AltLimit = l.SlopeLimit - kernels.AltitudeDelta(p.PressureAlt, ts.BrakeEnergy.Altitude[i][0], ts.BrakeEnergy.Altitude[i][1])
		L := brakeEnergyL(p.AdjustedTora)
		for a := 0; a < 4; a++ {
			t := anchorTemp[a]
			dT, _ := kernels.BrakeEnergyTemperatureDelta(ts.BrakeEnergy.Temperature[i], t, p.IsaTemp, p.TRef, p.TMax, p.TFlexMax)
			dW := kernels.WindDelta(L, ts.BrakeEnergy.WindHead[i], ts.BrakeEnergy.WindTail[i], p.Headwind, t, p.TRef, p.TMax)
			l.DeltaT[a], l.DeltaW[a] = dT, dW
			l.LimitNoBleed[a] = l.AltLimit - dT - dW
			l.Limit[a] = l.LimitNoBleed[a] - deltaB
		}
		s.Family[FactorBrakeEnergy] = l
	}

	// Vmcg: K=1, base from polynomial, extended 8/6-tuple wind kernel.
	{
		var l Limits
		l.Base = ts.Vmcg.BasePoly[i][0] + ts.Vmcg.BasePoly[i][1]*p.AdjustedTora
		l.SlopeLimit = l.Base - kernels.SlopeDelta(ts.Vmcg.SlopeCoef[i], p.AdjustedTora, slope)
		l.AltLimit = l.SlopeLimit - kernels.AltitudeDelta(p.PressureAlt, ts.Vmcg.Altitude[i][0], ts.Vmcg.Altitude[i][1])
		L := p.AdjustedTora - p.PressureAlt
		for a := 0; a < 4; a++ {
			t := anchorTemp[a]
			dT, _ := kernels.TemperatureDelta(L, ts.Vmcg.Temperature[i], t, p.IsaTemp, p.TRef, p.TMax, p.TFlexMax)
			dW := kernels.VmcgWindDelta(L, ts.Vmcg.Wind[i], p.Headwind, t, p.IsaTemp, p.TRef, p.TMax)
			l.DeltaT[a], l.DeltaW[a] = dT, dW
			l.LimitNoBleed[a] = l.AltLimit - dT - dW
			l.Limit[a] = l.LimitNoBleed[a] - deltaB
		}
		s.Family[FactorVmcg] = l
	}

	for a := 0; a < 4; a++ {
		s.GoverningFactor[a] = argminAt(s, Anchor(a))
	}
	return s
}

// argminAt returns the governing factor at the given anchor: the family
// with the smallest Limit, ties broken by fixed factor order.
func argminAt(s Solved, a Anchor) Factor {
	best := allFactors[0]
	bestVal := s.Family[best].Limit[a]
	for _, f := range allFactors[1:] {
		if v := s.Family[f].Limit[a]; v < bestVal {
			best, bestVal = f, v
		}
	}
	return best
}

// WetL is the runway-length term used by the wet-runway TOW/flex/V-speed
// reductions: L = adjustedTora − pressureAlt/20. Tvmcg itself uses a
// different divisor (/10) — see TvmcgL.
func WetL(adjustedTora, pressureAlt float64) float64 {
	return adjustedTora - pressureAlt/20
}

// TvmcgL is the runway-length term Tvmcg is evaluated at:
// L = adjustedTora − pressureAlt/10.
func TvmcgL(adjustedTora, pressureAlt float64) float64 {
	return adjustedTora - pressureAlt/10
}

// AboveTvmcg reports whether oat exceeds the computed Tvmcg threshold,
// selecting the branch every wet-runway TOW/flex/V-speed adjustment uses.
func AboveTvmcg(ts *tables.TableSet, conf int, oat, headwind, adjustedTora, pressureAlt float64) bool {
	return oat > ts.TvmcgAt(conf, headwind, TvmcgL(adjustedTora, pressureAlt))
}

// DryMTOW returns the dry MTOW: the OAT-anchor limit of the OAT-governing
// family.
func DryMTOW(s Solved) (mtow float64, governing Factor) {
	governing = s.GoverningFactor[AnchorOAT]
	return s.Family[governing].Limit[AnchorOAT], governing
}

// WetMTOW applies the wet-runway reduction to the dry MTOW.
func WetMTOW(ts *tables.TableSet, conf int, dryMTOW float64, oat, headwind, adjustedTora, pressureAlt float64) float64 {
	i := conf - 1
	aboveTvmcg := AboveTvmcg(ts, conf, oat, headwind, adjustedTora, pressureAlt)
	delta := ts.WetTow[i].Delta(aboveTvmcg, headwind, WetL(adjustedTora, pressureAlt))
	return dryMTOW + delta
}

// ForwardCgAdjustment returns the additive forward-CG correction, applied
// only when forwardCg is set and the OAT-governing factor is Runway or
// Vmcg.
func ForwardCgAdjustment(ts *tables.TableSet, conf int, forwardCg bool, governing Factor, mtow float64) float64 {
	if !forwardCg || (governing != FactorRunway && governing != FactorVmcg) {
		return 0
	}
	i := conf - 1
	adj := ts.ForwardCg[i][0]*mtow + ts.ForwardCg[i][1]
	if adj < 0 {
		return 0
	}
	return adj
}

// ForwardCgSpeedBumpKt is the additive V1 correction that accompanies the
// forward-CG weight adjustment below the published weight threshold. A
// forward CG shifts the nose-gear liftoff moment arm; the mitigation is
// modelled as a flat 1kt V1 bump below the threshold rather than a
// continuous function of weight — see DESIGN.md.
const ForwardCgSpeedBumpKt = 1.0

// ForwardCgSpeedBump returns the additive V1 correction that accompanies
// ForwardCgAdjustment, active under the same conditions plus the published
// weight threshold.
func ForwardCgSpeedBump(ts *tables.TableSet, forwardCg bool, governing Factor, mtow float64) float64 {
	if !forwardCg || (governing != FactorRunway && governing != FactorVmcg) {
		return 0
	}
	if mtow > ts.ForwardCgThreshold {
		return 0
	}
	return ForwardCgSpeedBumpKt
}

// Contaminated computes the contaminated-runway corrected and final MTOW.
// tooLight reports whether the corrected weight fell below
// the condition's minimum for this configuration.
func Contaminated(ts *tables.TableSet, cond tables.ContaminatedCondition, conf int, dryMTOW, adjustedTora float64) (corrected, mtow float64, tooLight bool) {
	i := conf - 1
	fam := ts.Contaminated[cond]
	corrected = dryMTOW - fam.WeightCorrection[i].Lerp(adjustedTora)
	mtow = fam.Mtow[i].Lerp(corrected)
	tooLight = corrected < fam.MinCorrected[i]
	return corrected, mtow, tooLight
}
