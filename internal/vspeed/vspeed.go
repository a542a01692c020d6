// Package vspeed implements the V-speed kernels and reconciler: dry
// V1/Vr/V2 from the branch-selected kernels, the wet-runway adjustment, the
// contaminated-runway direct lookup, and the post-kernel reconciliation
// against Vmcg/Vmca/Vmu floors and the tire-speed ceiling.
package vspeed

import (
	"math"

	"github.com/otto-perf/takeoff-performance/internal/environment"
	"github.com/otto-perf/takeoff-performance/internal/limits"
	"github.com/otto-perf/takeoff-performance/internal/tables"
)

// Speeds bundles V1, Vr, and V2 in knots calibrated airspeed.
type Speeds struct {
	V1, Vr, V2 float64
}

// Branch selects the ground- or airborne-limited V-speed kernel instance
// for the given OAT-anchor governing factor.
func Branch(governing limits.Factor) tables.SpeedBranch {
	if governing == limits.FactorRunway || governing == limits.FactorVmcg {
		return tables.BranchGround
	}
	return tables.BranchAirborne
}

// Dry evaluates the dry V1/Vr/V2 kernels for the given branch, configuration,
// and takeoff weight.
func Dry(ts *tables.TableSet, conf int, branch tables.SpeedBranch, tow float64, p environment.Resolved, slope float64) Speeds {
	return Speeds{
		V1: ts.VSpeed.V1At(branch, conf, tow, p.AdjustedTora, p.PressureAlt, slope, p.Headwind),
		Vr: ts.VSpeed.VrAt(branch, conf, tow, p.AdjustedTora, p.PressureAlt, slope, p.Headwind),
		V2: ts.VSpeed.V2At(branch, conf, tow, p.AdjustedTora, p.PressureAlt, slope, p.Headwind),
	}
}

// WetAdjust applies the wet-runway V1/Vr/V2 reductions, selecting the
// above/at-or-below-Tvmcg branch per speed.
func WetAdjust(ts *tables.TableSet, conf int, dry Speeds, oat float64, p environment.Resolved) Speeds {
	i := conf - 1
	aboveTvmcg := limits.AboveTvmcg(ts, conf, oat, p.Headwind, p.AdjustedTora, p.PressureAlt)
	l := limits.WetL(p.AdjustedTora, p.PressureAlt)
	return Speeds{
		V1: dry.V1 + ts.WetV1[i].Delta(aboveTvmcg, p.Headwind, l),
		Vr: dry.Vr + ts.WetVr[i].Delta(aboveTvmcg, p.Headwind, l),
		V2: dry.V2 + ts.WetV2[i].Delta(aboveTvmcg, p.Headwind, l),
	}
}

// Contaminated reads the V-speed 3-vector directly from the per-condition,
// per-configuration table, indexed by takeoff weight.
func Contaminated(ts *tables.TableSet, cond tables.ContaminatedCondition, conf int, tow float64) Speeds {
	v := ts.Contaminated[cond].VSpeeds[conf-1].Lerp(tow)
	return Speeds{V1: v[0], Vr: v[1], V2: v[2]}
}

// Reconcile applies the post-kernel reconciliation rules:
// round-to-integer floors from Vmcg/Vmca/Vmu, V1<=Vr<=V2 ordering, and the
// 195kt tire-speed ceiling on V2. err is ErrVmcgVmcaLimits or
// ErrMaxTireSpeed (zero value otherwise) when a floor or ceiling forces an
// inconsistent ordering.
func Reconcile(ts *tables.TableSet, conf int, s Speeds, pressureAlt, tow float64) (out Speeds, err Error) {
	i := conf - 1
	minV1 := math.Ceil(ts.MinSpeed.MinV1Vmc.Lerp(pressureAlt))
	minVr := math.Ceil(ts.MinSpeed.MinVrVmc.Lerp(pressureAlt))
	minV2 := math.Ceil(math.Max(
		ts.MinSpeed.MinV2Vmc[i].Lerp(pressureAlt),
		ts.MinSpeed.MinV2Vmu[i].Lerp(pressureAlt, tow),
	))

	out = Speeds{
		V1: math.Max(math.Round(s.V1), minV1),
		Vr: math.Max(math.Round(s.Vr), minVr),
		V2: math.Max(math.Round(s.V2), minV2),
	}

	if out.Vr > out.V2 {
		out.Vr = out.V2
		if out.Vr < minVr {
			return out, ErrVmcgVmcaLimits
		}
	}

	tireMax := ts.TireSpeedMax
	if out.V2 > tireMax && out.Vr > tireMax {
		return out, ErrMaxTireSpeed
	}
	if vrCeil := tireMax - (out.V2 - tireMax); out.V2 > tireMax && out.Vr > vrCeil {
		out.Vr = vrCeil
	}

	if out.V1 > out.Vr {
		out.V1 = out.Vr
		if out.V1 < minV1 {
			return out, ErrVmcgVmcaLimits
		}
	}

	return out, ErrNone
}

// Error is the reconciler's own small error enum; the caller (performance
// package) maps it onto the public Error type.
type Error int

const (
	ErrNone Error = iota
	ErrVmcgVmcaLimits
	ErrMaxTireSpeed
)
