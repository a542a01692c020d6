package performance

import (
	"math"

	"github.com/otto-perf/takeoff-performance/internal/environment"
	"github.com/otto-perf/takeoff-performance/internal/envelope"
	"github.com/otto-perf/takeoff-performance/internal/flex"
	"github.com/otto-perf/takeoff-performance/internal/landing"
	"github.com/otto-perf/takeoff-performance/internal/limits"
	"github.com/otto-perf/takeoff-performance/internal/tables"
	"github.com/otto-perf/takeoff-performance/internal/vspeed"
)

// Calculator evaluates takeoff/landing performance against a single
// process-wide TableSet. It holds no mutable state and is safe for
// concurrent use from any number of goroutines.
type Calculator struct {
	tables *tables.TableSet
}

// NewCalculator builds a Calculator from the embedded table data, loading
// it (once, process-wide) on first use.
func NewCalculator() (*Calculator, error) {
	ts, err := tables.Load()
	if err != nil {
		return nil, err
	}
	return &Calculator{tables: ts}, nil
}

// factorFrom converts an internal limit factor into the public enum; the
// two types are declared with matching iota order.
func factorFrom(f limits.Factor) LimitingFactor { return LimitingFactor(f) }

// Calculate runs the full takeoff computation: environment resolution,
// the per-family limit-weight chain, MTOW selection, the flex-temperature
// search, and the V-speed kernels and reconciler.
func (c *Calculator) Calculate(in Inputs) Result {
	res := Result{Inputs: in}

	if err := validateInputData(in); err != ErrNone {
		res.Err = err
		return res
	}

	ts := c.tables
	p := environment.Resolve(in.Elevation, in.QNH, in.OAT, in.Wind, int(in.LineupAngle)*90, in.TORA, ts.TRef, ts.TMax)
	res.Parameters = Parameters{
		IsaTemp:      p.IsaTemp,
		PressureAlt:  p.PressureAlt,
		TRef:         p.TRef,
		TMax:         p.TMax,
		TFlexMax:     p.TFlexMax,
		AdjustedTora: p.AdjustedTora,
		Headwind:     p.Headwind,
	}

	if err := validateEnvironment(ts, in, p); err != ErrNone {
		res.Err = err
		return res
	}

	if in.CG != nil && !c.IsCgWithinLimits(*in.CG, in.TOW) {
		res.Err = ErrCgOutOfLimits
		return res
	}

	if err := validateAfterCg(ts, in); err != ErrNone {
		res.Err = err
		return res
	}

	conf := int(in.Conf)
	engineAntiIce := in.AntiIce == AntiIceEngine
	engineWingAntiIce := in.AntiIce == AntiIceEngineWing

	s := limits.Solve(ts, conf, p, in.OAT, in.Slope, engineWingAntiIce, in.Packs)

	res.Limits = make(map[LimitingFactor]FamilyLimit, 4)
	for f := limits.FactorRunway; f <= limits.FactorVmcg; f++ {
		fl := s.Family[f]
		res.Limits[factorFrom(f)] = FamilyLimit{
			Base:         fl.Base,
			SlopeLimit:   fl.SlopeLimit,
			AltLimit:     fl.AltLimit,
			LimitNoBleed: fl.LimitNoBleed,
			Limit:        fl.Limit,
			DeltaT:       fl.DeltaT,
			DeltaW:       fl.DeltaW,
		}
	}
	for a := limits.AnchorOAT; a <= limits.AnchorTFlexMax; a++ {
		res.GoverningFactor[a] = factorFrom(s.GoverningFactor[a])
	}

	dryMTOW, governing := limits.DryMTOW(s)

	wet := in.RunwayCondition == Wet
	contaminated := in.RunwayCondition.isContaminated()

	mtow := dryMTOW
	tooLight := false
	switch {
	case contaminated:
		_, contamMTOW, light := limits.Contaminated(ts, contaminatedCondition(in.RunwayCondition), conf, dryMTOW, p.AdjustedTora)
		mtow = contamMTOW
		tooLight = light
	case wet:
		mtow = limits.WetMTOW(ts, conf, dryMTOW, in.OAT, p.Headwind, p.AdjustedTora, p.PressureAlt)
	}

	mtow += limits.ForwardCgAdjustment(ts, conf, in.ForwardCG, governing, mtow)
	if mtow > ts.StructuralMTOW {
		mtow = ts.StructuralMTOW
	}
	res.MTOW = mtow

	switch {
	case tooLight:
		res.Err = ErrTooLight
	case mtow < in.TOW:
		res.Err = ErrTooHeavy
	}

	if !contaminated && !in.ForceToga {
		fr := flex.SearchForTOW(ts, s, conf, p, in.TOW, in.OAT, wet, engineAntiIce, engineWingAntiIce, in.Packs)
		res.HasFlex = fr.HasFlex
		res.Flex = fr.Flex
		res.FlexLimitingFactor = factorFrom(fr.Factor)
	}

	// A forced-TOGA takeoff never trusts a favorable wind to still be there
	// by brake release: its V-speeds are re-derived from one bounded re-entry
	// into Calculate with the wind pinned at the worst-case (maximum)
	// tailwind component. The MTOW and limiting-factor fields above still
	// reflect the actual wind.
	if in.ForceToga {
		worstWind := in
		worstWind.Wind = -ts.MaxTailwind
		worstWind.ForceToga = false
		inner := c.Calculate(worstWind)
		res.DryV1, res.DryVr, res.DryV2 = inner.DryV1, inner.DryVr, inner.DryV2
		res.V1, res.Vr, res.V2 = inner.V1, inner.Vr, inner.V2
		if res.Err == ErrNone {
			switch inner.Err {
			case ErrVmcgVmcaLimits, ErrMaxTireSpeed:
				res.Err = inner.Err
			}
		}
		return res
	}

	branch := vspeed.Branch(s.GoverningFactor[limits.AnchorOAT])
	dry := vspeed.Dry(ts, conf, branch, in.TOW, p, in.Slope)
	dry.V1 += limits.ForwardCgSpeedBump(ts, in.ForwardCG, governing, mtow)
	res.DryV1, res.DryVr, res.DryV2 = dry.V1, dry.Vr, dry.V2

	var spd vspeed.Speeds
	switch {
	case contaminated:
		spd = vspeed.Contaminated(ts, contaminatedCondition(in.RunwayCondition), conf, in.TOW)
	case wet:
		spd = vspeed.WetAdjust(ts, conf, dry, in.OAT, p)
	default:
		spd = dry
	}

	out, vErr := vspeed.Reconcile(ts, conf, spd, p.PressureAlt, in.TOW)
	res.V1, res.Vr, res.V2 = out.V1, out.Vr, out.V2
	if res.Err == ErrNone {
		switch vErr {
		case vspeed.ErrVmcgVmcaLimits:
			res.Err = ErrVmcgVmcaLimits
		case vspeed.ErrMaxTireSpeed:
			res.Err = ErrMaxTireSpeed
		}
	}

	return res
}

// CalculateOptimalConfiguration tries every configuration, keeps the ones
// that succeed, and returns the one with the highest flex temperature
// (ties broken by the lowest V1). If none succeed, it returns the last
// attempted configuration.
func (c *Calculator) CalculateOptimalConfiguration(in Inputs) OptimalResult {
	attempted := make(map[Configuration]Result, 3)
	var best Result
	haveBest := false
	var last Result

	for conf := Conf1; conf <= Conf3; conf++ {
		req := in
		req.Conf = conf
		r := c.Calculate(req)
		attempted[conf] = r
		last = r
		if r.Err != ErrNone {
			continue
		}
		switch {
		case !haveBest:
			best, haveBest = r, true
		case r.Flex > best.Flex:
			best = r
		case r.Flex == best.Flex && r.V1 < best.V1:
			best = r
		}
	}

	if !haveBest {
		best = last
	}
	return OptimalResult{Result: best, Attempted: attempted}
}

// IsCgWithinLimits reports whether cg (percent MAC) is inside the
// weight-indexed takeoff (MTOW) envelope at the given takeoff weight.
func (c *Calculator) IsCgWithinLimits(cg, tow float64) bool {
	ring := envelope.ToRing(c.tables.EnvelopeMTOW)
	return envelope.Contains(ring, cg, tow)
}

// GetCrosswindLimit returns the published crosswind limit, in knots, for
// the given runway condition and OAT.
func (c *Calculator) GetCrosswindLimit(cond RunwayCondition, oat float64) float64 {
	cw := c.tables.Crosswind
	switch cond {
	case Dry, Wet:
		return cw.DryWet
	case CompactedSnow:
		if oat <= cw.CompactedSnowOatThreshold {
			return cw.CompactedSnowColdOat
		}
		return cw.CompactedSnowWarmOat
	case DrySnow10mm, DrySnow100mm, WetSnow5mm, WetSnow15mm, WetSnow30mm:
		return cw.OtherSnow
	default: // Water6mm, Water13mm, Slush6mm, Slush13mm
		return cw.WaterSlush
	}
}

// CalculateLandingDistances computes the margined landing distance for
// each autobrake mode.
func (c *Calculator) CalculateLandingDistances(in LandingInputs) LandingResult {
	ts := c.tables
	flap := int(in.Flap)
	surface := landingSurface(in.RunwayCondition)
	pressureAlt := environment.PressureAlt(in.Elevation, in.QNH)
	target := landing.ApproachSpeed(ts, flap, in.WeightKg)

	actual := target
	if in.ApproachSpeed != nil {
		actual = *in.ApproachSpeed
	}
	tailwind := landing.TailwindComponent(in.HeadingDeltaRad, in.Wind)

	dist := func(mode int) float64 {
		return landing.Distance(ts, landing.Request{
			Mode:          mode,
			Flap:          flap,
			Surface:       surface,
			WeightKg:      in.WeightKg,
			ApproachSpeed: actual,
			TargetVls:     target,
			Tailwind:      tailwind,
			ReverseThrust: in.ReverseThrust,
			PressureAlt:   pressureAlt,
			Slope:         in.Slope,
			OAT:           in.OAT,
			Overweight:    in.Overweight,
			Autoland:      in.Autoland,
		})
	}

	return LandingResult{
		MaxAutobrakeDist:    dist(2),
		MediumAutobrakeDist: dist(1),
		LowAutobrakeDist:    dist(0),
	}
}

// CheckPerformanceEnvelope reports whether (cgPercentMAC, weightKg) lies
// inside every published weight/CG envelope polygon, listing by name the
// ones it falls outside.
func (c *Calculator) CheckPerformanceEnvelope(cgPercentMAC, weightKg float64) EnvelopeCheck {
	ts := c.tables
	var failing []string
	check := func(name string, poly tables.EnvelopePolygon) {
		if !envelope.Contains(envelope.ToRing(poly), cgPercentMAC, weightKg) {
			failing = append(failing, name)
		}
	}
	check("MTOW", ts.EnvelopeMTOW)
	check("MZFW", ts.EnvelopeMZFW)
	check("MLW", ts.EnvelopeMLW)
	return EnvelopeCheck{OK: len(failing) == 0, Failing: failing}
}

// CheckWeights validates a gross weight / zero-fuel weight / fuel weight
// triple against the structural limits and their arithmetic consistency.
func (c *Calculator) CheckWeights(gw, zfw, fuel float64) WeightCheck {
	ts := c.tables
	var violations []string
	if gw > ts.StructuralMTOW {
		violations = append(violations, "gross weight exceeds structural MTOW")
	}
	if gw < ts.OEW {
		violations = append(violations, "gross weight below OEW")
	}
	if fuel < 0 {
		violations = append(violations, "fuel weight is negative")
	}
	if zfw < ts.OEW {
		violations = append(violations, "zero-fuel weight below OEW")
	}
	if math.Abs(gw-(zfw+fuel)) > 1e-6 {
		violations = append(violations, "gross weight does not equal zero-fuel weight plus fuel")
	}
	return WeightCheck{OK: len(violations) == 0, Violations: violations}
}

// ComputeCgPercentMAC converts a CG position (meters from datum) into a
// percentage of the mean aerodynamic chord.
func ComputeCgPercentMAC(posM, macStartM, macLenM float64) float64 {
	return 100 * (posM - macStartM) / macLenM
}

// validateInputData applies the structural-sanity checks that require no
// table data and no environment resolution.
func validateInputData(in Inputs) Error {
	if !in.Conf.valid() || in.TORA <= 0 || in.QNH <= 0 || in.TOW <= 0 {
		return ErrInvalidData
	}
	return ErrNone
}

// validateEnvironment applies the input-validation rules that precede the
// CG check, once the environment has been resolved: StructuralMtow,
// MaxPressureAlt, MaxTemperature, Oew, in that order.
func validateEnvironment(ts *tables.TableSet, in Inputs, p environment.Resolved) Error {
	switch {
	case in.TOW > ts.StructuralMTOW:
		return ErrStructuralMtow
	case p.PressureAlt > ts.MaxPressureAlt:
		return ErrMaxPressureAlt
	case in.OAT > p.TMax:
		return ErrMaxTemperature
	case in.TOW < ts.OEW:
		return ErrOew
	default:
		return ErrNone
	}
}

// validateAfterCg applies the validation rules that come after the CG
// check: MaxTailwind, MaxSlope.
func validateAfterCg(ts *tables.TableSet, in Inputs) Error {
	switch {
	case in.Wind < -ts.MaxTailwind:
		return ErrMaxTailwind
	case math.Abs(in.Slope) > ts.MaxSlope:
		return ErrMaxSlope
	default:
		return ErrNone
	}
}

// contaminatedCondition converts a contaminated RunwayCondition into the
// internal tables package's condition enum; the two are declared with
// matching iota order starting at CompactedSnow/CondCompactedSnow.
func contaminatedCondition(c RunwayCondition) tables.ContaminatedCondition {
	return tables.ContaminatedCondition(c - CompactedSnow)
}

// landingSurface buckets a RunwayCondition into the three-tier surface
// class the landing-distance tables are published against (see DESIGN.md).
func landingSurface(c RunwayCondition) tables.Surface {
	switch c {
	case Dry:
		return tables.SurfaceDry
	case Wet:
		return tables.SurfaceWet
	default:
		return tables.SurfaceContaminated
	}
}
