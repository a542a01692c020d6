package tables

import "github.com/otto-perf/takeoff-performance/internal/kernels"

// confIndex converts a 1-based configuration (1, 2, 3) into the 0-based
// array index the family tables are stored under.
func confIndex(conf int) int { return conf - 1 }

// RunwayFamily holds the Runway limit family's per-configuration tables
// and coefficients. Runway is the one family whose base comes from a table
// rather than a polynomial.
type RunwayFamily struct {
	Base        [3]Table1D // keyed by adjustedTora
	SlopeCoef   [3]float64
	Altitude    [3][2]float64 // a1, a2
	Temperature [3]kernels.TempCoeffs
	WindHead    [3]kernels.WindCoeffs
	WindTail    [3]kernels.WindCoeffs
}

// SecondSegmentFamily holds the SecondSegment limit family's tables.
type SecondSegmentFamily struct {
	BasePoly    [3][2]float64 // b0, b1 affine in adjustedTora
	SlopeCoef   [3]float64
	Altitude    [3][2]float64
	Temperature [3]kernels.TempCoeffs
	WindHead    [3]kernels.WindCoeffs
	WindTail    [3]kernels.WindCoeffs
}

// BrakeEnergyFamily holds the BrakeEnergy limit family's tables. Its
// temperature kernel is the simplified two-coefficient form.
type BrakeEnergyFamily struct {
	BasePoly    [3][2]float64
	SlopeCoef   [3]float64
	Altitude    [3][2]float64
	Temperature [3]kernels.BrakeTempCoeffs
	WindHead    [3]kernels.WindCoeffs
	WindTail    [3]kernels.WindCoeffs
}

// VmcgFamily holds the Vmcg limit family's tables. Its wind kernel is the
// extended 8/6-coefficient form.
type VmcgFamily struct {
	BasePoly    [3][2]float64
	SlopeCoef   [3]float64
	Altitude    [3][2]float64
	Temperature [3]kernels.TempCoeffs
	Wind        [3]kernels.VmcgWindCoeffs
}

// AffinePair is a headwind-indexed vector table whose 4-vector holds two
// affine forms (m1, b1, m2, b2) in L, used by the wet-runway TOW, flex and
// V1/Vr/V2 adjustments.
type AffinePair struct {
	table VectorTable1D
}

// evaluate returns max(m1*l+b1, m2*l+b2) with (m1,b1,m2,b2) interpolated
// from the table at headwind.
func (a AffinePair) evaluate(headwind, l float64) float64 {
	c := a.table.Lerp(headwind)
	v1 := c[0]*l + c[1]
	v2 := c[2]*l + c[3]
	if v2 > v1 {
		return v2
	}
	return v1
}

// WetAdjustment bundles the above-Tvmcg and at-or-below-Tvmcg branches of a
// wet-runway reduction (TOW, flex, V1, Vr or V2), each an AffinePair.
type WetAdjustment struct {
	Above     AffinePair
	AtOrBelow AffinePair
}

// Delta evaluates the wet-runway reduction for the branch selected by
// aboveTvmcg: the non-positive-clipped max of that branch's two affine
// forms in L.
func (w WetAdjustment) Delta(aboveTvmcg bool, headwind, l float64) float64 {
	branch := w.AtOrBelow
	if aboveTvmcg {
		branch = w.Above
	}
	v := branch.evaluate(headwind, l)
	if v > 0 {
		return 0
	}
	return v
}

// ContaminatedFamily holds the per-condition, per-configuration tables used
// by the contaminated-runway MTOW and V-speed paths.
type ContaminatedFamily struct {
	WeightCorrection [3]Table1D       // keyed by adjustedTora
	Mtow             [3]Table1D       // keyed by corrected weight
	MinCorrected     [3]float64       // kg
	VSpeeds          [3]VectorTable1D // keyed by TOW, vector [V1, Vr, V2]
}

// SpeedBranch selects which pair of governing families a V-speed kernel was
// built against: the ground-limited branch (Runway/Vmcg governing) or the
// airborne-limited branch (SecondSegment/BrakeEnergy governing).
type SpeedBranch int

const (
	BranchGround SpeedBranch = iota
	BranchAirborne
)

// VSpeedCorrections is the runway/altitude/slope/wind correction shared by
// V1, Vr, and V2 for a given branch and configuration; only the base
// speed-vs-weight curve differs per speed.
type VSpeedCorrections struct {
	Runway    Table1D // keyed by adjustedTora
	Altitude  Table1D // keyed by pressureAlt
	SlopeCoef float64
	Wind      Table1D // keyed by wind
}

func (c VSpeedCorrections) sum(adjustedTora, pressureAlt, slope, wind float64) float64 {
	return c.Runway.Lerp(adjustedTora) + c.Altitude.Lerp(pressureAlt) + c.SlopeCoef*slope + c.Wind.Lerp(wind)
}

// VSpeedTables holds the eighteen V-speed kernel instances (3 speeds x 2
// branches x 3 configurations), the base curves keyed individually per
// speed and the corrections shared per branch/configuration.
type VSpeedTables struct {
	Corrections [2][3]VSpeedCorrections // [branch][confIndex]
	BaseV1      [2][3]Table1D           // [branch][confIndex], keyed by TOW
	BaseVr      [2][3]Table1D
	BaseV2      [2][3]Table1D
}

// V1At evaluates the dry V1 kernel for the given branch/configuration/state.
func (t VSpeedTables) V1At(branch SpeedBranch, conf int, tow, adjustedTora, pressureAlt, slope, wind float64) float64 {
	i := confIndex(conf)
	return t.BaseV1[branch][i].Lerp(tow) + t.Corrections[branch][i].sum(adjustedTora, pressureAlt, slope, wind)
}

// VrAt evaluates the dry Vr kernel.
func (t VSpeedTables) VrAt(branch SpeedBranch, conf int, tow, adjustedTora, pressureAlt, slope, wind float64) float64 {
	i := confIndex(conf)
	return t.BaseVr[branch][i].Lerp(tow) + t.Corrections[branch][i].sum(adjustedTora, pressureAlt, slope, wind)
}

// V2At evaluates the dry V2 kernel.
func (t VSpeedTables) V2At(branch SpeedBranch, conf int, tow, adjustedTora, pressureAlt, slope, wind float64) float64 {
	i := confIndex(conf)
	return t.BaseV2[branch][i].Lerp(tow) + t.Corrections[branch][i].sum(adjustedTora, pressureAlt, slope, wind)
}

// MinSpeedTables holds the minimum-control-speed floors used by the
// reconciler.
type MinSpeedTables struct {
	MinV1Vmc Table1D    // keyed by pressureAlt
	MinVrVmc Table1D    // keyed by pressureAlt
	MinV2Vmc [3]Table1D // keyed by pressureAlt, per conf
	MinV2Vmu [3]Table2D // keyed by (pressureAlt, tow), per conf
}

// CrosswindTable holds the per-runway-condition crosswind limit rule.
type CrosswindTable struct {
	CompactedSnowColdOat      float64 // limit when OAT <= threshold
	CompactedSnowWarmOat      float64
	CompactedSnowOatThreshold float64
	OtherSnow                 float64
	WaterSlush                float64
	DryWet                    float64
}

// LandingTables holds the per-autobrake-mode, per-flap landing distance
// correction coefficients and the Vls approach-speed table.
type LandingTables struct {
	RefDistance        map[AutobrakeKey]float64
	WeightCorrAbove    map[AutobrakeKey]float64 // per kg above reference weight
	WeightCorrBelow    map[AutobrakeKey]float64
	RefWeightKg        map[AutobrakeKey]float64
	SpeedCorrection    map[AutobrakeKey]float64
	WindCorrection     map[AutobrakeKey]float64
	ReverserCorrection map[AutobrakeKey]float64
	AltitudeCorrection map[AutobrakeKey]float64
	SlopeCorrection    map[AutobrakeKey]float64
	TempCorrection     map[AutobrakeKey]float64
	OverweightCorr     map[AutobrakeKey]float64
	AutolandFullCorr   map[AutobrakeKey]float64
	AutolandConf3Corr  map[AutobrakeKey]float64

	Vls [2]VectorTable1D // [FlapFull, FlapConf3], keyed by weight in tonnes, vector dim 1
}

// Surface buckets the twelve runway conditions into the three coarse
// classes the published landing-distance tables vary over: Dry, Wet, and
// Contaminated (everything snow, water, or slush).
type Surface int

const (
	SurfaceDry Surface = iota
	SurfaceWet
	SurfaceContaminated
)

// AutobrakeKey triples an autobrake mode, a landing flap setting, and a
// runway-surface bucket, since every landing coefficient is published per
// combination.
type AutobrakeKey struct {
	Mode    int // 0=Low,1=Medium,2=Max, matching performance.AutobrakeMode
	Flap    int // 0=Full,1=Conf3, matching performance.FlapLanding
	Surface Surface
}
