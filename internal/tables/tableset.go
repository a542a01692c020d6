package tables

// ContaminatedCondition mirrors performance.RunwayCondition's contaminated
// members; it is redeclared here (rather than importing performance) to
// keep this package free of a cycle back to the public API.
type ContaminatedCondition int

const (
	CondCompactedSnow ContaminatedCondition = iota
	CondDrySnow10mm
	CondDrySnow100mm
	CondWetSnow5mm
	CondWetSnow15mm
	CondWetSnow30mm
	CondWater6mm
	CondWater13mm
	CondSlush6mm
	CondSlush13mm
)

// EnvelopePolygon is a closed polygon of (cgPercentMAC, weightKg) vertices,
// kept here as plain float pairs; the envelope package wraps these in
// orb.Ring for the geometric point-in-polygon check.
type EnvelopePolygon [][2]float64

// TableSet is the full compiled set of process-wide immutable tables. It is
// built once (see Load) and is safe to share, read-only, across any number
// of concurrent Calculators.
type TableSet struct {
	TRef Table1D // keyed by elevation (ft)
	TMax Table1D // keyed by pressureAlt (ft)

	Runway        RunwayFamily
	SecondSegment SecondSegmentFamily
	BrakeEnergy   BrakeEnergyFamily
	Vmcg          VmcgFamily

	BleedBE float64 // kg, engine+wing anti-ice penalty
	BleedBP float64 // kg, packs-on penalty

	WetTow  [3]WetAdjustment
	WetFlex [3]WetAdjustment
	WetV1   [3]WetAdjustment
	WetVr   [3]WetAdjustment
	WetV2   [3]WetAdjustment
	Tvmcg   [3]VectorTable1D // headwind -> [a, b]; Tvmcg = a*(adjustedTora-pressureAlt/10) + b

	ForwardCg          [3][2]float64 // cg0, cg1 per conf
	ForwardCgThreshold float64       // ~473040 kg

	Contaminated map[ContaminatedCondition]ContaminatedFamily

	VSpeed       VSpeedTables
	MinSpeed     MinSpeedTables
	TireSpeedMax float64 // kt, 195

	Crosswind CrosswindTable

	Landing LandingTables

	EnvelopeMTOW EnvelopePolygon
	EnvelopeMZFW EnvelopePolygon
	EnvelopeMLW  EnvelopePolygon

	StructuralMTOW float64
	OEW            float64
	MaxPressureAlt float64
	MaxTailwind    float64
	MaxSlope       float64
}

// TvmcgAt evaluates Tvmcg for configuration conf (1-based) at the given
// headwind and L = adjustedTora - pressureAlt/10.
func (ts *TableSet) TvmcgAt(conf int, headwind, l float64) float64 {
	ab := ts.Tvmcg[confIndex(conf)].Lerp(headwind)
	return ab[0]*l + ab[1]
}
