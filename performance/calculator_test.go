package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator()
	require.NoError(t, err)
	return calc
}

func benignInputs() Inputs {
	return Inputs{
		TOW:             380000,
		ForwardCG:       false,
		Conf:            Conf2,
		TORA:            3500,
		Slope:           0,
		LineupAngle:     Lineup90,
		Wind:            10,
		Elevation:       0,
		QNH:             1013.25,
		OAT:             15,
		AntiIce:         AntiIceOff,
		Packs:           true,
		ForceToga:       false,
		RunwayCondition: Dry,
	}
}

// Round-trip: computeCgPercentMAC(macStart + x*macLen, macStart, macLen) == 100*x.
func TestComputeCgPercentMACRoundTrip(t *testing.T) {
	macStart, macLen := 28.5, 6.2
	for _, x := range []float64{0, 0.25, 0.5, 0.77, 1, 1.3, -0.2} {
		pos := macStart + x*macLen
		got := ComputeCgPercentMAC(pos, macStart, macLen)
		assert.InDelta(t, 100*x, got, 1e-9)
	}
}

// Published crosswind limits, including the CompactedSnow OAT split.
func TestGetCrosswindLimitBoundaryValues(t *testing.T) {
	calc := newTestCalculator(t)

	assert.Equal(t, 29.0, calc.GetCrosswindLimit(CompactedSnow, -20))
	assert.Equal(t, 25.0, calc.GetCrosswindLimit(CompactedSnow, 0))
	assert.Equal(t, 20.0, calc.GetCrosswindLimit(Water13mm, 50))
	assert.Equal(t, 20.0, calc.GetCrosswindLimit(Water13mm, -50))
	assert.Equal(t, 35.0, calc.GetCrosswindLimit(Dry, -50))
	assert.Equal(t, 35.0, calc.GetCrosswindLimit(Dry, 50))
}

// A mid-envelope point passes all three polygons; an aft-of-limits CG
// fails all three.
func TestCheckPerformanceEnvelopeSeedScenario(t *testing.T) {
	calc := newTestCalculator(t)

	inside := calc.CheckPerformanceEnvelope(31, 370000)
	assert.True(t, inside.OK)
	assert.Empty(t, inside.Failing)

	outside := calc.CheckPerformanceEnvelope(45, 370000)
	assert.False(t, outside.OK)
	assert.ElementsMatch(t, []string{"MTOW", "MZFW", "MLW"}, outside.Failing)
}

func TestIsCgWithinLimitsMatchesTakeoffEnvelope(t *testing.T) {
	calc := newTestCalculator(t)

	assert.True(t, calc.IsCgWithinLimits(31, 370000))
	assert.False(t, calc.IsCgWithinLimits(45, 370000))
}

func TestCheckWeightsFlagsInconsistency(t *testing.T) {
	calc := newTestCalculator(t)

	ok := calc.CheckWeights(330000, 280000, 50000)
	assert.True(t, ok.OK)
	assert.Empty(t, ok.Violations)

	inconsistent := calc.CheckWeights(300000, 250000, 40000)
	assert.False(t, inconsistent.OK)
	assert.Contains(t, inconsistent.Violations, "gross weight does not equal zero-fuel weight plus fuel")

	tooHeavy := calc.CheckWeights(600000, 550000, 50000)
	assert.False(t, tooHeavy.OK)
	assert.Contains(t, tooHeavy.Violations, "gross weight exceeds structural MTOW")

	negativeFuel := calc.CheckWeights(260000, 280000, -20000)
	assert.False(t, negativeFuel.OK)
	assert.Contains(t, negativeFuel.Violations, "fuel weight is negative")
}

// At standard QNH the pressure altitude must equal the field elevation.
func TestCalculateResolvesPressureAltAtStandardQNH(t *testing.T) {
	calc := newTestCalculator(t)
	in := benignInputs()
	in.QNH = 1013.25
	in.Elevation = 1500

	res := calc.Calculate(in)
	assert.InDelta(t, 1500.0, res.Parameters.PressureAlt, 1e-6)
}

// A benign dry-runway takeoff succeeds with a usable flex temperature and
// ordered V-speeds.
func TestCalculateSeedScenarioDryBenign(t *testing.T) {
	calc := newTestCalculator(t)
	in := benignInputs()
	cg := 32.0
	in.CG = &cg

	res := calc.Calculate(in)

	require.Equal(t, ErrNone, res.Err)
	assert.GreaterOrEqual(t, res.MTOW, in.TOW)
	assert.True(t, res.HasFlex)
	assert.Greater(t, res.Flex, 15.0)
	assert.GreaterOrEqual(t, res.V2, 150.0)
	assert.LessOrEqual(t, res.V1, res.Vr)
	assert.LessOrEqual(t, res.Vr, res.V2)
}

// A heavy aircraft on a very short runway is rejected as too heavy.
func TestCalculateSeedScenarioTooHeavy(t *testing.T) {
	calc := newTestCalculator(t)
	in := benignInputs()
	in.TOW = 512000
	in.TORA = 1200

	res := calc.Calculate(in)

	assert.Equal(t, ErrTooHeavy, res.Err)
	assert.Less(t, res.MTOW, in.TOW)
}

// A cold, short, high-elevation field is control-limited and offers no
// flex.
func TestCalculateSeedScenarioVmcgLimitedColdShortField(t *testing.T) {
	calc := newTestCalculator(t)
	in := Inputs{
		TOW:             320000,
		Conf:            Conf1,
		TORA:            1800,
		Slope:           0,
		LineupAngle:     Lineup0,
		Wind:            0,
		Elevation:       4000,
		QNH:             1013,
		OAT:             -20,
		RunwayCondition: Dry,
	}

	res := calc.Calculate(in)

	require.Equal(t, ErrNone, res.Err)
	oatGoverning := res.GoverningFactor[AnchorOAT]
	assert.True(t, oatGoverning == Vmcg || oatGoverning == Runway,
		"a cold short field must be governed by Vmcg or Runway, got %v", oatGoverning)
	assert.False(t, res.HasFlex, "flex requires an assumed temperature above OAT; none should be found here")
}

// Deep slush demands a corrected weight the dry MTOW cannot supply.
func TestCalculateSeedScenarioContaminatedTooLight(t *testing.T) {
	calc := newTestCalculator(t)
	in := Inputs{
		TOW:             305000,
		Conf:            Conf3,
		TORA:            3500,
		Slope:           0,
		LineupAngle:     Lineup0,
		Wind:            0,
		Elevation:       0,
		QNH:             1013,
		OAT:             10,
		RunwayCondition: Slush13mm,
	}

	res := calc.Calculate(in)

	assert.Equal(t, ErrTooLight, res.Err)
}

// Forcing TOGA reproduces the V-speeds of an equivalent
// forceToga=false call whose wind is set to the maximum tailwind (-15 kt).
func TestCalculateSeedScenarioForceToga(t *testing.T) {
	calc := newTestCalculator(t)

	toga := Inputs{
		TOW: 400000, Conf: Conf2, TORA: 3000, Wind: 20,
		QNH: 1013.25, OAT: 15, ForceToga: true, RunwayCondition: Dry,
	}
	equivalent := toga
	equivalent.Wind = -15
	equivalent.ForceToga = false

	resToga := calc.Calculate(toga)
	resEquivalent := calc.Calculate(equivalent)

	require.Equal(t, ErrNone, resToga.Err)
	require.Equal(t, ErrNone, resEquivalent.Err)
	assert.Equal(t, resEquivalent.V1, resToga.V1)
	assert.Equal(t, resEquivalent.Vr, resToga.Vr)
	assert.Equal(t, resEquivalent.V2, resToga.V2)
	assert.False(t, resToga.HasFlex, "a forced TOGA takeoff never runs the flex search")
}

// CalculateOptimalConfiguration picks the highest flex, ties broken by
// lowest V1.
func TestCalculateOptimalConfigurationPicksHighestFlex(t *testing.T) {
	calc := newTestCalculator(t)
	in := Inputs{
		TOW: 420000, TORA: 3000, OAT: 25, QNH: 1013.25,
		Elevation: 0, Wind: 0, Slope: 0, RunwayCondition: Dry,
	}

	out := calc.CalculateOptimalConfiguration(in)

	for conf, attempted := range out.Attempted {
		if attempted.Err != ErrNone {
			continue
		}
		if attempted.Flex > out.Result.Flex {
			t.Fatalf("conf %v has a higher flex (%v) than the chosen result (%v)", conf, attempted.Flex, out.Result.Flex)
		}
		if attempted.Flex == out.Result.Flex {
			assert.GreaterOrEqual(t, attempted.V1, out.Result.V1,
				"on a flex tie, the chosen result must have the lowest V1")
		}
	}
}

// With every correction delta zeroed, the landing distance must be exactly
// the reference distance times the safety margin. Leaving ApproachSpeed nil
// makes the actual approach speed equal the computed Vls target.
func TestCalculateLandingDistancesSeedScenario(t *testing.T) {
	calc := newTestCalculator(t)
	in := LandingInputs{
		WeightKg:        350000,
		Flap:            FlapFull,
		RunwayCondition: Dry,
		HeadingDeltaRad: 0,
		Wind:            0,
		Elevation:       0,
		QNH:             1013.25,
		OAT:             15,
		Slope:           0,
		ReverseThrust:   false,
		Overweight:      false,
		Autoland:        false,
	}

	res := calc.CalculateLandingDistances(in)
	assert.InDelta(t, 1450*1.15, res.MaxAutobrakeDist, 1e-6)
}

// A 2000m sea-level runway at standard conditions must still carry 400t
// in Conf2.
func TestCalculateBoundaryShortRunwayStandardDay(t *testing.T) {
	calc := newTestCalculator(t)
	in := Inputs{
		TOW:             400000,
		Conf:            Conf2,
		TORA:            2000,
		LineupAngle:     Lineup0,
		QNH:             1013.25,
		OAT:             15,
		RunwayCondition: Dry,
	}

	res := calc.Calculate(in)

	require.Equal(t, ErrNone, res.Err)
	assert.GreaterOrEqual(t, res.MTOW, in.TOW)
	assert.LessOrEqual(t, res.V1, res.Vr)
	assert.LessOrEqual(t, res.Vr, res.V2)
}

// Open Question (i) pinned by scenario: with the tabulated coefficients, a
// downhill (negative) slope must yield a lower MTOW than level, and an
// uphill slope a higher one.
func TestMTOWSlopeSignConvention(t *testing.T) {
	calc := newTestCalculator(t)

	level := benignInputs()
	downhill := benignInputs()
	downhill.Slope = -1
	uphill := benignInputs()
	uphill.Slope = 1

	resLevel := calc.Calculate(level)
	resDownhill := calc.Calculate(downhill)
	resUphill := calc.Calculate(uphill)

	require.Equal(t, ErrNone, resLevel.Err)
	require.Equal(t, ErrNone, resDownhill.Err)
	require.Equal(t, ErrNone, resUphill.Err)
	assert.Less(t, resDownhill.MTOW, resLevel.MTOW, "a downhill runway must reduce the allowable takeoff weight")
	assert.Greater(t, resUphill.MTOW, resLevel.MTOW, "an uphill runway must increase the allowable takeoff weight")
}

// Increasing OAT below tFlexMax never increases MTOW.
func TestMTOWMonotonicInOat(t *testing.T) {
	calc := newTestCalculator(t)
	cool := benignInputs()
	cool.OAT = 15
	warm := benignInputs()
	warm.OAT = 32

	resCool := calc.Calculate(cool)
	resWarm := calc.Calculate(warm)

	require.Equal(t, ErrNone, resCool.Err)
	require.Equal(t, ErrNone, resWarm.Err)
	assert.LessOrEqual(t, resWarm.MTOW, resCool.MTOW)
}

// Increasing headwind never decreases MTOW, and increasing tailwind never
// increases it.
func TestMTOWMonotonicInWind(t *testing.T) {
	calc := newTestCalculator(t)

	at := func(wind float64) float64 {
		in := benignInputs()
		in.Wind = wind
		res := calc.Calculate(in)
		require.Equal(t, ErrNone, res.Err, "wind %v", wind)
		return res.MTOW
	}

	assert.GreaterOrEqual(t, at(20), at(5), "more headwind must not decrease MTOW")
	assert.LessOrEqual(t, at(-10), at(0), "more tailwind must not increase MTOW")
}

// Increasing TORA never decreases MTOW.
func TestMTOWMonotonicInTora(t *testing.T) {
	calc := newTestCalculator(t)
	short := benignInputs()
	short.TORA = 2500
	long := benignInputs()
	long.TORA = 4500

	resShort := calc.Calculate(short)
	resLong := calc.Calculate(long)

	require.Equal(t, ErrNone, resShort.Err)
	require.Equal(t, ErrNone, resLong.Err)
	assert.GreaterOrEqual(t, resLong.MTOW, resShort.MTOW)
}

// MTOW stays between OEW and the structural ceiling whenever the
// calculation succeeds.
func TestMTOWWithinStructuralBounds(t *testing.T) {
	calc := newTestCalculator(t)
	res := calc.Calculate(benignInputs())

	require.Equal(t, ErrNone, res.Err)
	assert.GreaterOrEqual(t, res.MTOW, 275000.0)
	assert.LessOrEqual(t, res.MTOW, 575000.0)
}

// Rerunning the same calculation must reproduce identical speeds.
func TestCalculateReproducesIdenticalSpeeds(t *testing.T) {
	calc := newTestCalculator(t)
	res := calc.Calculate(benignInputs())
	require.Equal(t, ErrNone, res.Err)

	res2 := calc.Calculate(benignInputs())
	assert.Equal(t, res.V1, res2.V1)
	assert.Equal(t, res.Vr, res2.Vr)
	assert.Equal(t, res.V2, res2.V2)
}

func TestCalculateRejectsInvalidData(t *testing.T) {
	calc := newTestCalculator(t)
	in := benignInputs()
	in.TOW = 0

	res := calc.Calculate(in)
	assert.Equal(t, ErrInvalidData, res.Err)
}

func TestCalculateRejectsBelowOew(t *testing.T) {
	calc := newTestCalculator(t)
	in := benignInputs()
	in.TOW = 100000

	res := calc.Calculate(in)
	assert.Equal(t, ErrOew, res.Err)
}

func TestCalculateRejectsAboveStructuralMtow(t *testing.T) {
	calc := newTestCalculator(t)
	in := benignInputs()
	in.TOW = 600000

	res := calc.Calculate(in)
	assert.Equal(t, ErrStructuralMtow, res.Err)
}
