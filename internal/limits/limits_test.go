package limits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otto-perf/takeoff-performance/internal/environment"
	"github.com/otto-perf/takeoff-performance/internal/tables"
)

func loadTestTables(t *testing.T) *tables.TableSet {
	t.Helper()
	ts, err := tables.Load()
	require.NoError(t, err)
	return ts
}

func benignEnv(t *testing.T, ts *tables.TableSet) environment.Resolved {
	t.Helper()
	return environment.Resolve(0, 1013.25, 15, 10, 90, 3500, ts.TRef, ts.TMax)
}

// argminAt's tie-break order (Runway < SecondSegment < BrakeEnergy <
// Vmcg) must hold even when two families land on the exact same limit
// value.
func TestArgminAtBreaksTiesByFixedFactorOrder(t *testing.T) {
	var s Solved
	for f := 0; f < 4; f++ {
		s.Family[f].Limit[AnchorOAT] = 400000
	}
	assert.Equal(t, FactorRunway, argminAt(s, AnchorOAT))

	s.Family[FactorRunway].Limit[AnchorOAT] = 500000
	assert.Equal(t, FactorSecondSegment, argminAt(s, AnchorOAT),
		"once Runway is no longer tied for the minimum, the next factor in order must win the tie")
}

// Solve's governing factor at each anchor must always be the actual argmin
// over the four families' Limit values, independent of the tie-break rule.
func TestSolveGoverningFactorIsTheArgmin(t *testing.T) {
	ts := loadTestTables(t)
	p := benignEnv(t, ts)

	s := Solve(ts, 2, p, 15, 0, false, false)
	for a := AnchorOAT; a <= AnchorTFlexMax; a++ {
		gov := s.GoverningFactor[a]
		govVal := s.Family[gov].Limit[a]
		for f := FactorRunway; f <= FactorVmcg; f++ {
			assert.GreaterOrEqual(t, s.Family[f].Limit[a], govVal,
				"anchor %v: factor %v has a lower limit than the reported governing factor %v", a, f, gov)
		}
	}
}

// DryMTOW must equal the OAT-anchor limit of whichever factor governs at
// the OAT anchor.
func TestDryMTOWMatchesOatGoverningFactor(t *testing.T) {
	ts := loadTestTables(t)
	p := benignEnv(t, ts)
	s := Solve(ts, 2, p, 15, 0, false, false)

	mtow, governing := DryMTOW(s)
	assert.Equal(t, s.GoverningFactor[AnchorOAT], governing)
	assert.Equal(t, s.Family[governing].Limit[AnchorOAT], mtow)
}

// Bleed corrections (anti-ice/packs) must only ever reduce a family's limit
// relative to the no-bleed case, never increase it.
func TestBleedCorrectionNeverIncreasesLimit(t *testing.T) {
	ts := loadTestTables(t)
	p := benignEnv(t, ts)

	noBleed := Solve(ts, 2, p, 15, 0, false, false)
	withBleed := Solve(ts, 2, p, 15, 0, true, true)

	for f := FactorRunway; f <= FactorVmcg; f++ {
		assert.LessOrEqual(t, withBleed.Family[f].Limit[AnchorOAT], noBleed.Family[f].Limit[AnchorOAT],
			"factor %v: bleed-corrected limit must not exceed the no-bleed limit", f)
	}
}

// A wet-runway reduction must never raise the MTOW above the dry value: the
// affine forms are clipped non-positive.
func TestWetMTOWNeverExceedsDryMTOW(t *testing.T) {
	ts := loadTestTables(t)
	p := benignEnv(t, ts)
	s := Solve(ts, 2, p, 15, 0, false, false)
	dry, _ := DryMTOW(s)

	wet := WetMTOW(ts, 2, dry, 15, p.Headwind, p.AdjustedTora, p.PressureAlt)
	assert.LessOrEqual(t, wet, dry)
}

// ForwardCgAdjustment is a no-op unless forwardCg is set and the OAT
// governing factor is Runway or Vmcg.
func TestForwardCgAdjustmentGatesOnFlagAndGoverningFactor(t *testing.T) {
	ts := loadTestTables(t)

	assert.Equal(t, 0.0, ForwardCgAdjustment(ts, 2, false, FactorRunway, 400000))
	assert.Equal(t, 0.0, ForwardCgAdjustment(ts, 2, true, FactorSecondSegment, 400000))
	assert.Equal(t, 0.0, ForwardCgAdjustment(ts, 2, true, FactorBrakeEnergy, 400000))

	small := ForwardCgAdjustment(ts, 2, true, FactorRunway, 300000)
	assert.Equal(t, 0.0, small, "below the coefficient's break-even weight, the adjustment clips to zero")

	large := ForwardCgAdjustment(ts, 2, true, FactorRunway, 500000)
	assert.Greater(t, large, 0.0, "above the break-even weight, the adjustment must be a positive additive bump")
}

// ForwardCgSpeedBump only activates below the published weight threshold
// and under the same gating as the weight-side adjustment.
func TestForwardCgSpeedBumpGatesOnThreshold(t *testing.T) {
	ts := loadTestTables(t)

	assert.Equal(t, 0.0, ForwardCgSpeedBump(ts, true, FactorRunway, ts.ForwardCgThreshold+1))
	assert.Equal(t, ForwardCgSpeedBumpKt, ForwardCgSpeedBump(ts, true, FactorRunway, ts.ForwardCgThreshold-1))
	assert.Equal(t, 0.0, ForwardCgSpeedBump(ts, false, FactorRunway, ts.ForwardCgThreshold-1))
	assert.Equal(t, 0.0, ForwardCgSpeedBump(ts, true, FactorSecondSegment, ts.ForwardCgThreshold-1))
}

// Contaminated must report TooLight exactly when the corrected weight falls
// below the condition's published minimum, and a higher dry
// MTOW must never turn an already-sufficient corrected weight too light.
func TestContaminatedReportsTooLightBelowMinimum(t *testing.T) {
	ts := loadTestTables(t)
	p := benignEnv(t, ts)

	// Drive the dry MTOW low enough to cross below slush_13mm's conf-3
	// minimum, then confirm a comfortably higher dry MTOW does not.
	corrected, _, tooLight := Contaminated(ts, tables.CondSlush13mm, 3, 210000, p.AdjustedTora)
	minCorrected := ts.Contaminated[tables.CondSlush13mm].MinCorrected[2]
	assert.Equal(t, corrected < minCorrected, tooLight)
	assert.True(t, tooLight, "a dry MTOW well below the published minimum, once reduced for contamination, must read too light")

	_, _, notTooLight := Contaminated(ts, tables.CondSlush13mm, 3, 600000, p.AdjustedTora)
	assert.False(t, notTooLight)
}

// EvalNoBleed must agree with Solve's own anchor values at the four fixed
// anchors it already computes.
func TestEvalNoBleedAgreesWithSolveAtFixedAnchors(t *testing.T) {
	ts := loadTestTables(t)
	p := benignEnv(t, ts)
	s := Solve(ts, 2, p, 15, 0, false, false)

	for f := FactorRunway; f <= FactorVmcg; f++ {
		for a, anchorTemp := range []float64{15, p.TRef, p.TMax, p.TFlexMax} {
			got, ok := s.EvalNoBleed(ts, 2, p, f, anchorTemp)
			require.True(t, ok)
			assert.InDelta(t, s.Family[f].LimitNoBleed[a], got, 1e-6,
				"factor %v anchor %d", f, a)
		}
	}
}
