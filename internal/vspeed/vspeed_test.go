package vspeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otto-perf/takeoff-performance/internal/environment"
	"github.com/otto-perf/takeoff-performance/internal/limits"
	"github.com/otto-perf/takeoff-performance/internal/tables"
)

func loadTestTables(t *testing.T) *tables.TableSet {
	t.Helper()
	ts, err := tables.Load()
	require.NoError(t, err)
	return ts
}

func TestBranchSelectsGroundForRunwayAndVmcg(t *testing.T) {
	assert.Equal(t, tables.BranchGround, Branch(limits.FactorRunway))
	assert.Equal(t, tables.BranchGround, Branch(limits.FactorVmcg))
	assert.Equal(t, tables.BranchAirborne, Branch(limits.FactorSecondSegment))
	assert.Equal(t, tables.BranchAirborne, Branch(limits.FactorBrakeEnergy))
}

// Reconcile must always leave V1 <= Vr <= V2, across a range of raw
// kernel outputs including ones that start out of order.
func TestReconcileAlwaysOrdersV1VrV2(t *testing.T) {
	ts := loadTestTables(t)
	cases := []Speeds{
		{V1: 140, Vr: 145, V2: 150},
		{V1: 160, Vr: 150, V2: 155}, // V1 > Vr on input
	}
	for _, in := range cases {
		out, err := Reconcile(ts, 2, in, 0, 380000)
		require.Equal(t, ErrNone, err, "input %+v", in)
		assert.LessOrEqual(t, out.V1, out.Vr, "input %+v", in)
		assert.LessOrEqual(t, out.Vr, out.V2, "input %+v", in)
	}
}

// When Vr comes out above V2, Vr is pulled down to V2 rather than the
// other way around.
func TestReconcilePullsVrDownToV2WhenAboveIt(t *testing.T) {
	ts := loadTestTables(t)
	out, err := Reconcile(ts, 2, Speeds{V1: 120, Vr: 135, V2: 130}, 0, 380000)
	require.Equal(t, ErrNone, err)
	assert.Equal(t, 130.0, out.Vr)
	assert.Equal(t, 130.0, out.V2)
}

// Reconciliation floors V1/Vr/V2 at the published Vmcg/Vmca/Vmu minima.
func TestReconcileAppliesMinimumFloors(t *testing.T) {
	ts := loadTestTables(t)
	out, err := Reconcile(ts, 2, Speeds{V1: 1, Vr: 1, V2: 1}, 0, 380000)
	assert.Equal(t, ErrNone, err)
	assert.Greater(t, out.V1, 1.0)
	assert.Greater(t, out.Vr, 1.0)
	assert.Greater(t, out.V2, 1.0)
}

// Re-running reconciliation on an already-reconciled triple is a no-op.
func TestReconcileIsIdempotent(t *testing.T) {
	ts := loadTestTables(t)
	first, _ := Reconcile(ts, 2, Speeds{V1: 140, Vr: 150, V2: 160}, 0, 380000)
	second, err := Reconcile(ts, 2, first, 0, 380000)
	assert.Equal(t, ErrNone, err)
	assert.Equal(t, first, second)
}

// The 195kt tire-speed ceiling must trigger MaxTireSpeed when both V2 and Vr
// exceed it, and otherwise cap Vr against the remaining margin.
func TestReconcileEnforcesTireSpeedCeiling(t *testing.T) {
	ts := loadTestTables(t)

	_, err := Reconcile(ts, 2, Speeds{V1: 190, Vr: 200, V2: 205}, 0, 380000)
	assert.Equal(t, ErrMaxTireSpeed, err, "both Vr and V2 above 195kt must trip the tire-speed ceiling")

	out, err2 := Reconcile(ts, 2, Speeds{V1: 190, Vr: 190, V2: 198}, 0, 380000)
	assert.Equal(t, ErrNone, err2)
	assert.LessOrEqual(t, out.Vr, 195.0-(out.V2-195.0))
}

// WetAdjust must never raise V-speeds above their dry values when the wet
// adjustment tables are non-positive corrections (they are published as
// reductions in this family).
func TestWetAdjustAppliesDeltaToEachSpeed(t *testing.T) {
	ts := loadTestTables(t)
	dry := Speeds{V1: 140, Vr: 148, V2: 155}
	p := environment.Resolve(0, 1013.25, 15, 10, 90, 3500, ts.TRef, ts.TMax)

	wet := WetAdjust(ts, 2, dry, 15, p)

	// Confirm the speeds are non-zero and never above the dry values; the
	// magnitude of the published deltas is table data, not kernel logic.
	assert.NotZero(t, wet.V1)
	assert.NotZero(t, wet.Vr)
	assert.NotZero(t, wet.V2)
	assert.LessOrEqual(t, wet.V1, dry.V1)
	assert.LessOrEqual(t, wet.Vr, dry.Vr)
	assert.LessOrEqual(t, wet.V2, dry.V2)
}
