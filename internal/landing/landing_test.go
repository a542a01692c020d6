package landing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otto-perf/takeoff-performance/internal/tables"
)

func newTestTableSet(t *testing.T) *tables.TableSet {
	t.Helper()
	ts, err := tables.Load()
	require.NoError(t, err)
	return ts
}

func TestTailwindComponent(t *testing.T) {
	assert.InDelta(t, 20.0, TailwindComponent(math.Pi, 20), 1e-9, "wind directly down the runway from behind is a pure tailwind")
	assert.InDelta(t, 0.0, TailwindComponent(0, 20), 1e-9, "wind directly down the runway from ahead has no tailwind component")
}

func TestDistanceScalesByMarginFactorWhenAllDeltasAreZero(t *testing.T) {
	ts := newTestTableSet(t)

	key := tables.AutobrakeKey{Mode: 2, Flap: 0, Surface: tables.SurfaceDry} // Max, Full, Dry
	refDistance := ts.Landing.RefDistance[key]
	refWeight := ts.Landing.RefWeightKg[key]
	target := ts.Landing.Vls[0].Lerp(refWeight / 1000)[0]

	got := Distance(ts, Request{
		Mode:          2,
		Flap:          0,
		Surface:       tables.SurfaceDry,
		WeightKg:      refWeight,
		ApproachSpeed: target,
		TargetVls:     target,
		Tailwind:      0,
		ReverseThrust: false,
		PressureAlt:   0,
		Slope:         0,
		OAT:           15, // ISA at sea level
		Overweight:    false,
		Autoland:      false,
	})

	assert.InDelta(t, refDistance*MarginFactor, got, 1e-6, "distance must scale by exactly 1.15 over the unmargined sum")
}

func TestDistanceIncreasesWithWeightAboveReference(t *testing.T) {
	ts := newTestTableSet(t)
	key := tables.AutobrakeKey{Mode: 2, Flap: 0, Surface: tables.SurfaceDry}
	refWeight := ts.Landing.RefWeightKg[key]
	target := ts.Landing.Vls[0].Lerp(refWeight / 1000)[0]

	req := Request{
		Mode: 2, Flap: 0, Surface: tables.SurfaceDry,
		ApproachSpeed: target, TargetVls: target, OAT: 15,
	}

	req.WeightKg = refWeight
	atRef := Distance(ts, req)

	req.WeightKg = refWeight + 20000
	above := Distance(ts, req)

	assert.Greater(t, above, atRef, "landing distance must increase with weight above the reference")
}

func TestDistanceShortensWithReverseThrust(t *testing.T) {
	ts := newTestTableSet(t)
	key := tables.AutobrakeKey{Mode: 2, Flap: 0, Surface: tables.SurfaceDry}
	refWeight := ts.Landing.RefWeightKg[key]
	target := ts.Landing.Vls[0].Lerp(refWeight / 1000)[0]

	req := Request{
		Mode: 2, Flap: 0, Surface: tables.SurfaceDry,
		WeightKg: refWeight, ApproachSpeed: target, TargetVls: target, OAT: 15,
	}

	withoutReverse := Distance(ts, req)
	req.ReverseThrust = true
	withReverse := Distance(ts, req)

	assert.Less(t, withReverse, withoutReverse, "reverse thrust shortens the required landing distance")
}
