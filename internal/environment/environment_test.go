package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otto-perf/takeoff-performance/internal/tables"
)

func TestPressureAltEqualsElevationAtStandardQNH(t *testing.T) {
	got := PressureAlt(2000, 1013.25)
	assert.InDelta(t, 2000.0, got, 1e-6, "at QNH=1013.25, pressureAlt must equal elevation")
}

func TestIsaTempDecreasesWithAltitude(t *testing.T) {
	assert.InDelta(t, 15.0, IsaTemp(0), 1e-9)
	assert.Less(t, IsaTemp(8000), IsaTemp(0), "ISA temperature must decrease with altitude")
}

func TestResolveHeadwindClampedAtMaxHeadwind(t *testing.T) {
	tRef := tables.MustTable1D([]float64{0, 8000}, []float64{30, 22})
	tMax := tables.MustTable1D([]float64{0, 8000}, []float64{45, 37})

	r := Resolve(0, 1013.25, 15, 80, 0, 3000, tRef, tMax)
	assert.Equal(t, MaxHeadwind, r.Headwind, "headwind beyond MaxHeadwind must clamp")

	r2 := Resolve(0, 1013.25, 15, -15, 0, 3000, tRef, tMax)
	assert.Equal(t, -15.0, r2.Headwind, "a tailwind (negative wind) passes through unclamped")
}

func TestResolveAppliesLineupDistance(t *testing.T) {
	tRef := tables.MustTable1D([]float64{0, 8000}, []float64{30, 22})
	tMax := tables.MustTable1D([]float64{0, 8000}, []float64{45, 37})

	r0 := Resolve(0, 1013.25, 15, 0, 0, 3000, tRef, tMax)
	r90 := Resolve(0, 1013.25, 15, 0, 90, 3000, tRef, tMax)
	r180 := Resolve(0, 1013.25, 15, 0, 180, 3000, tRef, tMax)

	require.Equal(t, 3000.0, r0.AdjustedTora)
	assert.Equal(t, 2940.0, r90.AdjustedTora)
	assert.Equal(t, 2880.0, r180.AdjustedTora)
}

func TestResolveFlexCeilingIsIsaPlus59(t *testing.T) {
	tRef := tables.MustTable1D([]float64{0, 8000}, []float64{30, 22})
	tMax := tables.MustTable1D([]float64{0, 8000}, []float64{45, 37})

	r := Resolve(0, 1013.25, 15, 0, 0, 3000, tRef, tMax)
	assert.InDelta(t, r.IsaTemp+59, r.TFlexMax, 1e-9)
}
