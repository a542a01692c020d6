// Package tables implements the immutable lookup-table layer the
// performance engine is built on: scalar 1-D/2-D tables and vector tables,
// all linearly interpolated and clamped at their ends. The table set is
// constructed once, on the first Load call, from embedded YAML data (see
// data.go) and is safe for concurrent read-only use thereafter.
package tables

import (
	"fmt"
	"math"
)

// Table1D is a sorted (key, value) sequence, linearly interpolated between
// breakpoints and clamped at the ends.
type Table1D struct {
	keys   []float64
	values []float64
}

// NewTable1D builds a Table1D from parallel key/value slices. Keys must be
// strictly monotonic increasing and there must be at least two points;
// violating either is a construction-time (programming) error.
func NewTable1D(keys, values []float64) (Table1D, error) {
	if len(keys) != len(values) {
		return Table1D{}, fmt.Errorf("tables: key/value length mismatch (%d vs %d)", len(keys), len(values))
	}
	if len(keys) < 2 {
		return Table1D{}, fmt.Errorf("tables: need at least two points, got %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			return Table1D{}, fmt.Errorf("tables: keys not strictly monotonic at index %d (%v <= %v)", i, keys[i], keys[i-1])
		}
	}
	return Table1D{keys: append([]float64(nil), keys...), values: append([]float64(nil), values...)}, nil
}

// MustTable1D is NewTable1D but panics on error.
func MustTable1D(keys, values []float64) Table1D {
	t, err := NewTable1D(keys, values)
	if err != nil {
		panic(err)
	}
	return t
}

// Lerp returns the linearly-interpolated value at key, clamped at the
// table's endpoints.
func (t Table1D) Lerp(key float64) float64 {
	lo, hi, frac := bracket(t.keys, key)
	return t.values[lo]*(1-frac) + t.values[hi]*frac
}

// bracket finds the pair of breakpoint indices straddling key and the
// interpolation fraction between them, clamping at the ends.
func bracket(keys []float64, key float64) (lo, hi int, frac float64) {
	n := len(keys)
	if key <= keys[0] {
		return 0, 0, 0
	}
	if key >= keys[n-1] {
		return n - 1, n - 1, 0
	}
	for i := 0; i < n-1; i++ {
		if key >= keys[i] && key <= keys[i+1] {
			span := keys[i+1] - keys[i]
			return i, i + 1, (key - keys[i]) / span
		}
	}
	return n - 1, n - 1, 0
}

// Table2D is a scalar lookup indexed by two keys, bilinearly interpolated
// over the grid formed by the two sorted key axes. Cells missing from the
// source data are represented as NaN; NaN is never propagated. Within each
// of the two bracketing rows, a missing cell is replaced by the other
// bracketing cell of that row, and a row whose two bracketing cells are both
// missing contributes 0. Cells outside the bracketing pair are not searched,
// and no fallback to another row is made.
type Table2D struct {
	keys1 []float64
	keys2 []float64
	grid  [][]float64 // grid[i][j] corresponds to (keys1[i], keys2[j])
}

// NewTable2D builds a Table2D. grid must be len(keys1) rows of len(keys2)
// columns; both key axes must be strictly monotonic with at least two
// points.
func NewTable2D(keys1, keys2 []float64, grid [][]float64) (Table2D, error) {
	if len(keys1) < 2 || len(keys2) < 2 {
		return Table2D{}, fmt.Errorf("tables: 2D table needs at least two points per axis")
	}
	if len(grid) != len(keys1) {
		return Table2D{}, fmt.Errorf("tables: grid row count %d != len(keys1) %d", len(grid), len(keys1))
	}
	for i, row := range grid {
		if len(row) != len(keys2) {
			return Table2D{}, fmt.Errorf("tables: grid row %d has %d columns, want %d", i, len(row), len(keys2))
		}
	}
	for i := 1; i < len(keys1); i++ {
		if keys1[i] <= keys1[i-1] {
			return Table2D{}, fmt.Errorf("tables: keys1 not strictly monotonic at %d", i)
		}
	}
	for j := 1; j < len(keys2); j++ {
		if keys2[j] <= keys2[j-1] {
			return Table2D{}, fmt.Errorf("tables: keys2 not strictly monotonic at %d", j)
		}
	}
	rows := make([][]float64, len(grid))
	for i, row := range grid {
		rows[i] = append([]float64(nil), row...)
	}
	return Table2D{
		keys1: append([]float64(nil), keys1...),
		keys2: append([]float64(nil), keys2...),
		grid:  rows,
	}, nil
}

// MustTable2D is NewTable2D but panics on error.
func MustTable2D(keys1, keys2 []float64, grid [][]float64) Table2D {
	t, err := NewTable2D(keys1, keys2, grid)
	if err != nil {
		panic(err)
	}
	return t
}

// Lerp returns the bilinearly-interpolated value at (k1, k2), clamped at
// the grid's edges, handling NaN cells within each bracketing row as
// described on Table2D.
func (t Table2D) Lerp(k1, k2 float64) float64 {
	i0, i1, fi := bracket(t.keys1, k1)
	j0, j1, fj := bracket(t.keys2, k2)

	v00 := t.rowLerp(i0, j0, j1, fj)
	v10 := t.rowLerp(i1, j0, j1, fj)
	return v00*(1-fi) + v10*fi
}

// rowLerp interpolates within row i across columns j0/j1, falling back to
// whichever column is non-NaN if the other is missing.
func (t Table2D) rowLerp(i, j0, j1 int, fj float64) float64 {
	v0 := t.grid[i][j0]
	v1 := t.grid[i][j1]
	switch {
	case math.IsNaN(v0) && math.IsNaN(v1):
		return 0
	case math.IsNaN(v0):
		return v1
	case math.IsNaN(v1):
		return v0
	default:
		return v0*(1-fj) + v1*fj
	}
}

// VectorTable1D is a sorted (key, vector) sequence, interpolated
// component-wise and clamped at the ends. All vectors share a fixed
// dimension.
type VectorTable1D struct {
	keys    []float64
	vectors [][]float64
	dim     int
}

// NewVectorTable1D builds a VectorTable1D. keys must be strictly monotonic
// with at least two points; every vector must have the same length.
func NewVectorTable1D(keys []float64, vectors [][]float64) (VectorTable1D, error) {
	if len(keys) != len(vectors) {
		return VectorTable1D{}, fmt.Errorf("tables: key/vector length mismatch (%d vs %d)", len(keys), len(vectors))
	}
	if len(keys) < 2 {
		return VectorTable1D{}, fmt.Errorf("tables: need at least two points, got %d", len(keys))
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return VectorTable1D{}, fmt.Errorf("tables: vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			return VectorTable1D{}, fmt.Errorf("tables: keys not strictly monotonic at index %d", i)
		}
	}
	vecs := make([][]float64, len(vectors))
	for i, v := range vectors {
		vecs[i] = append([]float64(nil), v...)
	}
	return VectorTable1D{keys: append([]float64(nil), keys...), vectors: vecs, dim: dim}, nil
}

// MustVectorTable1D is NewVectorTable1D but panics on error.
func MustVectorTable1D(keys []float64, vectors [][]float64) VectorTable1D {
	t, err := NewVectorTable1D(keys, vectors)
	if err != nil {
		panic(err)
	}
	return t
}

// Lerp returns the component-wise interpolated vector at key, clamped at
// the ends. The returned slice is freshly allocated per call so it is safe
// to mutate and safe across concurrent callers; no scratch is shared.
func (t VectorTable1D) Lerp(key float64) []float64 {
	lo, hi, frac := bracket(t.keys, key)
	out := make([]float64, t.dim)
	for i := 0; i < t.dim; i++ {
		out[i] = t.vectors[lo][i]*(1-frac) + t.vectors[hi][i]*frac
	}
	return out
}

// Dim reports the fixed vector dimension.
func (t VectorTable1D) Dim() int { return t.dim }
