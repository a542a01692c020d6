// Package envelope implements the weight/CG envelope check: even-odd
// ray-casting point-in-polygon over the published MTOW/MZFW/MLW polygons,
// represented as orb.Ring so the rest of the repository shares a real
// geometry type instead of ad hoc float pairs.
package envelope

import "github.com/paulmach/orb"

// epsilon guards the ray-casting denominator against division by zero on a
// horizontal edge.
const epsilon = 1e-9

// ToRing converts a raw polygon slice (as loaded from the table data) into
// an orb.Ring of (cgPercentMAC, weightKg) vertices.
func ToRing(points [][2]float64) orb.Ring {
	ring := make(orb.Ring, len(points))
	for i, p := range points {
		ring[i] = orb.Point{p[0], p[1]}
	}
	return ring
}

// Contains reports whether (cgPercentMAC, weightKg) lies inside the polygon
// using even-odd ray casting. The result is idempotent and invariant under
// cyclic rotation of the polygon's vertex order, since it depends only on
// the set of edges, not their starting index.
func Contains(ring orb.Ring, cg, weight float64) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > weight) != (yj > weight) {
			denom := yj - yi
			if denom == 0 {
				denom = epsilon
			}
			xIntersect := xi + (weight-yi)/denom*(xj-xi)
			if cg < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}
