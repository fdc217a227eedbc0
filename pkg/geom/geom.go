// Package geom holds the planar point model shared by the solver, the
// coordinate parser and the renderers.
//
// Points are [orb.Point] values; distances use [planar.Distance]. The package
// also provides [FindCoincident], an R-tree backed check that catches two
// nodes sharing a coordinate before a solver run divides by their zero
// distance.
package geom

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a node coordinate in the plane.
type Point = orb.Point

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return planar.Distance(a, b)
}

// Bounds returns the axis-aligned bounding box of points.
// An empty slice yields the zero bound.
func Bounds(points []Point) orb.Bound {
	return orb.MultiPoint(points).Bound()
}

// IsFinite reports whether both coordinates of p are finite numbers.
func IsFinite(p Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) &&
		!math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}

// indexedPoint wraps a point for R-tree storage.
type indexedPoint struct {
	index int
	point Point
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (p *indexedPoint) Bounds() rtreego.Rect {
	return p.bbox
}

// FindCoincident returns the first pair i < j (in input order of j) whose
// coordinates are exactly equal. ok is false when all points are distinct.
//
// Points are inserted into a 2D R-tree one at a time; each new point queries
// a tiny box around itself and compares the hits exactly, so the check is
// O(N log N) on typical inputs instead of the O(N²) pairwise scan.
func FindCoincident(points []Point) (i, j int, ok bool) {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for idx, p := range points {
		bbox, err := pointRect(p)
		if err != nil {
			continue
		}
		for _, hit := range tree.SearchIntersect(bbox) {
			other := hit.(*indexedPoint)
			if other.point == p {
				return other.index, idx, true
			}
		}
		tree.Insert(&indexedPoint{index: idx, point: p, bbox: bbox})
	}
	return 0, 0, false
}

// pointRect returns a degenerate-safe box around p. rtreego rejects
// zero-length sides, so the box is padded relative to the coordinate scale.
func pointRect(p Point) (rtreego.Rect, error) {
	tol := 1e-9 * math.Max(1, math.Max(math.Abs(p[0]), math.Abs(p[1])))
	return rtreego.NewRect(
		rtreego.Point{p[0] - tol, p[1] - tol},
		[]float64{2 * tol, 2 * tol},
	)
}
