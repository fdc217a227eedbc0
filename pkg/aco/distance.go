package aco

import (
	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
)

// DistanceMatrix holds the pairwise Euclidean distances between N nodes.
// It is symmetric with a zero diagonal and immutable once built.
type DistanceMatrix struct {
	n int
	d []float64 // row-major, n*n
}

// NewDistanceMatrix computes the distance matrix for points.
// It fails with INVALID_INPUT when fewer than two points are given or a
// coordinate is not finite.
//
// Complexity: O(N²) time and space.
func NewDistanceMatrix(points []geom.Point) (*DistanceMatrix, error) {
	n := len(points)
	if n < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "need at least 2 points, got %d", n)
	}
	for i, p := range points {
		if !geom.IsFinite(p) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "point %d has non-finite coordinates (%v, %v)", i, p[0], p[1])
		}
	}

	m := &DistanceMatrix{n: n, d: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist := geom.Distance(points[i], points[j])
			m.d[i*n+j] = dist
			m.d[j*n+i] = dist
		}
	}
	return m, nil
}

// Len returns the number of nodes.
func (m *DistanceMatrix) Len() int { return m.n }

// At returns the distance between nodes i and j.
func (m *DistanceMatrix) At(i, j int) float64 { return m.d[i*m.n+j] }

// Rows returns a copy of the matrix as nested slices.
func (m *DistanceMatrix) Rows() [][]float64 {
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = append([]float64(nil), m.d[i*m.n:(i+1)*m.n]...)
	}
	return rows
}

// PathLength sums the consecutive edge distances along tour. The closing
// edge from the last node back to the first is added only when closed is
// true.
func (m *DistanceMatrix) PathLength(tour Tour, closed bool) float64 {
	var total float64
	for k := 0; k+1 < len(tour); k++ {
		total += m.At(tour[k], tour[k+1])
	}
	if closed && len(tour) > 1 {
		total += m.At(tour[len(tour)-1], tour[0])
	}
	return total
}
