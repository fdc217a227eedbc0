package aco

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
)

// triangle is the 3-4-5 instance used across the package tests.
var triangle = []geom.Point{{0, 0}, {0, 3}, {4, 0}}

func TestNewDistanceMatrixTriangle(t *testing.T) {
	m, err := NewDistanceMatrix(triangle)
	require.NoError(t, err)

	want := [][]float64{
		{0, 3, 4},
		{3, 0, 5},
		{4, 5, 0},
	}
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, want, m.Rows())
}

func TestNewDistanceMatrixSymmetricZeroDiagonal(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	points := make([]geom.Point, 40)
	for i := range points {
		points[i] = geom.Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100}
	}

	m, err := NewDistanceMatrix(points)
	require.NoError(t, err)

	for i := 0; i < m.Len(); i++ {
		assert.Zero(t, m.At(i, i))
		for j := 0; j < m.Len(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			assert.GreaterOrEqual(t, m.At(i, j), 0.0)
		}
	}
}

func TestNewDistanceMatrixInvalid(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Point
	}{
		{"empty", nil},
		{"single point", []geom.Point{{1, 1}}},
		{"nan coordinate", []geom.Point{{0, 0}, {math.NaN(), 1}}},
		{"inf coordinate", []geom.Point{{0, math.Inf(1)}, {1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDistanceMatrix(tt.points)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}

func TestPathLength(t *testing.T) {
	m, err := NewDistanceMatrix(triangle)
	require.NoError(t, err)

	assert.Equal(t, 8.0, m.PathLength(Tour{0, 1, 2}, false))
	assert.Equal(t, 9.0, m.PathLength(Tour{0, 2, 1}, false))
	assert.Equal(t, 12.0, m.PathLength(Tour{0, 1, 2}, true))
	assert.Equal(t, 0.0, m.PathLength(Tour{1}, true))
}
