package aco

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/acotour/pkg/errors"
)

func TestNewPheromoneMatrix(t *testing.T) {
	p := NewPheromoneMatrix(4)
	require.Equal(t, 4, p.Len())
	for u := 0; u < 4; u++ {
		for v := 0; v < 4; v++ {
			assert.Equal(t, InitialPheromone, p.At(u, v))
		}
	}
}

func TestEvaporateAndDepositDirectional(t *testing.T) {
	p := NewPheromoneMatrix(3)
	require.NoError(t, p.EvaporateAndDeposit(Tour{0, 1, 2}, 8, 0.5))

	want := 0.5*1 + 0.5/8
	assert.InDelta(t, want, p.At(0, 1), 1e-15)
	assert.InDelta(t, want, p.At(1, 2), 1e-15)

	// Reverse and untouched edges keep their initial value.
	assert.Equal(t, 1.0, p.At(1, 0))
	assert.Equal(t, 1.0, p.At(2, 1))
	assert.Equal(t, 1.0, p.At(0, 2))
	assert.Equal(t, 1.0, p.At(2, 0), "closing edge is not part of the open tour")
}

func TestEvaporateAndDepositSymmetric(t *testing.T) {
	p := NewPheromoneMatrix(3)
	require.NoError(t, p.EvaporateAndDepositSymmetric(Tour{0, 1, 2}, 8, 0.5))

	want := 0.5*1 + 0.5/8
	assert.InDelta(t, want, p.At(0, 1), 1e-15)
	assert.InDelta(t, want, p.At(1, 0), 1e-15)
	assert.InDelta(t, want, p.At(2, 1), 1e-15)
	assert.Equal(t, 1.0, p.At(0, 2))
}

func TestEvaporateAndDepositFullEvaporation(t *testing.T) {
	p := NewPheromoneMatrix(3)
	require.NoError(t, p.EvaporateAndDeposit(Tour{2, 0, 1}, 4, 1))
	assert.Equal(t, 0.25, p.At(2, 0))
	assert.Equal(t, 0.25, p.At(0, 1))
}

func TestEvaporateAndDepositDegenerate(t *testing.T) {
	for _, d := range []float64{0, math.NaN(), math.Inf(1)} {
		p := NewPheromoneMatrix(3)
		err := p.EvaporateAndDeposit(Tour{0, 1, 2}, d, 0.5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeDegenerateInput), "distance %v: got %v", d, err)
		assert.Equal(t, 1.0, p.At(0, 1), "failed deposit must not modify the matrix")
	}
}

func TestEvaporateAndDepositStaysPositive(t *testing.T) {
	p := NewPheromoneMatrix(5)
	tours := []Tour{{0, 1, 2, 3, 4}, {0, 4, 3, 2, 1}, {0, 2, 4, 1, 3}}
	for i := 0; i < 500; i++ {
		for _, tour := range tours {
			require.NoError(t, p.EvaporateAndDeposit(tour, 1e6, 0.9))
		}
	}
	for u := 0; u < 5; u++ {
		for v := 0; v < 5; v++ {
			assert.Greater(t, p.At(u, v), 0.0, "tau[%d][%d]", u, v)
		}
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	p := NewPheromoneMatrix(3)
	snap := p.Snapshot()
	require.NoError(t, p.EvaporateAndDeposit(Tour{0, 1, 2}, 8, 0.5))

	assert.Equal(t, 1.0, snap.At(0, 1))
	assert.NotEqual(t, 1.0, p.At(0, 1))
}
