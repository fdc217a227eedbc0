package aco

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/acotour/pkg/geom"
)

// rectangle is a 4x3 rectangle: 0=(0,0) 1=(0,3) 2=(4,0) 3=(4,3).
var rectangle = []geom.Point{{0, 0}, {0, 3}, {4, 0}, {4, 3}}

func TestBestOfferStrictImprovement(t *testing.T) {
	b := NewBest()
	assert.True(t, math.IsInf(b.Distance, 1))
	assert.Nil(t, b.Tour)

	assert.True(t, b.Offer(Tour{0, 1, 2}, 9))
	assert.False(t, b.Offer(Tour{0, 2, 1}, 9), "ties must not replace")
	assert.Equal(t, Tour{0, 1, 2}, b.Tour)

	assert.False(t, b.Offer(Tour{0, 2, 1}, 10))
	assert.True(t, b.Offer(Tour{0, 2, 1}, 8))
	assert.Equal(t, Tour{0, 2, 1}, b.Tour)
	assert.Equal(t, 8.0, b.Distance)
}

func TestBestOfferCopiesTour(t *testing.T) {
	b := NewBest()
	tour := Tour{0, 1, 2}
	b.Offer(tour, 1)
	tour[1] = 2
	assert.Equal(t, Tour{0, 1, 2}, b.Tour)
}

func TestUpdatePassTracksBest(t *testing.T) {
	dist, err := NewDistanceMatrix(triangle)
	require.NoError(t, err)
	tau := NewPheromoneMatrix(3)
	best := NewBest()

	stats, err := UpdatePass([]Tour{{0, 2, 1}, {0, 1, 2}}, dist, tau, &best, UpdateParams{EvaporationRate: 0.5})
	require.NoError(t, err)

	assert.True(t, stats.Improved)
	assert.Equal(t, 8.0, stats.IterationBest)
	assert.Equal(t, Tour{0, 1, 2}, best.Tour)
	assert.Equal(t, 8.0, best.Distance)

	stats, err = UpdatePass([]Tour{{0, 2, 1}}, dist, tau, &best, UpdateParams{EvaporationRate: 0.5})
	require.NoError(t, err)
	assert.False(t, stats.Improved)
	assert.Equal(t, 9.0, stats.IterationBest)
	assert.Equal(t, 8.0, best.Distance)
}

func TestUpdatePassOrderMatters(t *testing.T) {
	dist, err := NewDistanceMatrix(rectangle)
	require.NoError(t, err)

	a := Tour{0, 1, 2, 3} // 3 + 5 + 3 = 11
	b := Tour{0, 1, 3, 2} // 3 + 4 + 3 = 10
	rho := 0.5
	params := UpdateParams{EvaporationRate: rho}

	tauAB := NewPheromoneMatrix(4)
	bestAB := NewBest()
	_, err = UpdatePass([]Tour{a, b}, dist, tauAB, &bestAB, params)
	require.NoError(t, err)

	tauBA := NewPheromoneMatrix(4)
	bestBA := NewBest()
	_, err = UpdatePass([]Tour{b, a}, dist, tauBA, &bestBA, params)
	require.NoError(t, err)

	// Both tours traverse 0→1; the second deposit builds on the first.
	wantAB := (1-rho)*((1-rho)*1+rho/11) + rho/10
	wantBA := (1-rho)*((1-rho)*1+rho/10) + rho/11
	assert.InDelta(t, wantAB, tauAB.At(0, 1), 1e-15)
	assert.InDelta(t, wantBA, tauBA.At(0, 1), 1e-15)
	assert.NotEqual(t, tauAB.At(0, 1), tauBA.At(0, 1))

	assert.Equal(t, bestAB, bestBA)
}

func TestUpdatePassIncludeClosingEdge(t *testing.T) {
	dist, err := NewDistanceMatrix(triangle)
	require.NoError(t, err)
	tau := NewPheromoneMatrix(3)
	best := NewBest()

	_, err = UpdatePass([]Tour{{0, 1, 2}}, dist, tau, &best, UpdateParams{EvaporationRate: 0.5, IncludeClosingEdge: true})
	require.NoError(t, err)

	assert.Equal(t, 12.0, best.Distance)
	assert.InDelta(t, 0.5+0.5/12, tau.At(0, 1), 1e-15)
	assert.Equal(t, 1.0, tau.At(2, 0), "closing edge counts toward length but is not deposited")
}

func TestUpdatePassSymmetricDeposit(t *testing.T) {
	dist, err := NewDistanceMatrix(triangle)
	require.NoError(t, err)
	tau := NewPheromoneMatrix(3)
	best := NewBest()

	_, err = UpdatePass([]Tour{{0, 1, 2}}, dist, tau, &best, UpdateParams{EvaporationRate: 0.5, SymmetricDeposit: true})
	require.NoError(t, err)
	assert.Equal(t, tau.At(0, 1), tau.At(1, 0))
	assert.Equal(t, tau.At(1, 2), tau.At(2, 1))
}
