package aco

import (
	"math"

	"github.com/matzehuels/acotour/pkg/errors"
)

// InitialPheromone is the value every edge starts a run with.
const InitialPheromone = 1.0

// PheromoneMatrix stores the desirability of every directed edge u→v.
//
// A matrix is owned by exactly one solver run. It is read by the
// construction phase (through a [PheromoneMatrix.Snapshot]) and written only
// by the update pass.
type PheromoneMatrix struct {
	n   int
	tau []float64 // row-major, n*n
}

// NewPheromoneMatrix returns an n×n matrix with every entry set to
// [InitialPheromone].
func NewPheromoneMatrix(n int) *PheromoneMatrix {
	tau := make([]float64, n*n)
	for i := range tau {
		tau[i] = InitialPheromone
	}
	return &PheromoneMatrix{n: n, tau: tau}
}

// Len returns the number of nodes.
func (p *PheromoneMatrix) Len() int { return p.n }

// At returns the pheromone on the directed edge u→v.
func (p *PheromoneMatrix) At(u, v int) float64 { return p.tau[u*p.n+v] }

// Snapshot returns an independent copy of the matrix.
func (p *PheromoneMatrix) Snapshot() *PheromoneMatrix {
	return &PheromoneMatrix{n: p.n, tau: append([]float64(nil), p.tau...)}
}

// EvaporateAndDeposit updates every directed edge (u, v) that tour traverses,
// in traversal order:
//
//	tau[u][v] = (1-rho)*tau[u][v] + rho/tourDistance
//
// The reverse edge (v, u) is left untouched. It fails with DEGENERATE_INPUT
// when tourDistance is zero or not finite.
func (p *PheromoneMatrix) EvaporateAndDeposit(tour Tour, tourDistance, rho float64) error {
	return p.deposit(tour, tourDistance, rho, false)
}

// EvaporateAndDepositSymmetric behaves like [PheromoneMatrix.EvaporateAndDeposit]
// but applies the same update to the reverse edge (v, u) as well.
func (p *PheromoneMatrix) EvaporateAndDepositSymmetric(tour Tour, tourDistance, rho float64) error {
	return p.deposit(tour, tourDistance, rho, true)
}

func (p *PheromoneMatrix) deposit(tour Tour, tourDistance, rho float64, symmetric bool) error {
	if tourDistance == 0 || math.IsNaN(tourDistance) || math.IsInf(tourDistance, 0) {
		return errors.New(errors.ErrCodeDegenerateInput, "cannot deposit pheromone for tour of length %v", tourDistance)
	}

	keep := 1 - rho
	add := rho / tourDistance
	for k := 0; k+1 < len(tour); k++ {
		u, v := tour[k], tour[k+1]
		p.tau[u*p.n+v] = keep*p.tau[u*p.n+v] + add
		if symmetric {
			p.tau[v*p.n+u] = keep*p.tau[v*p.n+u] + add
		}
	}
	return nil
}
