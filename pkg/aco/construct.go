package aco

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/acotour/pkg/errors"
)

// constructor builds ant tours. It keeps scratch buffers between ants so a
// run allocates only the tours themselves.
type constructor struct {
	dist        *DistanceMatrix
	alpha, beta float64

	visited    []bool
	candidates []int
	weights    []float64
}

func newConstructor(dist *DistanceMatrix, alpha, beta float64) *constructor {
	n := dist.Len()
	return &constructor{
		dist:       dist,
		alpha:      alpha,
		beta:       beta,
		visited:    make([]bool, n),
		candidates: make([]int, 0, n),
		weights:    make([]float64, 0, n),
	}
}

// ConstructTour builds one ant tour from start, reading tau and dist only.
//
// At each step the ant standing on c weighs every unvisited node j (in
// ascending index order) with tau(c,j)^alpha * (1/d(c,j))^beta and samples
// the next node with [SampleIndex] using one draw from rng. The returned tour
// has length N, starts at start and is not closed.
//
// It fails with DEGENERATE_INPUT when an unvisited node lies at distance zero
// from c, and with NUMERIC_OVERFLOW when a weight or the weight total is not
// representable (infinite, NaN, or all weights underflow to zero).
func ConstructTour(start int, dist *DistanceMatrix, tau *PheromoneMatrix, alpha, beta float64, rng *rand.Rand) (Tour, error) {
	if err := errors.ValidateIndex("start_node", start, dist.Len()); err != nil {
		return nil, err
	}
	return newConstructor(dist, alpha, beta).build(start, tau, rng)
}

func (c *constructor) build(start int, tau *PheromoneMatrix, rng *rand.Rand) (Tour, error) {
	n := c.dist.Len()
	clear(c.visited)

	tour := make(Tour, 1, n)
	tour[0] = start
	c.visited[start] = true

	for len(tour) < n {
		current := tour[len(tour)-1]
		next, err := c.choose(current, tau, rng)
		if err != nil {
			return nil, err
		}
		tour = append(tour, next)
		c.visited[next] = true
	}
	return tour, nil
}

// choose picks the successor of current among the unvisited nodes.
func (c *constructor) choose(current int, tau *PheromoneMatrix, rng *rand.Rand) (int, error) {
	c.candidates = c.candidates[:0]
	c.weights = c.weights[:0]

	var total float64
	for j := range c.visited {
		if c.visited[j] {
			continue
		}
		d := c.dist.At(current, j)
		if d == 0 {
			return 0, errors.New(errors.ErrCodeDegenerateInput,
				"nodes %d and %d are coincident (zero distance)", current, j)
		}
		w := math.Pow(tau.At(current, j), c.alpha) * math.Pow(1/d, c.beta)
		if math.IsInf(w, 0) || math.IsNaN(w) {
			return 0, errors.New(errors.ErrCodeNumericOverflow,
				"selection weight for edge %d->%d overflows (alpha=%v, beta=%v)", current, j, c.alpha, c.beta)
		}
		c.candidates = append(c.candidates, j)
		c.weights = append(c.weights, w)
		total += w
	}

	if math.IsInf(total, 0) {
		return 0, errors.New(errors.ErrCodeNumericOverflow,
			"selection weights from node %d overflow (alpha=%v, beta=%v)", current, c.alpha, c.beta)
	}
	if total == 0 {
		return 0, errors.New(errors.ErrCodeNumericOverflow,
			"selection weights from node %d underflow to zero (alpha=%v, beta=%v)", current, c.alpha, c.beta)
	}

	return c.candidates[SampleIndex(c.weights, total, rng.Float64())], nil
}

// SampleIndex performs a cumulative-distribution draw over weights.
//
// Weights are normalised by total into probabilities p_k = w_k/total. Given
// a draw r in [0, 1), it returns the first index k whose cumulative
// probability p_0 + ... + p_k strictly exceeds r. If rounding leaves the
// final cumulative sum at or below r, the last index with a positive weight
// is returned, so a zero-weight candidate is never selected.
//
// weights must be non-empty, non-negative and sum to total > 0.
func SampleIndex(weights []float64, total, r float64) int {
	var cum float64
	last := -1
	for k, w := range weights {
		if w > 0 {
			last = k
		}
		cum += w / total
		if cum > r {
			return k
		}
	}
	if last < 0 {
		return len(weights) - 1
	}
	return last
}
