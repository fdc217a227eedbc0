package aco

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
)

// Result is the outcome of a solver run.
type Result struct {
	// Tour is the best tour closed back to the start node:
	// len(Tour) == N+1 and Tour[0] == Tour[N] == start.
	Tour Tour `json:"tour"`

	// Distance is the best tour distance. Unless IncludeClosingEdge was set
	// it covers the N-1 open edges only.
	Distance float64 `json:"distance"`

	// Iterations is the number of completed iterations.
	Iterations int `json:"iterations"`

	// History holds the best distance after each iteration. It is
	// non-increasing.
	History []float64 `json:"history,omitempty"`

	// Seed is the seed the run used; replaying it reproduces the result.
	Seed uint64 `json:"seed"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`
}

// IterationStats is passed to [Options.OnIteration] after each update pass.
type IterationStats struct {
	Iteration     int     // 1-based iteration number
	Total         int     // configured number of iterations
	IterationBest float64 // shortest tour within this iteration
	Best          float64 // best distance so far
	Improved      bool    // whether this iteration improved Best
}

// Solve runs the colony over points and returns the best closed tour.
//
// Parameters are validated before any iteration runs. ctx is checked before
// every iteration and before every ant; a cancelled run returns a CANCELED error wrapping
// ctx.Err().
func Solve(ctx context.Context, points []geom.Point, opts Options) (*Result, error) {
	r, err := initRun(points, opts)
	if err != nil {
		return nil, err
	}
	if err := r.iterate(ctx); err != nil {
		return nil, err
	}
	return r.finalize(), nil
}

// run holds the state of one solver invocation. It is discarded when the
// run ends.
type run struct {
	opts  Options
	dist  *DistanceMatrix
	tau   *PheromoneMatrix
	best  Best
	rng   *rand.Rand
	seed  uint64
	ants  *constructor
	batch []Tour

	history []float64
	started time.Time
}

// initRun validates inputs and allocates the run-scoped state.
func initRun(points []geom.Point, opts Options) (*run, error) {
	started := time.Now()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dist, err := NewDistanceMatrix(points)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateIndex("start_node", opts.StartNode, dist.Len()); err != nil {
		return nil, err
	}
	if i, j, ok := geom.FindCoincident(points); ok {
		return nil, errors.New(errors.ErrCodeDegenerateInput,
			"points %d and %d are coincident at (%v, %v)", i, j, points[i][0], points[i][1])
	}

	rng, seed := newRNG(opts.Seed)
	return &run{
		opts:    opts,
		dist:    dist,
		tau:     NewPheromoneMatrix(dist.Len()),
		best:    NewBest(),
		rng:     rng,
		seed:    seed,
		ants:    newConstructor(dist, opts.Alpha, opts.Beta),
		started: started,
	}, nil
}

// iterate runs NumIterations construct/update rounds.
func (r *run) iterate(ctx context.Context) error {
	params := r.opts.updateParams()

	for it := 1; it <= r.opts.NumIterations; it++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeCanceled, err, "stopped after %d of %d iterations", it-1, r.opts.NumIterations)
		}

		// All ants of the round read the same pheromone state; the update
		// pass below is the only writer.
		snapshot := r.tau.Snapshot()
		// batch grows with the work done, never with the configured count.
		r.batch = r.batch[:0]
		for k := 0; k < r.opts.NumAnts; k++ {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(errors.ErrCodeCanceled, err, "stopped in iteration %d after %d of %d ants", it, k, r.opts.NumAnts)
			}
			tour, err := r.ants.build(r.opts.StartNode, snapshot, r.rng)
			if err != nil {
				return err
			}
			r.batch = append(r.batch, tour)
		}

		stats, err := UpdatePass(r.batch, r.dist, r.tau, &r.best, params)
		if err != nil {
			return err
		}
		r.history = append(r.history, r.best.Distance)

		if r.opts.OnIteration != nil {
			r.opts.OnIteration(IterationStats{
				Iteration:     it,
				Total:         r.opts.NumIterations,
				IterationBest: stats.IterationBest,
				Best:          r.best.Distance,
				Improved:      stats.Improved,
			})
		}
	}
	return nil
}

// finalize closes the best tour back to the start node.
func (r *run) finalize() *Result {
	return &Result{
		Tour:       r.best.Tour.Closed(),
		Distance:   r.best.Distance,
		Iterations: len(r.history),
		History:    r.history,
		Seed:       r.seed,
		Elapsed:    time.Since(r.started),
	}
}
