package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/geom"
	"github.com/matzehuels/acotour/pkg/observability"
)

// Solve runs the ant colony over points, reporting progress to the
// registered solver hooks and to opts.Solver.OnIteration.
func Solve(ctx context.Context, points []geom.Point, opts Options) (*aco.Result, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return nil, err
	}

	hooks := observability.Solver()
	solver := opts.Solver
	user := solver.OnIteration
	solver.OnIteration = func(s aco.IterationStats) {
		hooks.OnIteration(ctx, s.Iteration, s.Total, s.Best)
		if s.Improved {
			opts.Logger.Debug("improved tour", "iteration", s.Iteration, "distance", s.Best)
		}
		if user != nil {
			user(s)
		}
	}

	hooks.OnSolveStart(ctx, len(points), solver.NumAnts, solver.NumIterations)
	start := time.Now()
	res, err := aco.Solve(ctx, points, solver)

	distance := 0.0
	if res != nil {
		distance = res.Distance
	}
	hooks.OnSolveComplete(ctx, len(points), distance, time.Since(start), err)
	return res, err
}
