package aco

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
)

func seeded(seed uint64) Options {
	opts := DefaultOptions()
	opts.Seed = seed
	return opts
}

func TestSolveTriangleScenario(t *testing.T) {
	opts := Options{
		StartNode:       0,
		NumAnts:         1,
		NumIterations:   1,
		EvaporationRate: 0.5,
		Alpha:           1,
		Beta:            1,
	}

	for i := 0; i < 20; i++ {
		res, err := Solve(context.Background(), triangle, opts)
		require.NoError(t, err)

		require.Len(t, res.Tour, 4)
		assert.Equal(t, 0, res.Tour[0])
		assert.Equal(t, 0, res.Tour[3])
		open := res.Tour[:3]
		assert.Contains(t, []string{"[0, 1, 2]", "[0, 2, 1]"}, open.String())
		assert.LessOrEqual(t, res.Distance, 9.0)
		assert.Equal(t, 1, res.Iterations)
		assert.NotZero(t, res.Seed)
	}
}

func TestSolveClosedTourIsPermutation(t *testing.T) {
	points := scatter(20, 11)
	opts := seeded(3)
	opts.StartNode = 7
	opts.NumIterations = 15

	res, err := Solve(context.Background(), points, opts)
	require.NoError(t, err)

	require.Len(t, res.Tour, 21)
	assert.Equal(t, 7, res.Tour[0])
	assert.Equal(t, 7, res.Tour[20])
	require.NoError(t, res.Tour[:20].ValidatePermutation(20, 7))

	dist, err := NewDistanceMatrix(points)
	require.NoError(t, err)
	assert.InDelta(t, dist.PathLength(res.Tour[:20], false), res.Distance, 1e-9,
		"reported distance excludes the closing edge")
}

func TestSolveDeterministicWithSeed(t *testing.T) {
	points := scatter(25, 4)
	opts := seeded(42)
	opts.NumIterations = 20

	first, err := Solve(context.Background(), points, opts)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Solve(context.Background(), points, opts)
		require.NoError(t, err)
		assert.Equal(t, first.Tour, again.Tour)
		assert.Equal(t, first.Distance, again.Distance)
		assert.Equal(t, first.History, again.History)
	}
	assert.Equal(t, uint64(42), first.Seed)
}

func TestSolveReplayUnseededRun(t *testing.T) {
	points := scatter(12, 8)
	opts := DefaultOptions()
	opts.NumIterations = 10

	res, err := Solve(context.Background(), points, opts)
	require.NoError(t, err)

	opts.Seed = res.Seed
	replay, err := Solve(context.Background(), points, opts)
	require.NoError(t, err)
	assert.Equal(t, res.Tour, replay.Tour)
	assert.Equal(t, res.Distance, replay.Distance)
}

func TestSolveMonotoneInIterations(t *testing.T) {
	points := scatter(18, 21)
	prev := 0.0
	for i, iters := range []int{1, 2, 5, 10, 30} {
		opts := seeded(99)
		opts.NumIterations = iters
		res, err := Solve(context.Background(), points, opts)
		require.NoError(t, err)

		if i > 0 {
			assert.LessOrEqual(t, res.Distance, prev, "iterations=%d", iters)
		}
		prev = res.Distance

		for k := 1; k < len(res.History); k++ {
			assert.LessOrEqual(t, res.History[k], res.History[k-1])
		}
		assert.Equal(t, res.Distance, res.History[len(res.History)-1])
	}
}

func TestSolveIncludeClosingEdge(t *testing.T) {
	points := scatter(10, 2)
	opts := seeded(5)
	opts.IncludeClosingEdge = true

	res, err := Solve(context.Background(), points, opts)
	require.NoError(t, err)

	dist, err := NewDistanceMatrix(points)
	require.NoError(t, err)
	assert.InDelta(t, dist.PathLength(res.Tour, false), res.Distance, 1e-9)
}

func TestSolveTwoPoints(t *testing.T) {
	res, err := Solve(context.Background(), []geom.Point{{0, 0}, {3, 4}}, seeded(1))
	require.NoError(t, err)
	assert.Equal(t, Tour{0, 1, 0}, res.Tour)
	assert.Equal(t, 5.0, res.Distance)
}

func TestSolveInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Point
		mutate func(*Options)
	}{
		{"zero ants", triangle, func(o *Options) { o.NumAnts = 0 }},
		{"zero iterations", triangle, func(o *Options) { o.NumIterations = 0 }},
		{"negative iterations", triangle, func(o *Options) { o.NumIterations = -1 }},
		{"zero evaporation", triangle, func(o *Options) { o.EvaporationRate = 0 }},
		{"evaporation above one", triangle, func(o *Options) { o.EvaporationRate = 1.5 }},
		{"negative alpha", triangle, func(o *Options) { o.Alpha = -1 }},
		{"negative beta", triangle, func(o *Options) { o.Beta = -0.5 }},
		{"start out of range", triangle, func(o *Options) { o.StartNode = 3 }},
		{"negative start", triangle, func(o *Options) { o.StartNode = -1 }},
		{"single point", []geom.Point{{1, 2}}, func(o *Options) {}},
		{"no points", nil, func(o *Options) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := seeded(1)
			tt.mutate(&opts)

			calls := 0
			opts.OnIteration = func(IterationStats) { calls++ }

			res, err := Solve(context.Background(), tt.points, opts)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
			assert.Zero(t, calls, "no iteration may run on invalid input")
		})
	}
}

func TestSolveCoincidentPoints(t *testing.T) {
	points := []geom.Point{{0, 0}, {5, 5}, {1, 2}, {5, 5}}
	res, err := Solve(context.Background(), points, seeded(1))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, errors.ErrCodeDegenerateInput), "got %v", err)
	assert.Contains(t, err.Error(), "points 1 and 3")
}

func TestSolveNumericOverflow(t *testing.T) {
	opts := seeded(1)
	opts.Beta = 500
	_, err := Solve(context.Background(), []geom.Point{{0, 0}, {0, 0.001}, {0.002, 0}}, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNumericOverflow), "got %v", err)
}

func TestSolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, scatter(5, 1), seeded(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCanceled), "got %v", err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveCanceledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := seeded(1)
	opts.NumIterations = 50
	seen := 0
	opts.OnIteration = func(s IterationStats) {
		seen = s.Iteration
		if s.Iteration == 3 {
			cancel()
		}
	}

	_, err := Solve(ctx, scatter(8, 1), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCanceled))
	assert.Equal(t, 3, seen)
}

func TestSolveOnIteration(t *testing.T) {
	opts := seeded(7)
	opts.NumIterations = 12

	var stats []IterationStats
	opts.OnIteration = func(s IterationStats) { stats = append(stats, s) }

	res, err := Solve(context.Background(), scatter(9, 6), opts)
	require.NoError(t, err)

	require.Len(t, stats, 12)
	for i, s := range stats {
		assert.Equal(t, i+1, s.Iteration)
		assert.Equal(t, 12, s.Total)
		assert.GreaterOrEqual(t, s.IterationBest, s.Best)
		assert.Equal(t, res.History[i], s.Best)
	}
	assert.True(t, stats[0].Improved)
}

func TestSolveCanceledWithHugeCounts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, mutate := range []func(*Options){
		func(o *Options) { o.NumIterations = math.MaxInt },
		func(o *Options) { o.NumAnts = math.MaxInt },
	} {
		opts := seeded(1)
		mutate(&opts)

		require.NotPanics(t, func() {
			res, err := Solve(ctx, triangle, opts)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, errors.ErrCodeCanceled), "got %v", err)
		})
	}
}

func TestSolveCanceledWithinIteration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := seeded(1)
	opts.NumAnts = math.MaxInt
	opts.NumIterations = 1
	opts.OnIteration = func(IterationStats) { t.Error("no iteration can complete") }

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := Solve(ctx, scatter(6, 2), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCanceled), "got %v", err)
	assert.Contains(t, err.Error(), "stopped in iteration 1")
}
