package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/cache"
	"github.com/matzehuels/acotour/pkg/geom"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// SolveTTL is the lifetime of cached solver results.
	// Zero selects cache.TTLSolve.
	SolveTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.Instrument(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	points, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Points = points
	result.InputHash = HashPoints(points)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = len(points)

	r.Logger.Info("read coordinates",
		"nodes", len(points),
		"duration", result.Stats.ParseTime)

	// Stage 2: Solve
	solveStart := time.Now()
	res, solveHit, err := r.SolveWithCacheInfo(ctx, points, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Solve = res
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved tour",
		"distance", res.Distance,
		"iterations", res.Iterations,
		"seed", res.Seed,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	if len(opts.Formats) == 0 {
		return result, nil
	}
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, points, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo runs the solver with caching and returns cache hit info.
// Unseeded runs bypass the cache entirely.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, points []geom.Point, opts Options) (*aco.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSolve(); err != nil {
		return nil, false, err
	}

	cacheKey := r.solveKey(points, opts)

	// Try cache first
	if opts.Cacheable() {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached aco.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	res, err := Solve(ctx, points, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if opts.Solver.Seed != 0 {
		if data, err := json.Marshal(res); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, r.solveTTL())
		}
	}

	return res, false, nil // Cache miss
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Artifacts of unseeded runs are never cached because their solve result is not.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, points []geom.Point, res *aco.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	seeded := opts.Solver.Seed != 0
	solveKey := r.solveKey(points, opts)

	// Try to get all formats from cache
	if seeded {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(solveKey, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	rendered, err := Render(ctx, points, res, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if seeded {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(solveKey, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		}
	}

	return rendered, false, nil // Cache miss
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, points []geom.Point, opts Options) (*aco.Result, error) {
	res, _, err := r.SolveWithCacheInfo(ctx, points, opts)
	return res, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, points []geom.Point, res *aco.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, points, res, opts)
	return artifacts, err
}

func (r *Runner) solveKey(points []geom.Point, opts Options) string {
	return r.Keyer.SolveKey(HashPoints(points), opts.SolveKeyOpts())
}

func (r *Runner) solveTTL() time.Duration {
	if r.SolveTTL > 0 {
		return r.SolveTTL
	}
	return cache.TTLSolve
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
