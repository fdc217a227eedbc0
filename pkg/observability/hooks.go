// Package observability lets the CLI and the server observe solver runs,
// pipeline stages, cache traffic and HTTP requests without the libraries
// importing a logging or metrics backend.
//
// Each event category is an interface with a no-op default. main registers
// implementations once at startup; libraries fetch the current set and fire
// events:
//
//	observability.SetSolverHooks(&logHooks{logger})
//
//	observability.Solver().OnSolveStart(ctx, len(points), opts.NumAnts, opts.NumIterations)
//	res, err := aco.Solve(ctx, points, opts)
//	observability.Solver().OnSolveComplete(ctx, len(points), res.Distance, time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from solver runs.
type SolverHooks interface {
	// OnSolveStart is called once parameters have been accepted.
	OnSolveStart(ctx context.Context, nodes, ants, iterations int)

	// OnIteration is called after every update pass with the best distance so far.
	OnIteration(ctx context.Context, iteration, total int, best float64)

	// OnSolveComplete is called when a run ends, successfully or not.
	OnSolveComplete(ctx context.Context, nodes int, distance float64, duration time.Duration, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the parse and render stages.
type PipelineHooks interface {
	// Parse events
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolveStart(context.Context, int, int, int)                         {}
func (NoopSolverHooks) OnIteration(context.Context, int, int, float64)                      {}
func (NoopSolverHooks) OnSolveComplete(context.Context, int, float64, time.Duration, error) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered hook set. Loads are lock-free so the solver can
// fire OnIteration on every pass without contention.
type slot[T any] struct {
	v    atomic.Pointer[T]
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	s := &slot[T]{noop: noop}
	s.reset()
	return s
}

func (s *slot[T]) set(h T) { s.v.Store(&h) }
func (s *slot[T]) get() T  { return *s.v.Load() }
func (s *slot[T]) reset()  { s.set(s.noop) }

var (
	solverHooks   = newSlot[SolverHooks](NoopSolverHooks{})
	pipelineHooks = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheHooks    = newSlot[CacheHooks](NoopCacheHooks{})
	httpHooks     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetSolverHooks registers solver hooks. Call it at startup, before any
// solve begins; nil is ignored.
func SetSolverHooks(h SolverHooks) {
	if h != nil {
		solverHooks.set(h)
	}
}

// SetPipelineHooks registers pipeline hooks; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.set(h)
	}
}

// SetCacheHooks registers cache hooks; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetHTTPHooks registers HTTP hooks; nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.set(h)
	}
}

func Solver() SolverHooks     { return solverHooks.get() }
func Pipeline() PipelineHooks { return pipelineHooks.get() }
func Cache() CacheHooks       { return cacheHooks.get() }
func HTTP() HTTPHooks         { return httpHooks.get() }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	solverHooks.reset()
	pipelineHooks.reset()
	cacheHooks.reset()
	httpHooks.reset()
}
