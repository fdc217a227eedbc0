package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/acotour/pkg/observability"
)

// logHooks traces observability events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.SolverHooks   = (*logHooks)(nil)
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.HTTPHooks     = (*logHooks)(nil)
)

func (h *logHooks) OnSolveStart(_ context.Context, nodes, ants, iterations int) {
	h.logger.Debug("solve start", "nodes", nodes, "ants", ants, "iterations", iterations)
}

// OnIteration logs roughly every tenth of the run.
func (h *logHooks) OnIteration(_ context.Context, iteration, total int, best float64) {
	step := max(total/10, 1)
	if iteration%step == 0 || iteration == total {
		h.logger.Debug("iteration", "n", iteration, "of", total, "best", best)
	}
}

func (h *logHooks) OnSolveComplete(_ context.Context, nodes int, distance float64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("solve failed", "nodes", nodes, "duration", d, "error", err)
		return
	}
	h.logger.Debug("solve done", "nodes", nodes, "distance", distance, "duration", d)
}

func (h *logHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse start", "source", source)
}

func (h *logHooks) OnParseComplete(_ context.Context, source string, nodes int, d time.Duration, err error) {
	h.logger.Debug("parse done", "source", source, "nodes", nodes, "duration", d, "error", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *logHooks) OnRequest(context.Context, string, string) {}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
