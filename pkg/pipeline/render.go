package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/geom"
	acoio "github.com/matzehuels/acotour/pkg/io"
	"github.com/matzehuels/acotour/pkg/observability"
	"github.com/matzehuels/acotour/pkg/render/nodelink"
	"github.com/matzehuels/acotour/pkg/render/plot"
)

// Render generates output artifacts in the requested formats.
// Formats are rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, points []geom.Point, res *aco.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("render: missing solver result")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := RenderFormat(gctx, format, points, res, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFormat produces a single artifact.
func RenderFormat(ctx context.Context, format string, points []geom.Point, res *aco.Result, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return plot.RenderPNG(points, res.Tour, plot.Options{
			Width:      opts.Width,
			Height:     opts.Height,
			HideLabels: opts.HideLabels,
		})
	case FormatDOT:
		return []byte(toDOT(points, res, opts)), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, toDOT(points, res, opts))
	case FormatPDF:
		return nodelink.RenderPDF(ctx, toDOT(points, res, opts))
	case FormatJSON:
		var buf bytes.Buffer
		if err := acoio.WriteJSON(res, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, ValidateFormat(format)
	}
}

func toDOT(points []geom.Point, res *aco.Result, opts Options) string {
	return nodelink.ToDOT(points, res.Tour, nodelink.Options{Detailed: opts.Detailed})
}
