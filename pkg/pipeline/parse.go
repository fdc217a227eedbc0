package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
	acoio "github.com/matzehuels/acotour/pkg/io"
	"github.com/matzehuels/acotour/pkg/observability"
)

// Parse reads node coordinates from the source configured in opts.
// Points are copied so later stages never alias caller memory.
func Parse(ctx context.Context, opts Options) ([]geom.Point, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	source := opts.Source
	if source == "" {
		source = "input"
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	points, err := readPoints(opts)
	if err == nil && opts.MaxNodes > 0 && len(points) > opts.MaxNodes {
		err = errors.New(errors.ErrCodeInvalidInput, "too many nodes: %d (limit %d)", len(points), opts.MaxNodes)
	}
	hooks.OnParseComplete(ctx, source, len(points), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("read coordinates", "source", source, "nodes", len(points))
	return points, nil
}

func readPoints(opts Options) ([]geom.Point, error) {
	switch {
	case opts.Points != nil:
		for i, p := range opts.Points {
			if !geom.IsFinite(p) {
				return nil, errors.New(errors.ErrCodeInvalidCoordinates, "point %d: coordinates must be finite", i)
			}
		}
		return append([]geom.Point(nil), opts.Points...), nil
	case opts.Input != nil:
		return acoio.ReadCoords(bytes.NewReader(opts.Input))
	default:
		return acoio.ImportCoords(opts.Path)
	}
}
