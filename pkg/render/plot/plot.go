// Package plot draws a tour over its node coordinates as a raster image.
//
// The picture mirrors the classic scatter plot of a TSP solution: black
// node markers labelled with their index and thin red segments joining
// consecutive tour nodes. The y axis points up, as in a mathematical plot.
//
//	png, err := plot.RenderPNG(points, res.Tour, plot.Options{})
package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/geom"
)

// Default canvas settings.
const (
	DefaultSize      = 1000
	DefaultMargin    = 40.0
	DefaultLineWidth = 0.5
	DefaultRadius    = 2.5
)

var (
	nodeColor = color.Black
	tourColor = color.RGBA{R: 255, A: 255}
)

// Options configures the plot. Zero values select the defaults.
type Options struct {
	Width, Height int
	Margin        float64
	LineWidth     float64
	PointRadius   float64
	// HideLabels suppresses the index label next to each node.
	HideLabels bool
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultSize
	}
	if o.Height <= 0 {
		o.Height = DefaultSize
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.PointRadius <= 0 {
		o.PointRadius = DefaultRadius
	}
	return o
}

// RenderPNG draws points and the tour through them and returns PNG bytes.
// tour may be empty, in which case only the nodes are drawn. Every tour
// entry must index into points.
func RenderPNG(points []geom.Point, tour aco.Tour, opts Options) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("plot: no points")
	}
	for _, v := range tour {
		if v < 0 || v >= len(points) {
			return nil, fmt.Errorf("plot: tour node %d out of range [0, %d)", v, len(points))
		}
	}

	opts = opts.withDefaults()
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(color.White)
	dc.Clear()

	proj := newProjection(points, opts)

	if len(tour) > 1 {
		dc.SetColor(tourColor)
		dc.SetLineWidth(opts.LineWidth)
		x, y := proj.apply(points[tour[0]])
		dc.MoveTo(x, y)
		for _, v := range tour[1:] {
			x, y = proj.apply(points[v])
			dc.LineTo(x, y)
		}
		dc.Stroke()
	}

	dc.SetColor(nodeColor)
	for i, p := range points {
		x, y := proj.apply(p)
		dc.DrawCircle(x, y, opts.PointRadius)
		dc.Fill()
		if !opts.HideLabels {
			dc.DrawString(strconv.Itoa(i), x+opts.PointRadius+1, y-opts.PointRadius-1)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// projection maps plane coordinates onto the canvas, preserving aspect
// ratio and flipping the y axis.
type projection struct {
	minX, maxY float64
	scale      float64
	offX, offY float64
}

func newProjection(points []geom.Point, opts Options) projection {
	b := geom.Bounds(points)
	spanX := b.Max[0] - b.Min[0]
	spanY := b.Max[1] - b.Min[1]

	availW := float64(opts.Width) - 2*opts.Margin
	availH := float64(opts.Height) - 2*opts.Margin

	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = min(availW/spanX, availH/spanY)
	case spanX > 0:
		scale = availW / spanX
	case spanY > 0:
		scale = availH / spanY
	}

	return projection{
		minX:  b.Min[0],
		maxY:  b.Max[1],
		scale: scale,
		offX:  opts.Margin + (availW-spanX*scale)/2,
		offY:  opts.Margin + (availH-spanY*scale)/2,
	}
}

func (p projection) apply(pt geom.Point) (x, y float64) {
	return p.offX + (pt[0]-p.minX)*p.scale, p.offY + (p.maxY-pt[1])*p.scale
}
