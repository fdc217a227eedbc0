package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/geom"
	"github.com/matzehuels/acotour/pkg/render"
)

// DefaultSize is the edge length of the drawing area in inches.
const DefaultSize = 10.0

// Options configures node-link diagram rendering.
type Options struct {
	// Size is the edge length of the square the nodes are fitted into, in
	// inches. Zero selects DefaultSize.
	Size float64

	// Detailed includes the original coordinates in node labels.
	// When false, only the node index is shown.
	Detailed bool
}

// ToDOT converts points and a tour to Graphviz DOT source with pinned node
// positions. The result can be rendered using [RenderSVG], [RenderPNG], or
// [RenderPDF].
//
// The tour is drawn as given; pass a closed tour to include the edge back to
// the start node. Tour entries outside points are skipped.
func ToDOT(points []geom.Point, tour aco.Tour, opts Options) string {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	start := -1
	if len(tour) > 0 {
		start = tour[0]
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=8, width=0.25, fixedsize=true];\n")
	buf.WriteString("  edge [color=red, penwidth=0.8];\n")
	buf.WriteString("\n")

	pos := fitter(points, size)
	for i, p := range points {
		x, y := pos(p)
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(i, p, opts.Detailed)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtInch(x), fmtInch(y)),
		}
		if i == start {
			attrs = append(attrs, "fillcolor=black", "fontcolor=white")
		}
		fmt.Fprintf(&buf, "  \"%d\" [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for k := 1; k < len(tour); k++ {
		u, v := tour[k-1], tour[k]
		if u < 0 || u >= len(points) || v < 0 || v >= len(points) {
			continue
		}
		fmt.Fprintf(&buf, "  \"%d\" -- \"%d\";\n", u, v)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(i int, p geom.Point, detailed bool) string {
	if !detailed {
		return strconv.Itoa(i)
	}
	return fmt.Sprintf("%d\n(%g, %g)", i, p[0], p[1])
}

func fmtInch(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// fitter returns a function mapping plane coordinates into a size×size
// inch square, preserving aspect ratio.
func fitter(points []geom.Point, size float64) func(geom.Point) (float64, float64) {
	if len(points) == 0 {
		return func(geom.Point) (float64, float64) { return 0, 0 }
	}
	b := geom.Bounds(points)
	span := max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	scale := 1.0
	if span > 0 {
		scale = size / span
	}
	return func(p geom.Point) (float64, float64) {
		return (p[0] - b.Min[0]) * scale, (p[1] - b.Min[1]) * scale
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderFormat(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG in-process.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
