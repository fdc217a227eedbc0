// Package nodelink renders a tour as a Graphviz node-link diagram.
//
// # Overview
//
// Every node is placed at its own coordinate (pinned with pos="x,y!") and
// laid out with the neato engine, so the drawing keeps the geometry of the
// input. Consecutive tour nodes are joined by undirected red edges; the
// start node is filled to stand out.
//
// # Usage
//
// Convert points and a tour to DOT, then render:
//
//	dot := nodelink.ToDOT(points, res.Tour, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// PDF output goes through SVG and requires librsvg:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// # Options
//
//   - Size: Edge length of the drawing area in inches (default 10)
//   - Detailed: When true, node labels include the original coordinates
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering.
package nodelink
