// Package render turns solver results into pictures.
//
// # Overview
//
// Two renderers are provided:
//
//   - [plot]: a raster scatter plot of the nodes with the tour drawn in red,
//     built directly with fogleman/gg.
//   - [nodelink]: a Graphviz drawing of the tour with every node pinned at
//     its coordinate, available as DOT, SVG, PNG or PDF.
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg). The node-link renderer uses it for PDF output.
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [plot]: github.com/matzehuels/acotour/pkg/render/plot
// [nodelink]: github.com/matzehuels/acotour/pkg/render/nodelink
package render
