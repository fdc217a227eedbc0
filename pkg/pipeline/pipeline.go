// Package pipeline provides the parse → solve → render pipeline shared by
// the CLI and the HTTP server.
//
// By centralizing this logic, both entry points read coordinates, cache
// results and render artifacts the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read node coordinates from text, a file, or a point slice
//  2. Solve: Run the ant colony solver (cached for seeded runs)
//  3. Render: Produce the requested artifacts (PNG plot, SVG, DOT, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "cities.txt",
//	    Solver:  aco.DefaultOptions(),
//	    Formats: []string{pipeline.FormatPNG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// # Caching
//
// Solver results are cached only when Solver.Seed is non-zero. An unseeded
// run draws a fresh random stream, so replaying an earlier result would hide
// the variation callers asked for.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/cache"
	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
	"github.com/matzehuels/acotour/pkg/render/plot"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"  // raster scatter plot
	FormatSVG  = "svg"  // Graphviz node-link drawing
	FormatDOT  = "dot"  // Graphviz source
	FormatPDF  = "pdf"  // node-link drawing via rsvg-convert
	FormatJSON = "json" // solver result
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
// Exactly one of Input, Points or Path supplies the coordinates.
type Options struct {
	// Parse options
	Input    []byte       `json:"input,omitempty"`  // coordinate text
	Points   []geom.Point `json:"points,omitempty"` // already parsed coordinates
	Path     string       `json:"path,omitempty"`   // coordinate file
	Source   string       `json:"source,omitempty"` // display name of the input
	MaxNodes int          `json:"max_nodes,omitempty"`

	// Solve options
	Solver  aco.Options `json:"solver"`
	Refresh bool        `json:"refresh,omitempty"` // bypass the solve cache

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	HideLabels bool     `json:"hide_labels,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Points are the parsed node coordinates.
	Points []geom.Point

	// InputHash is the content hash of Points.
	InputHash string

	// Solve is the solver result with the closed tour.
	Solve *aco.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	ParseTime  time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solver result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, dot, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that exactly one coordinate source is set.
func (o *Options) ValidateForParse() error {
	sources := 0
	for _, set := range []bool{o.Input != nil, o.Points != nil, o.Path != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of input, points or path is required, got %d", sources)
	}
	if o.MaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_nodes must be >= 0, got %d", o.MaxNodes)
	}
	if o.Source == "" && o.Path != "" {
		o.Source = o.Path
	}
	o.setLogger()
	return nil
}

// ValidateForSolve checks the solver parameters that do not depend on the
// input size.
func (o *Options) ValidateForSolve() error {
	o.setLogger()
	return o.Solver.Validate()
}

// ValidateForRender validates formats and sets render defaults.
func (o *Options) ValidateForRender() error {
	o.setLogger()
	if o.Width <= 0 {
		o.Width = plot.DefaultSize
	}
	if o.Height <= 0 {
		o.Height = plot.DefaultSize
	}
	o.Formats = slices.Compact(slices.Sorted(slices.Values(o.Formats)))
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Cacheable reports whether the solver result may be served from cache.
func (o *Options) Cacheable() bool {
	return o.Solver.Seed != 0 && !o.Refresh
}

// SolveKeyOpts returns cache key options for the solver result.
func (o *Options) SolveKeyOpts() cache.SolveKeyOpts {
	s := o.Solver
	return cache.SolveKeyOpts{
		StartNode:          s.StartNode,
		NumAnts:            s.NumAnts,
		NumIterations:      s.NumIterations,
		EvaporationRate:    s.EvaporationRate,
		Alpha:              s.Alpha,
		Beta:               s.Beta,
		Seed:               s.Seed,
		SymmetricDeposit:   s.SymmetricDeposit,
		IncludeClosingEdge: s.IncludeClosingEdge,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
	if format == FormatPNG {
		opts.Width, opts.Height = o.Width, o.Height
		opts.Detailed = !o.HideLabels
	}
	return opts
}

// HashPoints returns the content hash used in solve cache keys.
func HashPoints(points []geom.Point) string {
	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p[0], p[1])
	}
	return cache.HashFloats(flat)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, parse %s, solve %s, render %s",
		s.NodeCount, s.ParseTime.Round(time.Millisecond),
		s.SolveTime.Round(time.Millisecond), s.RenderTime.Round(time.Millisecond))
}
