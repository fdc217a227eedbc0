// Package pkg holds the libraries behind acotour, an ant colony optimization
// solver for the travelling-salesman problem over 2D points.
//
// # Overview
//
// The packages fall into four groups:
//
//  1. [aco] and [geom] - the solver: distance and pheromone matrices, tour
//     construction, the pheromone update pass and the iteration driver.
//  2. [io] - the "index x y" coordinate format and result encodings.
//  3. [render] - tour plots (PNG) and node-link drawings (DOT, SVG, PDF).
//  4. [pipeline], [cache], [runstore], [config], [observability] - the
//     parse → solve → render orchestration with caching, stored runs,
//     settings and hooks shared by the CLI and the HTTP server.
//
// # Data Flow
//
//	coordinate file / upload / JSON
//	         ↓
//	    [io] ReadCoords
//	         ↓
//	    [aco] Solve (numIterations × numAnts tours)
//	         ↓
//	    [render/plot], [render/nodelink]
//	         ↓
//	    PNG/SVG/PDF/DOT/JSON output
//
// # Quick Start
//
//	points, _ := io.ImportCoords("cities.txt")
//	opts := aco.DefaultOptions()
//	opts.Seed = 42
//	res, _ := aco.Solve(context.Background(), points, opts)
//	fmt.Println(io.FormatTour(res.Tour), io.FormatDistance(res.Distance))
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Path:    "cities.txt",
//	    Solver:  opts,
//	    Formats: []string{pipeline.FormatPNG},
//	})
//
// [aco]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/aco
// [geom]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/geom
// [io]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/cache
// [runstore]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/runstore
// [config]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/acotour/pkg/observability
package pkg
