package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/acotour/pkg/aco"
	acoio "github.com/matzehuels/acotour/pkg/io"
	"github.com/matzehuels/acotour/pkg/pipeline"
	"github.com/matzehuels/acotour/pkg/runstore"
)

// solverFlags holds the solver flags. Only flags the user set override the
// configured defaults.
type solverFlags struct {
	start      int
	ants       int
	iterations int
	rho        float64
	alpha      float64
	beta       float64
	seed       uint64
	symmetric  bool
	closing    bool
}

func (f *solverFlags) register(cmd *cobra.Command) {
	d := aco.DefaultOptions()
	cmd.Flags().IntVar(&f.start, "start", d.StartNode, "start node index")
	cmd.Flags().IntVar(&f.ants, "ants", d.NumAnts, "ants per iteration")
	cmd.Flags().IntVar(&f.iterations, "iterations", d.NumIterations, "number of iterations")
	cmd.Flags().Float64Var(&f.rho, "rho", d.EvaporationRate, "evaporation rate in (0, 1]")
	cmd.Flags().Float64Var(&f.alpha, "alpha", d.Alpha, "pheromone weight")
	cmd.Flags().Float64Var(&f.beta, "beta", d.Beta, "inverse-distance weight")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 draws one)")
	cmd.Flags().BoolVar(&f.symmetric, "symmetric", false, "deposit pheromone in both directions")
	cmd.Flags().BoolVar(&f.closing, "closing-edge", false, "count the edge back to the start node")
}

// apply overlays the flags the user set on base.
func (f *solverFlags) apply(cmd *cobra.Command, base aco.Options) aco.Options {
	set := cmd.Flags().Changed
	if set("start") {
		base.StartNode = f.start
	}
	if set("ants") {
		base.NumAnts = f.ants
	}
	if set("iterations") {
		base.NumIterations = f.iterations
	}
	if set("rho") {
		base.EvaporationRate = f.rho
	}
	if set("alpha") {
		base.Alpha = f.alpha
	}
	if set("beta") {
		base.Beta = f.beta
	}
	if set("seed") {
		base.Seed = f.seed
	}
	if set("symmetric") {
		base.SymmetricDeposit = f.symmetric
	}
	if set("closing-edge") {
		base.IncludeClosingEdge = f.closing
	}
	return base
}

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	solver   solverFlags
	output   string // output file (single format) or base path
	formats  string // comma-separated artifact formats
	width    int    // plot width in pixels
	height   int    // plot height in pixels
	detailed bool   // coordinates in node-link labels
	json     bool   // print the result as JSON on stdout
	progress bool   // interactive progress view
	save     bool   // keep the run in the run store
	noCache  bool
	refresh  bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve <file|->",
		Short: "Find a short tour through a coordinate file",
		Long: `Solve reads "index x y" lines from a file (or stdin with "-"), runs the ant
colony, and prints the best tour and its distance.

Examples:
  acotour solve cities.txt
  acotour solve cities.txt --seed 42 --ants 20 --iterations 500
  acotour solve cities.txt -f png,svg -o tour`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], &opts)
		},
	}

	opts.solver.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: input name)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "artifact format(s): png, svg, dot, pdf, json (comma-separated)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "plot width in pixels (default 1000)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "plot height in pixels (default 1000)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show coordinates in node-link labels")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show live iteration progress")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the run for later rendering")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, input string, opts *solveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{
		Solver:   opts.solver.apply(cmd, c.cfg.Solver),
		Formats:  parseFormats(opts.formats),
		Width:    opts.width,
		Height:   opts.height,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   logger,
	}
	if input == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		popts.Input = data
		popts.Source = "stdin"
	} else {
		popts.Path = input
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var result *pipeline.Result
	if opts.progress && isTerminal(os.Stderr) {
		result, err = runWithProgressView(ctx, runner, popts)
	} else {
		spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Solving...")
		user := popts.Solver.OnIteration
		popts.Solver.OnIteration = func(s aco.IterationStats) {
			spinner.SetMessage(fmt.Sprintf("Solving... iteration %d/%d, best %s", s.Iteration, s.Total, acoio.FormatDistance(s.Best)))
			if user != nil {
				user(s)
			}
		}
		spinner.Start()
		result, err = runner.Execute(ctx, popts)
		if err != nil && spinner.Cancelled() {
			spinner.StopWithError("Interrupted")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		prog.fail("solve failed", err)
		return err
	}
	prog.done("solved", "nodes", result.Stats.NodeCount, "distance", result.Solve.Distance)

	out := cmd.OutOrStdout()
	if opts.json {
		if err := acoio.WriteJSON(result.Solve, out); err != nil {
			return err
		}
	} else {
		printResult(out, result)
	}

	if len(popts.Formats) > 0 {
		output := opts.output
		if output == "" {
			output = baseName(popts.Source)
		}
		if err := writeArtifacts(result.Artifacts, outputPaths(output, popts.Formats)); err != nil {
			return err
		}
	}

	if opts.save {
		store, err := c.newStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		run := runstore.NewRun(popts.Source, result.Points, popts.Solver, result.Solve, c.cfg.Server.RunTTL)
		if err := store.Set(ctx, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		printSuccess("Saved run %s", StyleHighlight.Render(run.ID))
		printNextStep("Render it", "acotour render "+run.ID+" -f png")
	}
	return nil
}

// runWithProgressView runs the pipeline while a bubbletea program draws
// iteration progress. Quitting the view cancels the run.
func runWithProgressView(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newSolveProgressModel(opts.Solver.NumIterations)
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	user := opts.Solver.OnIteration
	opts.Solver.OnIteration = func(s aco.IterationStats) {
		p.Send(iterationMsg(s))
		if user != nil {
			user(s)
		}
	}

	type outcome struct {
		result *pipeline.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := runner.Execute(ctx, opts)
		done <- outcome{res, err}
		p.Send(solveDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil && ctx.Err() == nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress view: %w", err)
	}
	if m, ok := final.(solveProgressModel); ok && m.quit {
		cancel()
	}
	o := <-done
	return o.result, o.err
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// printResult prints the tour and distance the way the upload page shows them.
func printResult(w io.Writer, result *pipeline.Result) {
	res := result.Solve
	fmt.Fprintln(w, keyValue("Path", acoio.FormatTour(res.Tour)))
	fmt.Fprintln(w, keyValue("Distance", StyleNumber.Render(acoio.FormatDistance(res.Distance))))
	fmt.Fprintln(w, keyValue("Seed", fmt.Sprint(res.Seed)))
	fmt.Fprintln(w, "  "+statsLine(result))
}

func writeArtifacts(artifacts map[string][]byte, paths map[string]string) error {
	for format, path := range paths {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
