package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/pipeline"
	"github.com/matzehuels/acotour/pkg/runstore"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file (single format) or base path
	formats    string // comma-separated output formats
	width      int    // plot width in pixels
	height     int    // plot height in pixels
	detailed   bool   // coordinates in node-link labels
	hideLabels bool   // omit index labels in the plot
}

// renderCommand creates the render command for drawing stored runs.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{formats: pipeline.FormatPNG}

	cmd := &cobra.Command{
		Use:   "render <run-id>",
		Short: "Draw a stored run",
		Long: `Render draws a run saved with "acotour solve --save" (or by the server).

Examples:
  acotour render 3f2b... -f png
  acotour render 3f2b... -f svg,pdf -o tour --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: run ID)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): png, svg, dot, pdf, json (comma-separated)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "plot width in pixels (default 1000)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "plot height in pixels (default 1000)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show coordinates in node-link labels")
	cmd.Flags().BoolVar(&opts.hideLabels, "hide-labels", false, "omit node labels in the plot")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, id string, opts *renderOpts) error {
	ctx := cmd.Context()
	if err := runstore.ValidateID(id); err != nil {
		return err
	}

	popts := pipeline.Options{
		Formats:    parseFormats(opts.formats),
		Width:      opts.width,
		Height:     opts.height,
		Detailed:   opts.detailed,
		HideLabels: opts.hideLabels,
		Logger:     loggerFromContext(ctx),
	}
	if err := popts.ValidateForRender(); err != nil {
		return err
	}
	if len(popts.Formats) == 0 {
		return fmt.Errorf("no output format given")
	}

	store, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	// Stored runs are redrawn without caching; the run itself is the cache.
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering...")
	spinner.Start()
	artifacts, err := pipeline.Render(ctx, run.Points, resultOf(run), popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess("Rendered run " + StyleHighlight.Render(run.ID))

	output := opts.output
	if output == "" {
		output = run.ID
	}
	return writeArtifacts(artifacts, outputPaths(output, popts.Formats))
}

// resultOf rebuilds the solver result a run was created from.
func resultOf(run *runstore.Run) *aco.Result {
	return &aco.Result{
		Tour:       run.Tour,
		Distance:   run.Distance,
		Iterations: run.Iterations,
		Seed:       run.Params.Seed,
	}
}
