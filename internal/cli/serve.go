package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/acotour/internal/server"
	"github.com/matzehuels/acotour/pkg/cache"
)

// serveCommand creates the serve command that runs the web interface.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload page and JSON API",
		Long: `Serve starts the HTTP server:

  GET  /                 upload form
  POST /plot             solve an uploaded file, answer with an HTML page
  POST /api/solve        solve JSON or plain coordinates, answer with JSON
  GET  /runs/{id}        a stored run
  GET  /runs/{id}/plot.png
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			// Web keys are scoped so a shared Redis keeps them apart from CLI entries.
			runner, err := c.newRunner(ctx, noCache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "web:"))
			if err != nil {
				return err
			}
			defer runner.Close()

			store, err := c.newServerStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sc := c.cfg.Server
			srv := server.New(runner, store, c.Logger, server.Config{
				Solver:         c.cfg.Solver,
				MaxUploadBytes: sc.MaxUploadBytes,
				MaxNodes:       sc.MaxNodes,
				MaxAnts:        sc.MaxAnts,
				MaxIterations:  sc.MaxIterations,
				RunTTL:         sc.RunTTL,
				SolveTimeout:   sc.SolveTimeout,
			})

			printInfo("Serving on %s", StyleLink.Render(displayURL(addr)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// displayURL turns a listen address into a clickable URL.
func displayURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
