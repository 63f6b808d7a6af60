package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ringforge/ringforge/internal/api"
)

// serveCommand creates the preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local preview server",
		Long: `Run a local preview server.

Renders boards over HTTP for quick iteration in a browser:

  http://localhost:8080/board.svg?n_input=3&n_hidden=2&n_output=1
  http://localhost:8080/network.svg?n_input=3&n_hidden=2&n_output=1
  http://localhost:8080/plans

The server shares the artifact cache with the CLI, so repeated requests
for the same board are served from cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable plan and artifact caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, noCache bool) error {
	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	s, err := c.newStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close(cmd.Context())

	srv := api.NewServer(addr, runner, s, c.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	printInfo("Preview server on %s", addr)
	printNextStep("Try", "curl 'http://localhost"+addr+"/board.svg?n_input=3&n_hidden=2&n_output=1'")

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
