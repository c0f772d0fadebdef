package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve exposes resolution, drag-preview checks and the board store over
HTTP. The cache and store backends come from the configuration file.

Endpoints:
  GET    /healthz
  POST   /api/resolve
  POST   /api/check
  GET    /api/boards
  GET    /api/boards/{id}
  PUT    /api/boards/{id}
  DELETE /api/boards/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			observability.NewLogHooks(logger).Register()
			defer observability.Reset()

			printSuccess("%s %s", appName, StyleDim.Render(buildinfo.Short()))
			printKeyValue("Listening", StyleLink.Render(serverURL(addr)))
			cacheBackend := c.Config.Cache.Backend
			if noCache {
				cacheBackend = "none"
			}
			printKeyValue("Cache", cacheBackend)
			printKeyValue("Store", c.Config.Store.Backend)

			return server.New(runner, st, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

// serverURL turns a listen address into a clickable URL.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
