package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorlayout/internal/server"
)

// serveCommand creates the serve command, which exposes resolution over
// HTTP with the configured cache and snapshot store.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolver over HTTP",
		Example: `  anchorlayout serve --addr :9000
  anchorlayout serve --config /etc/anchorlayout/config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			defaults, err := c.cfg.LayoutOptions()
			if err != nil {
				return err
			}
			srv := server.New(runner, st, logger)
			srv.SetDefaults(defaults)

			logger.Info("starting server",
				"cache", c.cfg.Cache.Backend,
				"store", c.cfg.Store.Backend,
				"policy", c.cfg.Layout.Policy)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
