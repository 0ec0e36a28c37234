package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/infiniter/server"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluation API over HTTP",
		Long: `Serve exposes the generators over HTTP until SIGINT or SIGTERM:

  GET /v1/generators         list generators
  GET /v1/sequences/{name}   evaluate a query given as URL parameters
  GET /health, /ready, /alive, /version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(root, func(cfg *AppConfig) {
				if cmd.Flags().Changed("host") {
					cfg.Server.Host = host
				}
				if cmd.Flags().Changed("port") {
					cfg.Server.Port = port
				}
			})
			if err != nil {
				return err
			}
			tel, err := setupTelemetry(cmd.Context(), app)
			if err != nil {
				return err
			}

			srv := server.New(app.Cfg.Server, app.Logger)
			srv.ApplyMiddleware()
			srv.RegisterRoutes(server.Routes{
				ServiceName:    app.Name,
				ServiceVersion: app.Version,
				Evaluator:      newEvaluator(app, tel),
				Metrics:        tel.metrics,
			})
			srv.LogRoutes()

			app.OnStart(srv.Start)
			app.OnStop(srv.Stop)
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "override server.host")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override server.port")
	return cmd
}
