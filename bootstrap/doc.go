// Package bootstrap runs the lifecycle shared by the infiniter commands.
//
// An App owns the typed configuration and the logger built from it. Commands
// attach start and stop hooks, then either block until a shutdown signal with
// Run (the HTTP server) or execute one finite task with RunTask (list, eval).
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.OnStart(srv.Start)
//	app.OnStop(srv.Stop)
//	return app.Run(ctx)
//
// Stop hooks run in reverse registration order within the graceful timeout,
// and every one of them runs even when an earlier one fails.
package bootstrap
