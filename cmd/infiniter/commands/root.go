// Package commands implements the infiniter command line.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/infiniter/bootstrap"
	"github.com/kbukum/infiniter/eval"
	"github.com/kbukum/infiniter/observability"
)

type rootOptions struct {
	configFile string
	envFile    string
	logLevel   string
}

// NewRootCommand builds the infiniter command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   ServiceName,
		Short: "Evaluate lazy, finiteness-checked numeric sequences",
		Long: `infiniter builds sequences from named generators (count, primes, range, ...),
transforms them lazily and only collects them once they are known to be finite.

Evaluate a query once with "eval", or serve the same queries over HTTP with "serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configFile, "config", "c", "", "config file (default: first of cmd/infiniter/config.yml, config/config.yml, ./config.yml)")
	f.StringVar(&opts.envFile, "env-file", "", ".env file loaded into the environment before config binding")
	f.StringVar(&opts.logLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error, disabled)")

	cmd.AddCommand(
		newListCommand(opts),
		newEvalCommand(opts),
		newServeCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// newApp loads the configuration, lets the command adjust it and starts the
// shared lifecycle.
func newApp(opts *rootOptions, override func(*AppConfig)) (*bootstrap.App[*AppConfig], error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	return bootstrap.NewApp(cfg)
}

// telemetry holds the instruments shared by eval and serve.
type telemetry struct {
	metrics   *observability.Metrics
	sequences *observability.SequenceMetrics
}

// setupTelemetry installs the configured OpenTelemetry providers and
// registers their shutdown. Disabled providers leave the global no-op ones
// in place, so the instruments are always usable.
func setupTelemetry(ctx context.Context, app *bootstrap.App[*AppConfig]) (*telemetry, error) {
	cfg := app.Cfg.Observability
	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, &cfg.Metrics)
		if err != nil {
			return nil, err
		}
		app.OnStop(mp.Shutdown)
	}
	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Tracing)
		if err != nil {
			return nil, err
		}
		app.OnStop(tp.Shutdown)
	}

	meter := observability.Meter(ServiceName)
	metrics, err := observability.NewMetrics(meter)
	if err != nil {
		return nil, err
	}
	sequences, err := observability.NewSequenceMetrics(meter)
	if err != nil {
		return nil, err
	}
	return &telemetry{metrics: metrics, sequences: sequences}, nil
}

func newEvaluator(app *bootstrap.App[*AppConfig], tel *telemetry) *eval.Evaluator {
	return eval.NewEvaluator(eval.DefaultRegistry(), app.Cfg.Eval, app.Logger,
		eval.WithSequenceMetrics(tel.sequences))
}
