package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kbukum/infiniter/eval"
)

type evalOptions struct {
	query  eval.Query
	output string
}

func newEvalCommand(root *rootOptions) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval <generator>",
		Short: "Evaluate one query and print the collected values",
		Long: `Evaluate builds the named generator, applies the requested stages in order
(filter, op, skip, take, sort) and collects the result.

Infinite and unknown-length pipelines are rejected unless --take bounds them
or eval.default_take is configured.`,
		Example: `  infiniter eval primes --take 10
  infiniter eval range --stop 20 --filter even --op mul --operand 3
  infiniter eval square --op add --operand zip:triangle --take 5
  infiniter eval cycle --items 3,1,2 --take 6 --sort --reverse`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGenerators,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(opts.output); err != nil {
				return err
			}
			opts.query.Generator = args[0]
			if err := opts.bindArgs(cmd.Flags()); err != nil {
				return err
			}

			app, err := newApp(root, nil)
			if err != nil {
				return err
			}
			tel, err := setupTelemetry(cmd.Context(), app)
			if err != nil {
				return err
			}
			evaluator := newEvaluator(app, tel)

			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				result, err := evaluator.Evaluate(ctx, opts.query)
				if err != nil {
					return err
				}
				if opts.output == outputJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), formatValues(result.Values))
				return err
			})
		},
	}

	f := cmd.Flags()
	f.Float64("start", 0, "first value (range, count, square)")
	f.Float64("step", 0, "increment (range, count)")
	f.Float64("stop", 0, "exclusive upper bound (range, required)")
	f.Float64("a", 0, "first seed (fibonacci)")
	f.Float64("b", 0, "second seed (fibonacci)")
	f.Float64("value", 0, "repeated value (repeat, required)")
	f.Int("times", 0, "repetition count (repeat; unbounded when omitted)")
	f.Float64SliceVar(&opts.query.Items, "items", nil, "comma-separated values (cycle)")
	f.StringVar(&opts.query.Filter, "filter", "", "keep only even, odd or positive values")
	f.StringVar(&opts.query.Op, "op", "", "operator applied with --operand (add, sub, mul, div)")
	f.StringVar(&opts.query.Operand, "operand", "", "number, or zip:<generator> for element-wise")
	f.IntVar(&opts.query.Skip, "skip", 0, "values dropped from the front")
	f.Int("take", 0, "maximum number of values")
	f.BoolVar(&opts.query.Sort, "sort", false, "sort the collected values ascending")
	f.BoolVar(&opts.query.Reverse, "reverse", false, "sort descending (requires --sort)")
	f.StringVarP(&opts.output, "output", "o", outputText, "output format (text, json)")
	return cmd
}

// bindArgs copies the flags that were actually given into the optional query
// fields, so generator defaults apply to the rest.
func (o *evalOptions) bindArgs(f *pflag.FlagSet) error {
	floats := []struct {
		name string
		dst  **float64
	}{
		{"start", &o.query.Start},
		{"step", &o.query.Step},
		{"stop", &o.query.Stop},
		{"a", &o.query.A},
		{"b", &o.query.B},
		{"value", &o.query.Value},
	}
	for _, fl := range floats {
		if !f.Changed(fl.name) {
			continue
		}
		v, err := f.GetFloat64(fl.name)
		if err != nil {
			return err
		}
		*fl.dst = &v
	}
	ints := []struct {
		name string
		dst  **int
	}{
		{"times", &o.query.Times},
		{"take", &o.query.Take},
	}
	for _, fl := range ints {
		if !f.Changed(fl.name) {
			continue
		}
		v, err := f.GetInt(fl.name)
		if err != nil {
			return err
		}
		*fl.dst = &v
	}
	return nil
}

func completeGenerators(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, g := range eval.DefaultRegistry().List() {
		names = append(names, g.Name+"\t"+g.Description)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

