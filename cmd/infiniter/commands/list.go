package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/infiniter/eval"
)

func newListCommand(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the available generators",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			app, err := newApp(root, nil)
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(context.Context) error {
				generators := eval.DefaultRegistry().List()
				if output == outputJSON {
					return writeJSON(cmd.OutOrStdout(), generators)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tFINITENESS\tDESCRIPTION")
				for _, g := range generators {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Name, g.Finiteness, g.Description)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format (text, json)")
	return cmd
}
