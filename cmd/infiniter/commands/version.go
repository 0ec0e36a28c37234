package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/infiniter/version"
)

func newVersionCommand() *cobra.Command {
	var (
		output string
		short  bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			info := version.GetVersionInfo()
			switch {
			case output == outputJSON:
				return writeJSON(cmd.OutOrStdout(), info)
			case short:
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Short())
				return err
			default:
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return err
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format (text, json)")
	cmd.Flags().BoolVar(&short, "short", false, "print the version only")
	return cmd
}
