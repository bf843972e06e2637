package commands

import (
	"io"

	"github.com/spf13/cobra"
)

func (c *CLI) newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure [targets...]",
		Short: "Run only the configure phase",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printArgs, err := cmd.Flags().GetBool("print")
			if err != nil {
				return err
			}
			var out io.Writer
			if printArgs {
				out = cmd.OutOrStdout()
			}
			return c.app.Configure(cmd.Context(), args, out)
		},
	}
	cmd.Flags().Bool("print", false, "Print the rendered native-build arguments per target")
	return cmd
}
