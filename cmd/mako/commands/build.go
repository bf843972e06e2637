package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [targets...]",
		Short: "Configure, build and package targets",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			return c.app.Run(cmd.Context(), args, force)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Rebuild even when the stored package matches")
	return cmd
}
