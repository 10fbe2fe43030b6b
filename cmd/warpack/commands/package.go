package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package",
		Short: "Stage the application and produce the deployable archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Package(cmd.Context(), stageOptions(cmd))
		},
	}
	addStageFlags(cmd)
	return cmd
}
