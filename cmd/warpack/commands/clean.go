package commands

import (
	"github.com/spf13/cobra"
	"github.com/warpack/warpack/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the staging tree and its manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			archive, _ := cmd.Flags().GetBool("archive")
			return c.app.Clean(cmd.Context(), app.CleanOptions{Archive: archive})
		},
	}
	cmd.Flags().BoolP("archive", "a", false, "Also remove the archive output")
	return cmd
}
