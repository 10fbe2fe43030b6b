package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/warpack/warpack/internal/core/domain"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the staging tree against the recorded manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diff, err := c.app.Verify(cmd.Context())
			if err != nil {
				writeDiff(cmd.OutOrStdout(), diff)
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "staging tree matches the manifest")
			return nil
		},
	}
}

func writeDiff(w io.Writer, diff domain.ManifestDiff) {
	for _, path := range diff.Missing {
		_, _ = fmt.Fprintf(w, "missing: %s\n", path)
	}
	for _, path := range diff.Changed {
		_, _ = fmt.Fprintf(w, "changed: %s\n", path)
	}
	for _, path := range diff.Extra {
		_, _ = fmt.Fprintf(w, "extra: %s\n", path)
	}
}
