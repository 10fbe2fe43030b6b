package commands

import (
	"github.com/spf13/cobra"
	"github.com/warpack/warpack/internal/app"
)

func (c *CLI) newStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Stage the application files and packages without archiving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Stage(cmd.Context(), stageOptions(cmd))
		},
	}
	addStageFlags(cmd)
	return cmd
}

// addStageFlags declares the flags shared by the stage and package commands.
func addStageFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("parallelism", "j", 0, "Number of tasks to run concurrently (0 selects the CPU count)")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
}

func stageOptions(cmd *cobra.Command) app.StageOptions {
	parallelism, _ := cmd.Flags().GetInt("parallelism")
	outputMode, _ := cmd.Flags().GetString("output-mode")
	ci, _ := cmd.Flags().GetBool("ci")

	// If --ci is set, override output-mode to "linear"
	if ci {
		outputMode = "linear"
	}

	return app.StageOptions{
		Parallelism: parallelism,
		OutputMode:  outputMode,
	}
}
