package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/warpack/warpack/internal/core/domain"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the planned tasks in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			graph, err := c.app.Plan(cmd.Context())
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writePlanJSON(cmd.OutOrStdout(), graph)
			}
			writePlanText(cmd.OutOrStdout(), graph)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the plan as JSON")
	return cmd
}

func writePlanText(w io.Writer, graph *domain.Graph) {
	for task := range graph.Walk() {
		_, _ = fmt.Fprintf(w, "%-10s %s\n", task.Kind, task.Name)
	}
}

// planEntry is the JSON shape of one planned task.
type planEntry struct {
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Source        string   `json:"source,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	Package       string   `json:"package,omitempty"`
}

func writePlanJSON(w io.Writer, graph *domain.Graph) error {
	entries := make([]planEntry, 0, graph.TaskCount())
	for task := range graph.Walk() {
		entry := planEntry{
			Name:        task.Name.String(),
			Kind:        task.Kind.String(),
			Source:      task.Source,
			Destination: task.Destination,
		}
		for _, prereq := range task.Prerequisites {
			entry.Prerequisites = append(entry.Prerequisites, prereq.String())
		}
		if task.Package != (domain.PackageIdentity{}) {
			entry.Package = task.Package.String()
		}
		entries = append(entries, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
