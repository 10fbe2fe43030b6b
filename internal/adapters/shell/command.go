// Package shell invokes the external extraction and archive tools.
package shell

import (
	"context"
	"os/exec"
	"strings"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Placeholder tokens recognized in configured commands.
const (
	tokenArchive = "{archive}"
	tokenDest    = "{dest}"
	tokenOutput  = "{output}"
	tokenDir     = "{dir}"
)

type placeholder struct {
	token string
	value string
}

// expandCommand substitutes placeholder tokens in the configured argv.
// A value whose placeholder never appears is appended as a trailing
// argument, in the order the placeholders are given, so short commands
// that rely on positional arguments still receive every value.
func expandCommand(command []string, placeholders []placeholder) []string {
	argv := make([]string, len(command))
	seen := make(map[string]bool, len(placeholders))
	for i, arg := range command {
		expanded := arg
		for _, p := range placeholders {
			if strings.Contains(expanded, p.token) {
				expanded = strings.ReplaceAll(expanded, p.token, p.value)
				seen[p.token] = true
			}
		}
		argv[i] = expanded
	}
	for _, p := range placeholders {
		if !seen[p.token] {
			argv = append(argv, p.value)
		}
	}
	return argv
}

// runCommand executes argv and surfaces the tool's stderr verbatim on
// failure, wrapped in the given sentinel. The command line and the tool's
// stdout are streamed to the vertex recording the task, when one is present.
func runCommand(ctx context.Context, argv []string, sentinel error) error {
	if len(argv) == 0 {
		return zerr.With(sentinel, "reason", "empty command")
	}

	vertex, recorded := ports.VertexFromContext(ctx)
	if recorded {
		vertex.Log(domain.LogLevelDebug, "$ "+strings.Join(argv, " "))
	}

	//nolint:gosec // argv comes from the validated configuration
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	out, err := cmd.Output()
	if recorded {
		logLines(vertex, out)
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))

			runErr := zerr.Wrap(exitErr, sentinel.Error())
			runErr = zerr.With(runErr, "command", strings.Join(argv, " "))
			runErr = zerr.With(runErr, "exit_code", exitErr.ExitCode())
			return zerr.With(runErr, "stderr", stderr)
		}

		runErr := zerr.Wrap(err, sentinel.Error())
		return zerr.With(runErr, "command", strings.Join(argv, " "))
	}

	return nil
}

// logLines forwards each output line of the external tool to the vertex.
func logLines(vertex ports.Vertex, out []byte) {
	for line := range strings.Lines(string(out)) {
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			vertex.Log(domain.LogLevelInfo, line)
		}
	}
}
