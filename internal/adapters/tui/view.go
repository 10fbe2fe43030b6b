package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/ui/style"
)

// logTailLimit caps how many log lines an expanded task shows.
const logTailLimit = 5

// View renders the visible window of the task list. The window is centered
// on the selection cursor; expanded tasks show the tail of their logs,
// filtered by the current verbosity, indented under the task row.
func (m *Model) View() string {
	var s strings.Builder

	start := 0
	if m.height > 0 && len(m.vertices) > m.height {
		start = m.SelectedIdx - m.height/2
		if start < 0 {
			start = 0
		}
	}

	lines := 0
	for i := start; i < len(m.vertices); i++ {
		if m.height > 0 && lines >= m.height {
			break
		}
		v := m.vertices[i]
		s.WriteString(m.renderRow(i, &v))
		lines++

		if !v.Expanded {
			continue
		}
		for _, line := range m.visibleLogs(v.ID) {
			if m.height > 0 && lines >= m.height {
				break
			}
			s.WriteString("    " + logLineStyle.Render(line) + "\n")
			lines++
		}
	}

	return s.String()
}

func (m *Model) renderRow(index int, v *VertexState) string {
	icon, iconStyle := m.statusIcon(v)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = cursorStyle.Render("›") + " "
	}

	return fmt.Sprintf("%s%s %s\n", cursor, iconStyle.Render(icon), v.Name)
}

func (m *Model) statusIcon(v *VertexState) (string, lipgloss.Style) {
	switch v.Status {
	case statusRunning:
		return m.spinner.View(), runningStyle
	case statusCompleted:
		return style.Check, completedStyle
	case statusFailed:
		return style.Cross, failedStyle
	case statusCached:
		return style.Tilde, cachedStyle
	default:
		return style.Circle, pendingStyle
	}
}

// visibleLogs returns the tail of a task's log lines at or above the
// current verbosity.
func (m *Model) visibleLogs(id string) []string {
	var out []string
	for _, line := range m.logs[id] {
		if logLineLevel(line) >= m.MinLogLevel {
			out = append(out, line)
		}
	}
	if len(out) > logTailLimit {
		out = out[len(out)-logTailLimit:]
	}
	return out
}

// logLineLevel recovers the severity a vertex log line was recorded with.
// Lines without a recognizable prefix count as informational.
func logLineLevel(line string) domain.LogLevel {
	switch {
	case strings.HasPrefix(line, "[DEBUG]"):
		return domain.LogLevelDebug
	case strings.HasPrefix(line, "[WARN]"):
		return domain.LogLevelWarn
	case strings.HasPrefix(line, "[ERROR]"):
		return domain.LogLevelError
	default:
		return domain.LogLevelInfo
	}
}
