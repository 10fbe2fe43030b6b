//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warpack/warpack/internal/core/domain"
)

func TestModel_View_StatusIcons(t *testing.T) {
	m := NewModel(&fakeTape{})
	m.width = 80
	m.height = 20

	m.vertices = []VertexState{
		{ID: "1", Name: "unpack:rack-2.2.8", Status: statusRunning},
		{ID: "2", Name: "copy:index.html", Status: statusCompleted},
		{ID: "3", Name: "descriptor", Status: statusFailed},
		{ID: "4", Name: "dir:WEB-INF", Status: statusCached, Cached: true},
		{ID: "5", Name: "archive", Status: statusPending},
	}

	output := m.View()
	t.Logf("View output:\n%s", output)

	assert.Contains(t, output, "unpack:rack-2.2.8")
	assert.Contains(t, output, "copy:index.html")
	assert.Contains(t, output, "descriptor")
	assert.Contains(t, output, "dir:WEB-INF")
	assert.Contains(t, output, "archive")

	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "✗")
	assert.Contains(t, output, "~")
	assert.Contains(t, output, "○")

	// Selection cursor sits on the first row.
	assert.Contains(t, output, "›")
}

func TestModel_View_ExpandedLogs(t *testing.T) {
	m := NewModel(&fakeTape{})
	m.width = 80
	m.height = 20

	const vID = "task-1"
	m.vertices = []VertexState{
		{ID: vID, Name: "unpack:rack-2.2.8", Status: statusRunning, Expanded: true},
	}
	m.logs[vID] = []string{
		"first line",
		"second line",
		"third line",
	}

	output := m.View()

	assert.Contains(t, output, "first line")
	assert.Contains(t, output, "third line")

	// Only the tail survives once the buffer outgrows the limit.
	m.logs[vID] = []string{"aa", "bb", "cc", "dd", "ee", "ff", "gg"}
	output = m.View()
	assert.NotContains(t, output, "aa")
	assert.NotContains(t, output, "bb")
	assert.Contains(t, output, "cc")
	assert.Contains(t, output, "gg")

	// Collapsed tasks show no logs at all.
	m.vertices[0].Expanded = false
	output = m.View()
	assert.NotContains(t, output, "gg")
}

func TestModel_View_LogFiltering(t *testing.T) {
	m := NewModel(&fakeTape{})
	m.vertices = []VertexState{
		{ID: "1", Name: "unpack:rack-2.2.8", Status: statusRunning, Expanded: true},
	}
	m.logs["1"] = []string{
		"[DEBUG] debug message",
		"[INFO] info message",
		"[WARN] warn message",
		"[ERROR] error message",
	}

	m.MinLogLevel = domain.LogLevelInfo
	output := m.View()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")

	m.MinLogLevel = domain.LogLevelError
	output = m.View()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.NotContains(t, output, "warn message")
	assert.Contains(t, output, "error message")

	m.MinLogLevel = domain.LogLevelDebug
	output = m.View()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
}

func TestModel_View_WindowFollowsSelection(t *testing.T) {
	m := NewModel(&fakeTape{})
	m.height = 3
	m.vertices = []VertexState{
		{ID: "1", Name: "copy:page-1.css"},
		{ID: "2", Name: "copy:page-2.css"},
		{ID: "3", Name: "copy:page-3.css"},
		{ID: "4", Name: "copy:page-4.css"},
		{ID: "5", Name: "copy:page-5.css"},
	}

	m.SelectedIdx = 0
	output := m.View()
	assert.Contains(t, output, "page-1")
	assert.Contains(t, output, "page-2")
	assert.Contains(t, output, "page-3")
	assert.NotContains(t, output, "page-4")
	assert.NotContains(t, output, "page-5")

	// Selecting the last row shifts the window to the end of the list.
	m.SelectedIdx = 4
	output = m.View()
	assert.NotContains(t, output, "page-1")
	assert.NotContains(t, output, "page-2")
	assert.NotContains(t, output, "page-3")
	assert.Contains(t, output, "page-4")
	assert.Contains(t, output, "page-5")
}

func TestLogLineLevel(t *testing.T) {
	assert.Equal(t, domain.LogLevelDebug, logLineLevel("[DEBUG] x"))
	assert.Equal(t, domain.LogLevelInfo, logLineLevel("[INFO] x"))
	assert.Equal(t, domain.LogLevelWarn, logLineLevel("[WARN] x"))
	assert.Equal(t, domain.LogLevelError, logLineLevel("[ERROR] x"))
	assert.Equal(t, domain.LogLevelInfo, logLineLevel("unprefixed output"))
}
