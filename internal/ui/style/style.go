// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Copper = lipgloss.Color("#C2703D")
	Ash    = lipgloss.Color("#6B7280")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#101418")
	Green  = lipgloss.Color("#1F9D55")
	Red    = lipgloss.Color("#CC3D2E")
	Yellow = lipgloss.Color("#D97706")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)
