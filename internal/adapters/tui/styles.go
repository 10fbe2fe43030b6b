package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/warpack/warpack/internal/ui/style"
)

var (
	// Task status styles.
	runningStyle = lipgloss.NewStyle().
			Foreground(style.Copper).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	failedStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	cachedStyle = lipgloss.NewStyle().
			Foreground(style.Ash).
			Faint(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(style.Ash)

	// Selection cursor.
	cursorStyle = lipgloss.NewStyle().
			Foreground(style.Copper).
			Bold(true)

	// Expanded log lines under a task.
	logLineStyle = lipgloss.NewStyle().
			Foreground(style.Ash).
			Faint(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(style.Copper)
)
