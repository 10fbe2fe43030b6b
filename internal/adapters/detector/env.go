// Package detector picks the progress rendering mode for a run.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how staging progress is rendered.
type OutputMode int

const (
	// ModeAuto picks the mode from the environment.
	ModeAuto OutputMode = iota
	// ModeTUI renders the interactive task display.
	ModeTUI
	// ModeLinear prints plain chronological lines, suited to CI logs.
	ModeLinear
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode. Interactive
// terminals get the TUI; anything that is not a TTY, or that declares
// itself a CI runner, gets linear output.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's output mode flag over the detected mode.
// Recognized values are "tui", "linear", "ci", "auto" and empty; anything
// else falls back to detection.
func ResolveMode(detected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	default:
		return detected
	}
}
