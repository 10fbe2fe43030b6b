// Package tui provides a terminal user interface for visualizing staging
// progress. It consumes the recorded task stream and renders a live task
// list with expandable per-task logs.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

// TapeSource is a blocking reader over recorded status updates. The telemetry
// feed implements it; anything else that can replay updates works too.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// WaitForTape returns a Bubble Tea command that reads the next update from
// the source. It returns MsgTapeUpdate on success and MsgTapeEnded once the
// source reports EOF. Any other read error also ends the stream; run
// failures reach the user through the task results, not the display.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			return MsgTapeEnded{}
		}
		return MsgTapeUpdate{Update: update}
	}
}
