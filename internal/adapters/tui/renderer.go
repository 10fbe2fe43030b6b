package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/warpack/warpack/internal/core/ports"
)

var _ ports.ProgressRenderer = (*Renderer)(nil)

// Renderer wraps the Bubble Tea program as a ports.ProgressRenderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a renderer around the given model. Program options
// are passed through, which lets tests run headless.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	program := tea.NewProgram(model, opts...)
	return &Renderer{
		program: program,
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the display in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the display to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the display has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
