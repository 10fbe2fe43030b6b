package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"

	"github.com/warpack/warpack/internal/core/domain"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
	statusCached    = "cached"
	statusPending   = "pending"
)

// verbosityStep is the distance between adjacent log levels, mirroring slog.
const verbosityStep domain.LogLevel = 4

// VertexState represents the current state of one staging task in the display.
type VertexState struct {
	ID       string
	Name     string
	Status   string
	Cached   bool
	Expanded bool
}

func (s *VertexState) isTerminal() bool {
	return s.Status == statusCompleted || s.Status == statusFailed || s.Status == statusCached
}

// Model is the Bubble Tea model driving the staging progress display. It
// pulls updates from a TapeSource, keeps one VertexState per recorded task
// and collects the log lines each task emits.
type Model struct {
	tape     TapeSource
	vertices []VertexState
	logs     map[string][]string
	width    int
	height   int
	spinner  spinner.Model

	// SelectedIdx is the position of the selection cursor in the task list.
	SelectedIdx int
	// MinLogLevel hides expanded log lines below this severity.
	MinLogLevel domain.LogLevel
}

// NewModel creates a progress model reading from the given tape source.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return &Model{
		tape:        tape,
		logs:        make(map[string][]string),
		spinner:     s,
		MinLogLevel: domain.LogLevelInfo,
	}
}

// Init starts the tape read loop and the spinner animation.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case MsgTapeUpdate:
		return m.handleTapeUpdate(msg)
	case MsgVertexStarted:
		return m.handleVertexStarted(msg)
	case MsgVertexCompleted:
		return m.handleVertexCompleted(msg)
	case MsgLogReceived:
		return m.handleLogReceived(msg)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.moveSelection(1)
	case "up", "k":
		m.moveSelection(-1)
	case "enter", " ":
		m.toggleSelected()
	case "+":
		m.adjustVerbosity(-verbosityStep)
	case "-":
		m.adjustVerbosity(verbosityStep)
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	if len(m.vertices) == 0 {
		return
	}
	m.SelectedIdx = (m.SelectedIdx + delta + len(m.vertices)) % len(m.vertices)
}

func (m *Model) toggleSelected() {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.vertices) {
		m.vertices[m.SelectedIdx].Expanded = !m.vertices[m.SelectedIdx].Expanded
	}
}

func (m *Model) adjustVerbosity(delta domain.LogLevel) {
	lvl := m.MinLogLevel + delta
	if lvl < domain.LogLevelDebug {
		lvl = domain.LogLevelDebug
	}
	if lvl > domain.LogLevelError {
		lvl = domain.LogLevelError
	}
	m.MinLogLevel = lvl
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	return m, nil
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleTapeUpdate applies the raw update to the vertex list and re-emits
// the observed transitions as typed messages, then schedules the next read.
func (m *Model) handleTapeUpdate(msg MsgTapeUpdate) (tea.Model, tea.Cmd) {
	cmds := m.applyUpdate(msg.Update)
	cmds = append(cmds, WaitForTape(m.tape))
	return m, tea.Batch(cmds...)
}

func (m *Model) applyUpdate(update *progrock.StatusUpdate) []tea.Cmd {
	var cmds []tea.Cmd
	for _, v := range update.GetVertexes() {
		if v.Internal {
			continue
		}
		if msg := m.applyVertex(v); msg != nil {
			cmds = append(cmds, emit(msg))
		}
	}
	for _, l := range update.GetLogs() {
		for _, msg := range logMessages(l) {
			cmds = append(cmds, emit(msg))
		}
	}
	return cmds
}

// applyVertex records the vertex and reports the transition it represents,
// if any. Repeated updates for a vertex already in a terminal state are
// ignored so late flushes cannot flip a settled task.
func (m *Model) applyVertex(v *progrock.Vertex) tea.Msg {
	idx := m.indexOf(v.Id)
	if idx < 0 {
		m.vertices = append(m.vertices, VertexState{ID: v.Id, Name: v.Name, Status: statusRunning})
		if v.Completed == nil {
			return MsgVertexStarted{ID: v.Id, Name: v.Name}
		}
		idx = len(m.vertices) - 1
	}

	state := &m.vertices[idx]
	if v.Cached {
		state.Cached = true
	}
	if v.Completed == nil || state.isTerminal() {
		return nil
	}

	switch {
	case v.Error != nil:
		state.Status = statusFailed
		return MsgVertexCompleted{ID: v.Id, Err: errors.New(*v.Error)}
	case state.Cached:
		state.Status = statusCached
		return MsgVertexCompleted{ID: v.Id}
	default:
		state.Status = statusCompleted
		return MsgVertexCompleted{ID: v.Id}
	}
}

// handleVertexStarted moves the expanded log pane to the task that just
// started, so focus follows activity until the user navigates manually.
func (m *Model) handleVertexStarted(msg MsgVertexStarted) (tea.Model, tea.Cmd) {
	for i := range m.vertices {
		m.vertices[i].Expanded = m.vertices[i].ID == msg.ID
	}
	return m, nil
}

// handleVertexCompleted collapses the logs of a task that succeeded and
// keeps (or makes) them visible when it failed.
func (m *Model) handleVertexCompleted(msg MsgVertexCompleted) (tea.Model, tea.Cmd) {
	for i := range m.vertices {
		if m.vertices[i].ID == msg.ID {
			m.vertices[i].Expanded = msg.Err != nil
		}
	}
	return m, nil
}

func (m *Model) handleLogReceived(msg MsgLogReceived) (tea.Model, tea.Cmd) {
	m.logs[msg.VertexID] = append(m.logs[msg.VertexID], msg.Text)
	return m, nil
}

func (m *Model) indexOf(id string) int {
	for i := range m.vertices {
		if m.vertices[i].ID == id {
			return i
		}
	}
	return -1
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func logMessages(l *progrock.VertexLog) []tea.Msg {
	var msgs []tea.Msg
	for line := range strings.Lines(string(l.Data)) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		msgs = append(msgs, MsgLogReceived{VertexID: l.Vertex, Stream: l.Stream, Text: line})
	}
	return msgs
}
