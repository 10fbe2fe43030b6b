package tui

import "github.com/vito/progrock"

// MsgVertexStarted is sent when a staging task begins execution.
type MsgVertexStarted struct {
	ID   string
	Name string
}

// MsgVertexCompleted is sent when a staging task finishes execution.
type MsgVertexCompleted struct {
	ID  string
	Err error
}

// MsgLogReceived is sent for each log line a task emits.
type MsgLogReceived struct {
	VertexID string
	Stream   progrock.LogStream
	Text     string
}

// MsgTapeUpdate wraps the raw update read from the telemetry feed.
type MsgTapeUpdate struct {
	Update *progrock.StatusUpdate
}

// MsgTapeEnded is sent when the telemetry feed has been closed and drained.
type MsgTapeEnded struct{}
