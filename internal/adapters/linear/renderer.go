// Package linear provides a line-oriented progress renderer for CI and
// other non-interactive environments. It consumes the telemetry feed and
// prints chronological, task-prefixed lines.
package linear

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"

	"github.com/warpack/warpack/internal/core/ports"
	"github.com/warpack/warpack/internal/ui/output"
	"github.com/warpack/warpack/internal/ui/style"
)

// TapeSource is a blocking reader over recorded status updates.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

var _ ports.ProgressRenderer = (*Renderer)(nil)

// Renderer prints one line per task transition plus any log output the
// tasks emit. Lines are buffered per task so interleaved writes from
// parallel tasks stay readable.
type Renderer struct {
	tape  TapeSource
	w     io.Writer
	color *termenv.Output
	errCh chan error

	mu    sync.Mutex
	tasks map[string]*taskState
}

type taskState struct {
	name    string
	started time.Time
	buffer  bytes.Buffer
	done    bool
}

// NewRenderer creates a renderer writing to w, which defaults to stderr.
func NewRenderer(tape TapeSource, w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}

	return &Renderer{
		tape:  tape,
		w:     w,
		color: output.New(w),
		errCh: make(chan error, 1),
		tasks: make(map[string]*taskState),
	}
}

// Start launches the feed consumer in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		r.errCh <- r.consume()
	}()
	return nil
}

// Stop flushes buffered partial lines of tasks that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		r.flushLocked(task)
	}
	return nil
}

// Wait blocks until the feed has been drained.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

func (r *Renderer) consume() error {
	for {
		update, err := r.tape.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		r.apply(update)
	}
}

func (r *Renderer) apply(update *progrock.StatusUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range update.GetVertexes() {
		if v.Internal {
			continue
		}
		r.applyVertexLocked(v)
	}
	for _, l := range update.GetLogs() {
		r.appendLogLocked(l)
	}
}

// applyVertexLocked announces new tasks and reports finished ones. Repeated
// updates for a task already reported as finished are ignored.
func (r *Renderer) applyVertexLocked(v *progrock.Vertex) {
	task, ok := r.tasks[v.Id]
	if !ok {
		task = &taskState{name: v.Name}
		if v.Started != nil {
			task.started = v.Started.AsTime()
		}
		r.tasks[v.Id] = task
		if v.Completed == nil {
			r.printfLocked("%s started\n", r.prefix(task.name))
		}
	}

	if v.Completed == nil || task.done {
		return
	}
	task.done = true
	r.flushLocked(task)

	switch {
	case v.Error != nil:
		symbol := r.color.String(style.Cross).Foreground(termenv.ANSIRed).String()
		r.printfLocked("%s %s failed%s: %s\n", r.prefix(task.name), symbol, r.elapsed(task, v), *v.Error)
	case v.Cached:
		symbol := r.color.String(style.Tilde).Faint().String()
		r.printfLocked("%s %s cached\n", r.prefix(task.name), symbol)
	default:
		symbol := r.color.String(style.Check).Foreground(termenv.ANSIGreen).String()
		r.printfLocked("%s %s done%s\n", r.prefix(task.name), symbol, r.elapsed(task, v))
	}
}

// appendLogLocked buffers log data and prints complete lines as they form.
func (r *Renderer) appendLogLocked(l *progrock.VertexLog) {
	task, ok := r.tasks[l.Vertex]
	if !ok {
		return
	}

	task.buffer.Write(l.Data)
	for {
		line, err := task.buffer.ReadBytes('\n')
		if err != nil {
			// Put the incomplete line back until the rest arrives.
			task.buffer.Write(line)
			break
		}
		r.printLineLocked(task.name, line)
	}
}

func (r *Renderer) flushLocked(task *taskState) {
	if task.buffer.Len() == 0 {
		return
	}
	r.printLineLocked(task.name, task.buffer.Bytes())
	task.buffer.Reset()
}

func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return
	}
	r.printfLocked("%s %s\n", r.prefix(name), line)
}

func (r *Renderer) printfLocked(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Renderer) prefix(name string) string {
	return r.color.String("[" + name + "]").Faint().String()
}

func (r *Renderer) elapsed(task *taskState, v *progrock.Vertex) string {
	if task.started.IsZero() || v.Completed == nil {
		return ""
	}
	d := v.Completed.AsTime().Sub(task.started).Round(time.Millisecond)
	return fmt.Sprintf(" in %v", d)
}
