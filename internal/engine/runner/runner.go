// Package runner executes the staging task graph.
package runner

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusCached indicates the task found its output already up to date.
	StatusCached TaskStatus = "Cached"
)

// Runner executes tasks in prerequisite order with bounded parallelism.
// It dispatches each task kind to the matching collaborator and records
// every execution as a telemetry vertex.
type Runner struct {
	stager    ports.Stager
	extractor ports.Extractor
	archiver  ports.Archiver
	renderer  ports.DescriptorRenderer
	telemetry ports.Telemetry

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewRunner creates a new Runner with the given collaborators.
func NewRunner(
	stager ports.Stager,
	extractor ports.Extractor,
	archiver ports.Archiver,
	renderer ports.DescriptorRenderer,
	telemetry ports.Telemetry,
) *Runner {
	return &Runner{
		stager:     stager,
		extractor:  extractor,
		archiver:   archiver,
		renderer:   renderer,
		telemetry:  telemetry,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

// initTaskStatuses initializes the status of the selected tasks to Pending.
func (r *Runner) initTaskStatuses(tasks map[domain.InternedString]domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range tasks {
		r.taskStatus[name] = StatusPending
	}
}

// updateStatus updates the status of a task.
func (r *Runner) updateStatus(name domain.InternedString, status TaskStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskStatus[name] = status
}

// Run executes the prerequisite closure of the named targets. Targets may
// be aggregate names such as "archive" or any individual task name from
// the plan. A parallelism below one selects the number of CPUs.
//
// A failed task never unblocks its dependents: the run drains what is
// already in flight and returns every failure joined into one error.
func (r *Runner) Run(
	ctx context.Context,
	cfg *domain.Config,
	graph *domain.Graph,
	targetNames []string,
	parallelism int,
) error {
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}
	// Revalidate so the execution order and the reverse edge index are
	// populated even for a graph built elsewhere.
	if err := graph.Validate(); err != nil {
		return err
	}
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}

	state, err := r.newRunState(ctx, cfg, graph, targetNames, parallelism)
	if err != nil {
		return err
	}

	r.initTaskStatuses(state.tasks)

	return state.runExecutionLoop()
}

type result struct {
	task   domain.InternedString
	err    error
	cached bool
}

type runState struct {
	graph       *domain.Graph
	cfg         *domain.Config
	inDegree    map[domain.InternedString]int
	tasks       map[domain.InternedString]domain.Task
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	parallelism int
	r           *Runner
}

func (r *Runner) newRunState(
	ctx context.Context,
	cfg *domain.Config,
	graph *domain.Graph,
	targetNames []string,
	parallelism int,
) (*runState, error) {
	selected, err := collectPrerequisites(graph, targetNames)
	if err != nil {
		return nil, err
	}

	inDegree := make(map[domain.InternedString]int, len(selected))
	for name, task := range selected {
		// Count only prerequisites that are part of this run. The
		// closure makes that every one of them, but the guard keeps the
		// loop honest should selection ever narrow.
		degree := 0
		for _, pre := range task.Prerequisites {
			if _, ok := selected[pre]; ok {
				degree++
			}
		}
		inDegree[name] = degree
	}

	var ready []domain.InternedString
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	return &runState{
		graph:       graph,
		cfg:         cfg,
		inDegree:    inDegree,
		tasks:       selected,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		parallelism: parallelism,
		r:           r,
	}, nil
}

// collectPrerequisites gathers the named targets and everything they
// transitively require.
func collectPrerequisites(
	graph *domain.Graph,
	targetNames []string,
) (map[domain.InternedString]domain.Task, error) {
	queue := make([]domain.InternedString, 0, len(targetNames))
	visited := make(map[domain.InternedString]bool, len(targetNames))
	for _, nameStr := range targetNames {
		name := domain.NewInternedString(nameStr)
		if _, ok := graph.GetTask(name); !ok {
			return nil, zerr.With(domain.ErrTaskNotFound, "task", nameStr)
		}
		if !visited[name] {
			visited[name] = true
			queue = append(queue, name)
		}
	}

	selected := make(map[domain.InternedString]domain.Task)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		task, _ := graph.GetTask(name)
		selected[name] = task

		for _, pre := range task.Prerequisites {
			if !visited[pre] {
				visited[pre] = true
				queue = append(queue, pre)
			}
		}
	}

	return selected, nil
}

func (state *runState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.r.updateStatus(taskName, StatusRunning)

		t := state.tasks[taskName]
		go state.executeTask(&t)
	}
}

func (state *runState) executeTask(t *domain.Task) {
	// Complete the vertex before the result is sent so the recording is
	// flushed by the time the run loop observes the task as finished.
	res := func() result {
		ctx, vertex := state.r.telemetry.Record(state.ctx, t.Name.String(), vertexOptions(t)...)

		cached, err := state.r.perform(ctx, state.cfg, t)
		if err != nil {
			vertex.Complete(err)
			return result{task: t.Name, err: err}
		}
		if cached {
			vertex.Cached()
		}
		vertex.Complete(nil)
		return result{task: t.Name, cached: cached}
	}()

	state.resultsCh <- res
}

// vertexOptions hides the grouping-only aggregate tasks from user-facing
// progress output.
func vertexOptions(t *domain.Task) []ports.VertexOption {
	if t.Kind == domain.KindAggregate {
		return []ports.VertexOption{ports.WithInternal()}
	}
	return nil
}

// perform dispatches one task to its collaborator. The cached return
// reports that the task's effect was already in place.
func (r *Runner) perform(ctx context.Context, cfg *domain.Config, t *domain.Task) (cached bool, err error) {
	switch t.Kind {
	case domain.KindAggregate:
		return false, nil

	case domain.KindCreateDirectory:
		created, err := r.stager.EnsureDir(t.Destination)
		if err != nil {
			return false, err
		}
		return !created, nil

	case domain.KindCopyFile:
		copied, err := r.stager.CopyFile(t.Source, t.Destination)
		if err != nil {
			return false, err
		}
		return !copied, nil

	case domain.KindUnpackPackage:
		return false, r.extractor.Unpack(ctx, cfg.Packages.UnpackCommand, t.Package, t.Source, t.Destination)

	case domain.KindRenderDescriptor:
		data := domain.DescriptorData{
			Application: cfg.Application,
			Packages:    t.Packages,
		}
		return false, r.renderer.Render(t.Source, data, t.Destination)

	case domain.KindArchive:
		return false, r.archiver.Create(ctx, cfg.Archive.Command, t.Source, t.Destination)

	default:
		return false, zerr.With(domain.ErrUnsupportedTaskKind, "kind", t.Kind.String())
	}
}

func (state *runState) handleResult(res result) {
	state.active--

	if res.err != nil {
		wrapped := zerr.With(zerr.Wrap(res.err, domain.ErrTaskExecutionFailed.Error()), "task", res.task.String())
		state.errs = errors.Join(state.errs, wrapped)
		state.r.updateStatus(res.task, StatusFailed)
		return
	}

	if res.cached {
		state.r.updateStatus(res.task, StatusCached)
	} else {
		state.r.updateStatus(res.task, StatusCompleted)
	}

	for _, dep := range state.graph.Dependents(res.task) {
		if _, ok := state.tasks[dep]; ok {
			state.inDegree[dep]--
			if state.inDegree[dep] == 0 {
				state.ready = append(state.ready, dep)
			}
		}
	}
}
