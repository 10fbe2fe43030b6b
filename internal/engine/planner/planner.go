// Package planner turns a validated project configuration into the
// staging task graph.
package planner

import (
	"maps"
	"path"
	"path/filepath"
	"slices"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Planner builds the staging task graph for a project configuration. The
// graph it returns is validated: acyclic, every prerequisite present, and
// the execution order deterministic across runs.
type Planner struct {
	scanner ports.SourceScanner
	index   ports.PackageIndex
}

// NewPlanner creates a new Planner.
func NewPlanner(scanner ports.SourceScanner, index ports.PackageIndex) *Planner {
	return &Planner{
		scanner: scanner,
		index:   index,
	}
}

// Plan produces the task graph that stages, describes, and archives the
// configured application.
func (p *Planner) Plan(cfg *domain.Config) (*domain.Graph, error) {
	b := newBuilder(p.scanner, p.index, cfg)

	if err := b.stageFiles(); err != nil {
		return nil, err
	}
	if err := b.stagePackages(); err != nil {
		return nil, err
	}

	return b.assemble()
}

// builder accumulates tasks while a plan is generated. Directory tasks are
// deduplicated by destination so that shared parents exist exactly once,
// and every destination is tracked so that conflicting sources are caught
// before anything executes.
type builder struct {
	scanner ports.SourceScanner
	index   ports.PackageIndex
	cfg     *domain.Config

	dirs     map[string]*dirEntry
	copies   map[string]*copyEntry
	unpacks  []domain.Task
	resolved *domain.ResolvedPackageSet
}

// category records which aggregate target a staged file or directory
// belongs to.
type category uint8

const (
	catApplication category = iota
	catStatic
	catPackage
)

type dirEntry struct {
	task   domain.Task
	source string
	app    bool
	static bool
}

type copyEntry struct {
	task domain.Task
	cat  category
}

func newBuilder(scanner ports.SourceScanner, index ports.PackageIndex, cfg *domain.Config) *builder {
	b := &builder{
		scanner:  scanner,
		index:    index,
		cfg:      cfg,
		dirs:     make(map[string]*dirEntry),
		copies:   make(map[string]*copyEntry),
		resolved: domain.NewResolvedPackageSet(),
	}
	// The staging root itself is a task so that even an empty plan
	// materializes the directory.
	_, _ = b.ensureDir(".")
	return b
}

// ensureDir returns the name of the directory task covering a
// staging-relative destination, creating the task and its parent chain on
// first use.
func (b *builder) ensureDir(destRel string) (domain.InternedString, error) {
	destRel = path.Clean(destRel)
	if entry, ok := b.dirs[destRel]; ok {
		return entry.task.Name, nil
	}
	if existing, ok := b.copies[destRel]; ok {
		return domain.InternedString{}, conflictAt(destRel, existing.task.Source, "")
	}

	task := domain.Task{
		Name:        domain.DirTaskName(destRel),
		Kind:        domain.KindCreateDirectory,
		Destination: b.abs(destRel),
	}
	if destRel != "." {
		parent, err := b.ensureDir(path.Dir(destRel))
		if err != nil {
			return domain.InternedString{}, err
		}
		task.Prerequisites = []domain.InternedString{parent}
	}

	b.dirs[destRel] = &dirEntry{task: task}
	return task.Name, nil
}

// abs converts a staging-relative destination into the absolute path the
// task will produce.
func (b *builder) abs(destRel string) string {
	return filepath.Join(b.cfg.StagingDir, filepath.FromSlash(destRel))
}

// assemble adds the accumulated tasks to a fresh graph together with the
// aggregate, descriptor, and archive tasks, then validates the result.
func (b *builder) assemble() (*domain.Graph, error) {
	descriptorRel := path.Clean(filepath.ToSlash(b.cfg.Descriptor.OutputPath))
	if existing, ok := b.copies[descriptorRel]; ok {
		return nil, conflictAt(descriptorRel, existing.task.Source, "deployment descriptor")
	}
	if dir, ok := b.dirs[descriptorRel]; ok {
		return nil, conflictAt(descriptorRel, dir.source, "deployment descriptor")
	}

	g := domain.NewGraph()

	dirRels := slices.Sorted(maps.Keys(b.dirs))
	for _, rel := range dirRels {
		task := b.dirs[rel].task
		if err := g.AddTask(&task); err != nil {
			return nil, err
		}
	}

	copyRels := slices.Sorted(maps.Keys(b.copies))
	for _, rel := range copyRels {
		task := b.copies[rel].task
		if err := g.AddTask(&task); err != nil {
			return nil, err
		}
	}

	for i := range b.unpacks {
		if err := g.AddTask(&b.unpacks[i]); err != nil {
			return nil, err
		}
	}

	packagesAgg := domain.Task{
		Name: domain.NewInternedString(domain.TargetPackages),
		Kind: domain.KindAggregate,
	}
	for _, task := range b.unpacks {
		packagesAgg.Prerequisites = append(packagesAgg.Prerequisites, task.Name)
	}

	applicationAgg := domain.Task{
		Name:          domain.NewInternedString(domain.TargetApplication),
		Kind:          domain.KindAggregate,
		Prerequisites: []domain.InternedString{packagesAgg.Name},
	}
	staticAgg := domain.Task{
		Name: domain.NewInternedString(domain.TargetStatic),
		Kind: domain.KindAggregate,
	}

	for _, rel := range copyRels {
		entry := b.copies[rel]
		switch entry.cat {
		case catApplication:
			applicationAgg.Prerequisites = append(applicationAgg.Prerequisites, entry.task.Name)
		case catStatic:
			staticAgg.Prerequisites = append(staticAgg.Prerequisites, entry.task.Name)
		case catPackage:
			// Reached through its unpack task.
		}
	}
	for _, rel := range dirRels {
		entry := b.dirs[rel]
		if entry.app {
			applicationAgg.Prerequisites = append(applicationAgg.Prerequisites, entry.task.Name)
		}
		if entry.static {
			staticAgg.Prerequisites = append(staticAgg.Prerequisites, entry.task.Name)
		}
	}

	descriptorTask := domain.Task{
		Name:          domain.NewInternedString(domain.TargetDescriptor),
		Kind:          domain.KindRenderDescriptor,
		Prerequisites: []domain.InternedString{applicationAgg.Name, staticAgg.Name},
		Source:        b.cfg.Descriptor.TemplatePath,
		Destination:   b.abs(descriptorRel),
		Packages:      b.resolved.Identities(),
	}

	archiveTask := domain.Task{
		Name: domain.NewInternedString(domain.TargetArchive),
		Kind: domain.KindArchive,
		Prerequisites: []domain.InternedString{
			applicationAgg.Name,
			staticAgg.Name,
			descriptorTask.Name,
		},
		Source:      b.cfg.StagingDir,
		Destination: b.cfg.Archive.OutputPath,
	}

	for _, task := range []*domain.Task{&packagesAgg, &applicationAgg, &staticAgg, &descriptorTask, &archiveTask} {
		if err := g.AddTask(task); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// conflictAt builds the error for two producers claiming the same staging
// destination.
func conflictAt(destRel, existing, conflicting string) error {
	err := zerr.With(domain.ErrDestinationConflict, "destination", destRel)
	if existing != "" {
		err = zerr.With(err, "existing_source", existing)
	}
	if conflicting != "" {
		err = zerr.With(err, "conflicting_source", conflicting)
	}
	return err
}
