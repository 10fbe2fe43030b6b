package planner

import (
	"path"
	"path/filepath"

	"github.com/warpack/warpack/internal/core/domain"
)

// stagePackages resolves the configured package requirements and emits the
// specification-copy and unpack tasks for every resolved package.
func (b *builder) stagePackages() error {
	for _, req := range b.cfg.Packages.Requirements {
		if err := b.resolveRequirement(req); err != nil {
			return err
		}
	}
	return nil
}

// resolveRequirement pins one requirement and, when transitive staging is
// enabled, walks its dependency closure depth-first. Identities already in
// the resolved set are skipped, which deduplicates shared dependencies and
// terminates dependency cycles.
//
// Every requirement is resolved against the index independently, so the
// outcome never depends on the order requirements are declared or
// discovered in: two constraints on the same name either agree on one
// version or the plan is rejected.
func (b *builder) resolveRequirement(req domain.Requirement) error {
	res, err := b.index.Find(b.cfg.Packages.RepositoryDir, req)
	if err != nil {
		return err
	}

	if b.resolved.Contains(res.Identity) {
		return nil
	}
	if err := b.resolved.Add(*res); err != nil {
		return err
	}
	if err := b.addPackageTasks(res); err != nil {
		return err
	}

	if !b.cfg.Packages.Transitive {
		return nil
	}
	for _, dep := range res.Dependencies {
		if err := b.resolveRequirement(dep); err != nil {
			return err
		}
	}
	return nil
}

// addPackageTasks emits the specification copy and the unpack task for a
// freshly resolved package. The unpack task lists the specification copy
// as a prerequisite so that the packages aggregate transitively covers
// both.
func (b *builder) addPackageTasks(res *domain.PackageResolution) error {
	id := res.Identity
	packagesRel := filepath.ToSlash(domain.PackagesStagingDir())
	specsRel := filepath.ToSlash(domain.SpecificationsStagingDir())

	packagesDir, err := b.ensureDir(packagesRel)
	if err != nil {
		return err
	}
	specsDir, err := b.ensureDir(specsRel)
	if err != nil {
		return err
	}

	specDest := path.Join(specsRel, domain.SpecFileName(id))
	if existing, ok := b.copies[specDest]; ok {
		return conflictAt(specDest, existing.task.Source, res.SpecPath)
	}
	specTask := domain.Task{
		Name:          domain.SpecTaskName(id),
		Kind:          domain.KindCopyFile,
		Prerequisites: []domain.InternedString{specsDir},
		Source:        res.SpecPath,
		Destination:   b.abs(specDest),
	}
	b.copies[specDest] = &copyEntry{task: specTask, cat: catPackage}

	b.unpacks = append(b.unpacks, domain.Task{
		Name:          domain.UnpackTaskName(id),
		Kind:          domain.KindUnpackPackage,
		Prerequisites: []domain.InternedString{packagesDir, specTask.Name},
		Source:        res.ArchivePath,
		Destination:   b.abs(packagesRel),
		Package:       id,
	})
	return nil
}
