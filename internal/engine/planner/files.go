package planner

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/warpack/warpack/internal/core/domain"
	"go.trai.ch/zerr"
)

// stageFiles emits the directory and copy tasks for everything the source
// roots, the public root, and the include patterns contribute to the
// staging tree. Excludes are applied last and always win.
func (b *builder) stageFiles() error {
	entries, err := b.enumerate()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if b.stagingArtifact(entry.Path) {
			continue
		}

		rel := b.relToRoot(entry.Path)
		excluded, err := b.excluded(rel)
		if err != nil {
			return err
		}
		if excluded {
			continue
		}

		destRel, static := b.destination(entry.Path, rel)
		if entry.IsDir {
			if err := b.stageDir(entry.Path, destRel, static); err != nil {
				return err
			}
			continue
		}
		if err := b.stageCopy(entry.Path, destRel, static); err != nil {
			return err
		}
	}
	return nil
}

// enumerate walks every configured source exactly once. The public root is
// scanned like a source root; entries found by more than one scan or
// include pattern are deduplicated by source path.
func (b *builder) enumerate() ([]domain.SourceEntry, error) {
	roots := make([]string, 0, len(b.cfg.SourceRoots)+1)
	roots = append(roots, b.cfg.SourceRoots...)
	if b.cfg.PublicRoot != "" {
		roots = append(roots, b.cfg.PublicRoot)
	}

	seen := make(map[string]struct{})
	var entries []domain.SourceEntry
	add := func(found []domain.SourceEntry) {
		for _, entry := range found {
			if _, ok := seen[entry.Path]; ok {
				continue
			}
			seen[entry.Path] = struct{}{}
			entries = append(entries, entry)
		}
	}

	for _, root := range roots {
		scanned, err := b.scanner.ScanTree(root)
		if err != nil {
			return nil, err
		}
		add(scanned)
	}

	for _, pattern := range b.cfg.Includes {
		matched, err := b.scanner.Glob(b.cfg.Root, pattern)
		if err != nil {
			return nil, err
		}
		add(matched)
	}

	return entries, nil
}

// stagingArtifact reports whether a scanned path is an output of a
// previous run. Staging output must never feed the next plan, or the tree
// would grow on every run.
func (b *builder) stagingArtifact(src string) bool {
	if _, ok := within(b.cfg.StagingDir, src); ok {
		return true
	}
	if src == b.cfg.Archive.OutputPath {
		return true
	}
	return src == domain.ManifestPath(b.cfg.StagingDir)
}

// relToRoot returns the slash-separated path of src relative to the
// project root, the identity exclude patterns match against. Sources
// living outside the root keep a stable identity derived from their source
// root's base name.
func (b *builder) relToRoot(src string) string {
	if rel, ok := within(b.cfg.Root, src); ok {
		return rel
	}
	for _, root := range b.cfg.SourceRoots {
		if rel, ok := within(root, src); ok {
			return path.Join(filepath.Base(root), rel)
		}
	}
	if b.cfg.PublicRoot != "" {
		if rel, ok := within(b.cfg.PublicRoot, src); ok {
			return path.Join(filepath.Base(b.cfg.PublicRoot), rel)
		}
	}
	return filepath.Base(src)
}

// excluded reports whether the project-relative path matches any exclude
// pattern.
func (b *builder) excluded(rel string) (bool, error) {
	for _, pattern := range b.cfg.Excludes {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			werr := zerr.With(domain.ErrInvalidPattern, "pattern", pattern)
			return false, zerr.With(werr, "path", rel)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// destination maps a source path to its staging-relative destination.
// Sources under the public root stage at the archive's top level; every
// other source stages under WEB-INF.
func (b *builder) destination(src, rel string) (destRel string, static bool) {
	if b.cfg.PublicRoot != "" {
		if pubRel, ok := within(b.cfg.PublicRoot, src); ok {
			return pubRel, true
		}
	}
	return path.Join(domain.WebInfDirName, rel), false
}

// stageDir records an enumerated source directory and its aggregate
// membership.
func (b *builder) stageDir(src, destRel string, static bool) error {
	if _, err := b.ensureDir(destRel); err != nil {
		return err
	}

	entry := b.dirs[path.Clean(destRel)]
	if entry.source == "" {
		entry.source = src
	}
	if static {
		entry.static = true
	} else {
		entry.app = true
	}
	return nil
}

// stageCopy emits a copy task for a single file, guarding against two
// sources claiming the same destination.
func (b *builder) stageCopy(src, destRel string, static bool) error {
	destRel = path.Clean(destRel)
	if existing, ok := b.copies[destRel]; ok {
		if existing.task.Source == src {
			return nil
		}
		return conflictAt(destRel, existing.task.Source, src)
	}
	if dir, ok := b.dirs[destRel]; ok {
		return conflictAt(destRel, dir.source, src)
	}

	parent, err := b.ensureDir(path.Dir(destRel))
	if err != nil {
		return err
	}

	cat := catApplication
	if static {
		cat = catStatic
	}
	b.copies[destRel] = &copyEntry{
		task: domain.Task{
			Name:          domain.CopyTaskName(destRel),
			Kind:          domain.KindCopyFile,
			Prerequisites: []domain.InternedString{parent},
			Source:        src,
			Destination:   b.abs(destRel),
		},
		cat: cat,
	}
	return nil
}

// within returns p's slash-separated path relative to base when p is base
// itself or nested beneath it.
func within(base, p string) (string, bool) {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
