// Package pkgindex resolves package requirements against a local package
// repository on disk.
package pkgindex

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DirectoryIndex implements ports.PackageIndex over the conventional
// repository layout: specification files under specifications/ and package
// archives under cache/.
type DirectoryIndex struct{}

var _ ports.PackageIndex = (*DirectoryIndex)(nil)

// NewDirectoryIndex creates a new DirectoryIndex.
func NewDirectoryIndex() *DirectoryIndex {
	return &DirectoryIndex{}
}

type candidate struct {
	version    domain.Version
	resolution domain.PackageResolution
}

// Find resolves a requirement against the repository at repoDir. When
// several installed versions satisfy the constraint the highest one wins.
func (i *DirectoryIndex) Find(repoDir string, req domain.Requirement) (*domain.PackageResolution, error) {
	specsDir := filepath.Join(repoDir, domain.SpecificationsDirName)

	entries, err := os.ReadDir(specsDir)
	if err != nil {
		nfErr := zerr.With(domain.ErrPackageNotFound, "package", req.Name)
		return nil, zerr.With(nfErr, "repository", repoDir)
	}

	candidates, err := i.collectCandidates(repoDir, specsDir, entries, req)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		nfErr := zerr.With(domain.ErrPackageNotFound, "package", req.Name)
		nfErr = zerr.With(nfErr, "repository", repoDir)
		if !req.Constraint.IsAny() {
			nfErr = zerr.With(nfErr, "constraint", req.Constraint.String())
		}
		return nil, nfErr
	}

	// Ascending sort, last wins: the highest satisfying version is
	// selected deterministically regardless of directory order.
	slices.SortFunc(candidates, func(a, b candidate) int {
		return a.version.Compare(b.version)
	})
	best := candidates[len(candidates)-1].resolution
	return &best, nil
}

func (i *DirectoryIndex) collectCandidates(repoDir, specsDir string, entries []os.DirEntry, req domain.Requirement) ([]candidate, error) {
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, domain.SpecFileSuffix) {
			continue
		}
		// Package names may themselves contain hyphens, so the file
		// name prefix only narrows the search. The declared name
		// inside the specification decides.
		if !strings.HasPrefix(name, req.Name+"-") {
			continue
		}

		specPath := filepath.Join(specsDir, name)
		spec, version, err := readSpec(specPath)
		if err != nil {
			return nil, err
		}
		if spec.Name != req.Name {
			continue
		}
		if !req.Constraint.Matches(version) {
			continue
		}

		dependencies, err := specDependencies(specPath, spec)
		if err != nil {
			return nil, err
		}

		identity := domain.PackageIdentity{Name: spec.Name, Version: version.String()}
		candidates = append(candidates, candidate{
			version: version,
			resolution: domain.PackageResolution{
				Identity:     identity,
				SpecPath:     specPath,
				ArchivePath:  filepath.Join(repoDir, domain.RepositoryCacheDirName, domain.PackageArchiveName(identity)),
				Dependencies: dependencies,
			},
		})
	}
	return candidates, nil
}

func readSpec(specPath string) (*SpecFile, domain.Version, error) {
	// #nosec G304 -- specPath is derived from the configured repository
	data, err := os.ReadFile(specPath)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrSpecParseFailed.Error())
		return nil, domain.Version{}, zerr.With(err, "spec", specPath)
	}

	var spec SpecFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		err = zerr.Wrap(err, domain.ErrSpecParseFailed.Error())
		return nil, domain.Version{}, zerr.With(err, "spec", specPath)
	}

	if spec.Name == "" {
		err := zerr.With(domain.ErrSpecParseFailed, "spec", specPath)
		return nil, domain.Version{}, zerr.With(err, "reason", "missing package name")
	}

	version, err := domain.ParseVersion(spec.Version)
	if err != nil {
		err = zerr.With(err, "spec", specPath)
		return nil, domain.Version{}, zerr.Wrap(err, domain.ErrSpecParseFailed.Error())
	}

	return &spec, version, nil
}

func specDependencies(specPath string, spec *SpecFile) ([]domain.Requirement, error) {
	if len(spec.Dependencies) == 0 {
		return nil, nil
	}

	requirements := make([]domain.Requirement, 0, len(spec.Dependencies))
	for _, dep := range spec.Dependencies {
		if dep.Name == "" {
			err := zerr.With(domain.ErrSpecParseFailed, "spec", specPath)
			return nil, zerr.With(err, "reason", "dependency without a name")
		}
		constraint, err := domain.ParseConstraint(dep.Version)
		if err != nil {
			err = zerr.With(err, "spec", specPath)
			err = zerr.With(err, "dependency", dep.Name)
			return nil, zerr.Wrap(err, domain.ErrSpecParseFailed.Error())
		}
		requirements = append(requirements, domain.Requirement{Name: dep.Name, Constraint: constraint})
	}
	return requirements, nil
}
