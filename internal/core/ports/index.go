package ports

import "github.com/warpack/warpack/internal/core/domain"

// PackageIndex locates installed packages in a local package repository.
//
//go:generate mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type PackageIndex interface {
	// Find resolves a requirement against the repository at repoDir.
	// When several installed versions satisfy the constraint the highest
	// one wins. It returns domain.ErrPackageNotFound when nothing matches.
	Find(repoDir string, req domain.Requirement) (*domain.PackageResolution, error)
}
