package ports

import "github.com/warpack/warpack/internal/core/domain"

// ManifestStore persists the staging manifest next to the staging tree.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Write stores the manifest at the given path.
	Write(path string, m domain.Manifest) error

	// Read loads the manifest stored at the given path. It returns
	// domain.ErrManifestReadFailed when the file does not exist.
	Read(path string) (domain.Manifest, error)
}
