package fs

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*ManifestStore)(nil)

// ManifestStore persists staging manifests as JSON files.
type ManifestStore struct{}

// NewManifestStore creates a new ManifestStore.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{}
}

// Write stores the manifest at the given path.
func (m *ManifestStore) Write(path string, manifest domain.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	return nil
}

// Read loads the manifest stored at the given path.
func (m *ManifestStore) Read(path string) (domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestReadFailed, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}

	return manifest, nil
}
