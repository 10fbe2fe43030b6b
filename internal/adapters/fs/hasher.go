package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content digests of staged files.
type Hasher struct {
	scanner *Scanner
}

// NewHasher creates a new Hasher.
func NewHasher(scanner *Scanner) *Hasher {
	return &Hasher{scanner: scanner}
}

// FileDigest computes the XXHash digest of a file's content.
func (h *Hasher) FileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// TreeDigests walks the tree rooted at root and digests every file,
// keyed by slash-separated path relative to root. Files are hashed
// concurrently, bounded by the CPU count.
func (h *Hasher) TreeDigests(root string) (domain.Manifest, error) {
	entries, err := h.scanner.ScanTree(root)
	if err != nil {
		return nil, err
	}

	manifest := domain.Manifest{}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, entry := range entries {
		if entry.IsDir {
			continue
		}

		g.Go(func() error {
			digest, err := h.FileDigest(entry.Path)
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(root, entry.Path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to resolve relative path"), "path", entry.Path)
			}

			mu.Lock()
			manifest[filepath.ToSlash(rel)] = digest
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return manifest, nil
}
