// Package fs provides file system adapters for scanning, staging, and hashing files.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceScanner = (*Scanner)(nil)

// Scanner enumerates source files on the local filesystem.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ScanTree walks the tree rooted at root and returns every file and
// directory beneath it, including root itself, in lexical order.
func (s *Scanner) ScanTree(root string) ([]domain.SourceEntry, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(domain.ErrSourceMissing, "path", root)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat source root"), "path", root)
	}

	var entries []domain.SourceEntry
	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Version control bookkeeping never belongs in a staged tree.
		if d.IsDir() && path != root && skipName(d.Name()) {
			return filepath.SkipDir
		}

		entries = append(entries, domain.SourceEntry{Path: path, IsDir: d.IsDir()})
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk source tree"), "path", root)
	}

	return entries, nil
}

// Glob matches a doublestar pattern against the tree rooted at root and
// returns the matching entries in lexical order.
func (s *Scanner) Glob(root, pattern string) ([]domain.SourceEntry, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
	if err != nil {
		return nil, zerr.With(domain.ErrInvalidPattern, "pattern", pattern)
	}

	entries := make([]domain.SourceEntry, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				// Dangling symlinks can match a pattern; skip them.
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat match"), "path", match)
		}
		entries = append(entries, domain.SourceEntry{Path: match, IsDir: info.IsDir()})
	}

	return entries, nil
}

func skipName(name string) bool {
	return name == ".git" || name == ".jj"
}
