package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Stager = (*Stager)(nil)

// Stager performs staging tree writes on the local filesystem.
type Stager struct{}

// NewStager creates a new Stager.
func NewStager() *Stager {
	return &Stager{}
}

// EnsureDir creates the directory and any missing parents. It reports
// true when the directory was created.
func (s *Stager) EnsureDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, nil
		}
		err := zerr.With(domain.ErrDestinationConflict, "path", path)
		return false, zerr.With(err, "reason", "a file occupies the directory path")
	}
	if !errors.Is(err, iofs.ErrNotExist) {
		return false, zerr.With(zerr.Wrap(err, "failed to stat directory"), "path", path)
	}

	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrDirCreateFailed.Error()), "path", path)
	}

	return true, nil
}

// CopyFile copies src to dst unless dst already exists and is no older
// than src. It reports true when the file was copied.
func (s *Stager) CopyFile(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, zerr.With(domain.ErrSourceMissing, "path", src)
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat source"), "path", src)
	}

	if dstInfo, err := os.Stat(dst); err == nil {
		if !dstInfo.ModTime().Before(srcInfo.ModTime()) {
			return false, nil
		}
	}

	if err := s.copyContents(src, dst, srcInfo); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "source", src)
		return false, zerr.With(err, "destination", dst)
	}

	return true, nil
}

func (s *Stager) copyContents(src, dst string, srcInfo os.FileInfo) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// Preserve the source modification time so later runs can compare
	// timestamps for staleness.
	return os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
}
