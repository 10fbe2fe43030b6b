package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warpack/warpack/internal/adapters/fs"
	"github.com/warpack/warpack/internal/core/domain"
)

func TestStager_EnsureDir(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "WEB-INF", "packages")

		stager := fs.NewStager()
		created, err := stager.EnsureDir(target)
		require.NoError(t, err)
		assert.True(t, created, "first call should create the directory")

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing directory reports no work", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "WEB-INF")
		require.NoError(t, os.MkdirAll(target, 0o750))

		stager := fs.NewStager()
		created, err := stager.EnsureDir(target)
		require.NoError(t, err)
		assert.False(t, created, "existing directory should not be recreated")
	})

	t.Run("file in the way", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "WEB-INF")
		require.NoError(t, os.WriteFile(target, []byte("not a directory"), 0o600))

		stager := fs.NewStager()
		_, err := stager.EnsureDir(target)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDestinationConflict)
	})
}

func TestStager_CopyFile(t *testing.T) {
	t.Run("fresh copy", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "order.rb")
		dst := filepath.Join(tmpDir, "staged.rb")
		require.NoError(t, os.WriteFile(src, []byte("class Order; end"), 0o600))

		stager := fs.NewStager()
		copied, err := stager.CopyFile(src, dst)
		require.NoError(t, err)
		assert.True(t, copied, "missing destination should be copied")

		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "class Order; end", string(content))
	})

	t.Run("up to date destination is skipped", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "order.rb")
		dst := filepath.Join(tmpDir, "staged.rb")
		require.NoError(t, os.WriteFile(src, []byte("class Order; end"), 0o600))

		stager := fs.NewStager()
		copied, err := stager.CopyFile(src, dst)
		require.NoError(t, err)
		require.True(t, copied)

		copied, err = stager.CopyFile(src, dst)
		require.NoError(t, err)
		assert.False(t, copied, "second copy should be skipped")
	})

	t.Run("stale destination is recopied", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "order.rb")
		dst := filepath.Join(tmpDir, "staged.rb")
		require.NoError(t, os.WriteFile(src, []byte("new content"), 0o600))
		require.NoError(t, os.WriteFile(dst, []byte("old content"), 0o600))

		// Age the destination well behind the source.
		past := time.Now().Add(-1 * time.Hour)
		require.NoError(t, os.Chtimes(dst, past, past))

		stager := fs.NewStager()
		copied, err := stager.CopyFile(src, dst)
		require.NoError(t, err)
		assert.True(t, copied, "stale destination should be recopied")

		content, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "new content", string(content))
	})

	t.Run("preserves source modification time", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "order.rb")
		dst := filepath.Join(tmpDir, "staged.rb")
		require.NoError(t, os.WriteFile(src, []byte("content"), 0o600))

		mtime := time.Now().Add(-30 * time.Minute).Truncate(time.Second)
		require.NoError(t, os.Chtimes(src, mtime, mtime))

		stager := fs.NewStager()
		_, err := stager.CopyFile(src, dst)
		require.NoError(t, err)

		info, err := os.Stat(dst)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(mtime), "destination should carry the source mtime")
	})

	t.Run("missing source", func(t *testing.T) {
		tmpDir := t.TempDir()

		stager := fs.NewStager()
		_, err := stager.CopyFile(filepath.Join(tmpDir, "missing.rb"), filepath.Join(tmpDir, "staged.rb"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSourceMissing)
	})
}
