package pkgindex_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warpack/warpack/internal/adapters/pkgindex"
	"github.com/warpack/warpack/internal/core/domain"
)

func TestDirectoryIndex_Find_ResolvesPackage(t *testing.T) {
	repoDir := newRepository(t)
	writeSpec(t, repoDir, "rails-7.0.4.yaml", `
name: rails
version: 7.0.4
dependencies:
  - name: activesupport
    version: "= 7.0.4"
  - name: rack
    version: ">= 2.2, < 3"
`)

	index := pkgindex.NewDirectoryIndex()

	res, err := index.Find(repoDir, requirement(t, "rails", ""))
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, domain.PackageIdentity{Name: "rails", Version: "7.0.4"}, res.Identity)
	assert.Equal(t, filepath.Join(repoDir, domain.SpecificationsDirName, "rails-7.0.4.yaml"), res.SpecPath)
	assert.Equal(t, filepath.Join(repoDir, domain.RepositoryCacheDirName, "rails-7.0.4.gem"), res.ArchivePath)

	require.Len(t, res.Dependencies, 2)
	assert.Equal(t, "activesupport", res.Dependencies[0].Name)
	assert.Equal(t, "= 7.0.4", res.Dependencies[0].Constraint.String())
	assert.Equal(t, "rack", res.Dependencies[1].Name)
	assert.Equal(t, ">= 2.2, < 3", res.Dependencies[1].Constraint.String())
}

func TestDirectoryIndex_Find_HighestVersionWins(t *testing.T) {
	repoDir := newRepository(t)
	writeRack(t, repoDir, "2.1.4")
	writeRack(t, repoDir, "2.2.8")
	writeRack(t, repoDir, "2.2.10")

	index := pkgindex.NewDirectoryIndex()

	res, err := index.Find(repoDir, requirement(t, "rack", ""))
	require.NoError(t, err)

	assert.Equal(t, "2.2.10", res.Identity.Version, "2.2.10 sorts above 2.2.8 numerically")
}

func TestDirectoryIndex_Find_ConstraintFiltering(t *testing.T) {
	repoDir := newRepository(t)
	writeRack(t, repoDir, "2.1.4")
	writeRack(t, repoDir, "2.2.8")
	writeRack(t, repoDir, "2.2.10")

	index := pkgindex.NewDirectoryIndex()

	tests := []struct {
		constraint  string
		wantVersion string
	}{
		{constraint: ">= 2.2, < 2.2.10", wantVersion: "2.2.8"},
		{constraint: "~> 2.1.0", wantVersion: "2.1.4"},
		{constraint: "= 2.2.8", wantVersion: "2.2.8"},
		{constraint: "!= 2.2.10", wantVersion: "2.2.8"},
		{constraint: "< 2.2", wantVersion: "2.1.4"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			res, err := index.Find(repoDir, requirement(t, "rack", tt.constraint))
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, res.Identity.Version)
		})
	}
}

func TestDirectoryIndex_Find_NameIsNotFooledByPrefixes(t *testing.T) {
	repoDir := newRepository(t)
	writeRack(t, repoDir, "2.2.8")
	writeSpec(t, repoDir, "rack-protection-3.0.5.yaml", `
name: rack-protection
version: 3.0.5
`)

	index := pkgindex.NewDirectoryIndex()

	res, err := index.Find(repoDir, requirement(t, "rack", ""))
	require.NoError(t, err)
	assert.Equal(t, domain.PackageIdentity{Name: "rack", Version: "2.2.8"}, res.Identity)

	res, err = index.Find(repoDir, requirement(t, "rack-protection", ""))
	require.NoError(t, err)
	assert.Equal(t, domain.PackageIdentity{Name: "rack-protection", Version: "3.0.5"}, res.Identity)
}

func TestDirectoryIndex_Find_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) (repoDir string, req domain.Requirement)
	}{
		{
			name: "unknown package",
			setup: func(t *testing.T) (string, domain.Requirement) {
				t.Helper()
				repoDir := newRepository(t)
				writeRack(t, repoDir, "2.2.8")
				return repoDir, requirement(t, "sinatra", "")
			},
		},
		{
			name: "no version satisfies the constraint",
			setup: func(t *testing.T) (string, domain.Requirement) {
				t.Helper()
				repoDir := newRepository(t)
				writeRack(t, repoDir, "2.2.8")
				return repoDir, requirement(t, "rack", ">= 3.0")
			},
		},
		{
			name: "repository does not exist",
			setup: func(t *testing.T) (string, domain.Requirement) {
				t.Helper()
				return filepath.Join(t.TempDir(), "nowhere"), requirement(t, "rack", "")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoDir, req := tt.setup(t)
			index := pkgindex.NewDirectoryIndex()

			res, err := index.Find(repoDir, req)
			require.ErrorIs(t, err, domain.ErrPackageNotFound)
			assert.Nil(t, res)
		})
	}
}

func TestDirectoryIndex_Find_CorruptSpecs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid yaml",
			content: `
name: [ rack
`,
		},
		{
			name: "missing package name",
			content: `
version: 2.2.8
`,
		},
		{
			name: "missing version",
			content: `
name: rack
`,
		},
		{
			name: "malformed dependency constraint",
			content: `
name: rack
version: 2.2.8
dependencies:
  - name: webrick
    version: "~> beta"
`,
		},
		{
			name: "dependency without a name",
			content: `
name: rack
version: 2.2.8
dependencies:
  - version: ">= 1.0"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoDir := newRepository(t)
			writeSpec(t, repoDir, "rack-2.2.8.yaml", tt.content)
			index := pkgindex.NewDirectoryIndex()

			res, err := index.Find(repoDir, requirement(t, "rack", ""))
			require.Error(t, err)
			require.ErrorContains(t, err, domain.ErrSpecParseFailed.Error())
			assert.Nil(t, res)
		})
	}
}

// Helpers.

func newRepository(t *testing.T) string {
	t.Helper()
	repoDir := t.TempDir()
	err := os.MkdirAll(filepath.Join(repoDir, domain.SpecificationsDirName), domain.DirPerm)
	require.NoError(t, err)
	return repoDir
}

func writeSpec(t *testing.T, repoDir, fileName, content string) {
	t.Helper()
	path := filepath.Join(repoDir, domain.SpecificationsDirName, fileName)
	err := os.WriteFile(path, []byte(content), domain.PrivateFilePerm)
	require.NoError(t, err)
}

func writeRack(t *testing.T, repoDir, version string) {
	t.Helper()
	writeSpec(t, repoDir, "rack-"+version+".yaml", `
name: rack
version: `+version+`
`)
}

func requirement(t *testing.T, name, constraint string) domain.Requirement {
	t.Helper()
	c, err := domain.ParseConstraint(constraint)
	require.NoError(t, err)
	return domain.Requirement{Name: name, Constraint: c}
}
