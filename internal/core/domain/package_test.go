package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warpack/warpack/internal/core/domain"
	"go.trai.ch/zerr"
)

func resolution(name, version string) domain.PackageResolution {
	return domain.PackageResolution{
		Identity:    domain.PackageIdentity{Name: name, Version: version},
		SpecPath:    "/repo/specifications/" + name + "-" + version + ".yaml",
		ArchivePath: "/repo/cache/" + name + "-" + version + ".pkg",
	}
}

func TestPackageIdentity_String(t *testing.T) {
	id := domain.PackageIdentity{Name: "alpha", Version: "1.2.0"}
	assert.Equal(t, "alpha-1.2.0", id.String())
}

func TestRequirement_String(t *testing.T) {
	req := domain.Requirement{Name: "alpha"}
	assert.Equal(t, "alpha", req.String())

	req.Constraint = mustConstraint(t, ">= 1.2")
	assert.Equal(t, "alpha >= 1.2", req.String())
}

func TestResolvedPackageSet_Add(t *testing.T) {
	set := domain.NewResolvedPackageSet()

	require.NoError(t, set.Add(resolution("alpha", "1.2.0")))
	assert.True(t, set.Contains(domain.PackageIdentity{Name: "alpha", Version: "1.2.0"}))
	assert.Equal(t, 1, set.Len())

	v, ok := set.VersionOf("alpha")
	require.True(t, ok)
	assert.Equal(t, "1.2.0", v)

	// Re-adding the same identity is idempotent.
	require.NoError(t, set.Add(resolution("alpha", "1.2.0")))
	assert.Equal(t, 1, set.Len())
}

func TestResolvedPackageSet_ConflictingVersions(t *testing.T) {
	set := domain.NewResolvedPackageSet()
	require.NoError(t, set.Add(resolution("alpha", "1.2.0")))

	err := set.Add(resolution("alpha", "2.0.0"))
	require.ErrorIs(t, err, domain.ErrConstraintConflict)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "alpha", zErr.Metadata()["package"])
	assert.Equal(t, "1.2.0", zErr.Metadata()["pinned_version"])
	assert.Equal(t, "2.0.0", zErr.Metadata()["conflicting_version"])

	// The set keeps the first resolution.
	v, ok := set.VersionOf("alpha")
	require.True(t, ok)
	assert.Equal(t, "1.2.0", v)
}

func TestResolvedPackageSet_SortedAccessors(t *testing.T) {
	set := domain.NewResolvedPackageSet()
	require.NoError(t, set.Add(resolution("zeta", "1.0")))
	require.NoError(t, set.Add(resolution("alpha", "1.2.0")))
	require.NoError(t, set.Add(resolution("beta", "0.9")))

	ids := set.Identities()
	require.Len(t, ids, 3)
	assert.Equal(t, "alpha", ids[0].Name)
	assert.Equal(t, "beta", ids[1].Name)
	assert.Equal(t, "zeta", ids[2].Name)

	res := set.Resolutions()
	require.Len(t, res, 3)
	assert.Equal(t, "alpha-1.2.0", res[0].Identity.String())
	assert.Equal(t, "zeta-1.0", res[2].Identity.String())
}
