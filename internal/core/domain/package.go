package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// PackageIdentity pins a package to an exact resolved version.
type PackageIdentity struct {
	// Name is the canonical package name (e.g., "alpha").
	Name string

	// Version is the exact resolved version string (e.g., "1.2.0").
	Version string
}

// String returns the conventional "<name>-<version>" form used for task
// names and staging directory names.
func (id PackageIdentity) String() string {
	return id.Name + "-" + id.Version
}

// Requirement represents a declared dependency on a package before
// resolution (e.g., from warpack.yaml or another package's specification).
type Requirement struct {
	// Name is the package name as requested.
	Name string

	// Constraint restricts the acceptable versions. The zero value
	// accepts every version.
	Constraint Constraint
}

// String returns the requirement in "<name> <constraint>" form.
func (r Requirement) String() string {
	if r.Constraint.IsAny() {
		return r.Name
	}
	return r.Name + " " + r.Constraint.String()
}

// PackageResolution is the index's answer for one requirement: the pinned
// identity plus everything the planner needs to stage the package.
type PackageResolution struct {
	// Identity is the resolved name and exact version.
	Identity PackageIdentity

	// SpecPath is the local path of the package's specification file.
	SpecPath string

	// ArchivePath is the local path of the package archive to unpack.
	ArchivePath string

	// Dependencies lists the package's own declared requirements.
	Dependencies []Requirement
}

// ResolvedPackageSet accumulates package resolutions during planning and
// enforces that every package name pins to a single version.
type ResolvedPackageSet struct {
	resolutions map[PackageIdentity]PackageResolution
	versions    map[string]string
}

// NewResolvedPackageSet creates an empty set.
func NewResolvedPackageSet() *ResolvedPackageSet {
	return &ResolvedPackageSet{
		resolutions: make(map[PackageIdentity]PackageResolution),
		versions:    make(map[string]string),
	}
}

// Contains reports whether the exact identity is already in the set.
func (s *ResolvedPackageSet) Contains(id PackageIdentity) bool {
	_, ok := s.resolutions[id]
	return ok
}

// VersionOf returns the pinned version for a package name, if any.
func (s *ResolvedPackageSet) VersionOf(name string) (string, bool) {
	v, ok := s.versions[name]
	return v, ok
}

// Add records a resolution. It returns ErrConstraintConflict if the
// package name is already pinned to a different version.
func (s *ResolvedPackageSet) Add(res PackageResolution) error {
	id := res.Identity
	if pinned, ok := s.versions[id.Name]; ok && pinned != id.Version {
		err := zerr.With(ErrConstraintConflict, "package", id.Name)
		err = zerr.With(err, "pinned_version", pinned)
		err = zerr.With(err, "conflicting_version", id.Version)
		return err
	}
	s.resolutions[id] = res
	s.versions[id.Name] = id.Version
	return nil
}

// Len returns the number of resolved packages.
func (s *ResolvedPackageSet) Len() int {
	return len(s.resolutions)
}

// Identities returns the resolved identities sorted by name then version.
func (s *ResolvedPackageSet) Identities() []PackageIdentity {
	ids := make([]PackageIdentity, 0, len(s.resolutions))
	for id := range s.resolutions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b PackageIdentity) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Version, b.Version)
	})
	return ids
}

// Resolutions returns the resolutions sorted by name then version.
func (s *ResolvedPackageSet) Resolutions() []PackageResolution {
	res := make([]PackageResolution, 0, len(s.resolutions))
	for _, r := range s.resolutions {
		res = append(res, r)
	}
	slices.SortFunc(res, func(a, b PackageResolution) int {
		if c := strings.Compare(a.Identity.Name, b.Identity.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Identity.Version, b.Identity.Version)
	})
	return res
}
