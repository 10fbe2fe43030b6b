package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "warpack.yaml"

	// WebInfDirName is the protected directory inside the staging tree.
	WebInfDirName = "WEB-INF"

	// PackagesDirName is the directory under WEB-INF holding unpacked packages.
	PackagesDirName = "packages"

	// SpecificationsDirName is the directory holding package specification files,
	// both in the repository and in the staging tree.
	SpecificationsDirName = "specifications"

	// RepositoryCacheDirName is the directory in a package repository holding
	// the downloaded package archives.
	RepositoryCacheDirName = "cache"

	// DescriptorFileName is the default deployment descriptor file name.
	DescriptorFileName = "web.xml"

	// ArchiveSuffix is the extension of the produced web application archive.
	ArchiveSuffix = ".war"

	// ManifestSuffix is appended to the staging directory path to name the
	// staging manifest file.
	ManifestSuffix = ".manifest.json"

	// SpecFileSuffix is the extension of package specification files.
	SpecFileSuffix = ".yaml"

	// PackageArchiveSuffix is the extension of package archives in the
	// repository cache.
	PackageArchiveSuffix = ".gem"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// PackagesStagingDir returns the staging-relative directory that receives
// unpacked packages. It joins WEB-INF and packages.
func PackagesStagingDir() string {
	return filepath.Join(WebInfDirName, PackagesDirName)
}

// SpecificationsStagingDir returns the staging-relative directory that
// receives staged package specifications.
// It joins WEB-INF, packages, and specifications.
func SpecificationsStagingDir() string {
	return filepath.Join(WebInfDirName, PackagesDirName, SpecificationsDirName)
}

// DefaultDescriptorPath returns the default staging-relative path of the
// rendered deployment descriptor. It joins WEB-INF and web.xml.
func DefaultDescriptorPath() string {
	return filepath.Join(WebInfDirName, DescriptorFileName)
}

// ManifestPath returns the manifest file path for a staging directory.
func ManifestPath(stagingDir string) string {
	return filepath.Clean(stagingDir) + ManifestSuffix
}

// SpecFileName returns the repository file name of a package specification.
func SpecFileName(id PackageIdentity) string {
	return id.String() + SpecFileSuffix
}

// PackageArchiveName returns the repository cache file name of a package
// archive.
func PackageArchiveName(id PackageIdentity) string {
	return id.String() + PackageArchiveSuffix
}
