package domain

// SourceEntry is a single file or directory found while scanning project
// sources. Path is absolute.
type SourceEntry struct {
	Path  string
	IsDir bool
}

// DescriptorData is the input to deployment descriptor rendering.
type DescriptorData struct {
	// Application is the deployable application name.
	Application string

	// Packages are the staged packages, sorted by name then version.
	Packages []PackageIdentity
}
