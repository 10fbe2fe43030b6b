package domain

// Config is the validated project configuration. All paths are resolved
// against the directory containing the configuration file, so consumers
// never see the raw relative values from warpack.yaml.
type Config struct {
	// Application is the deployable application name.
	Application string

	// Root is the absolute project root directory.
	Root string

	// StagingDir is the absolute directory the archive tree is staged into.
	StagingDir string

	// SourceRoots are the absolute application source directories staged
	// under WEB-INF.
	SourceRoots []string

	// PublicRoot is the absolute directory staged at the top level of the
	// archive. Empty when the project has no public assets.
	PublicRoot string

	// Includes are glob patterns, relative to Root, of extra files to stage.
	Includes []string

	// Excludes are glob patterns, relative to Root, removing files from
	// staging. Excludes always win over includes.
	Excludes []string

	// Descriptor configures deployment descriptor rendering.
	Descriptor DescriptorConfig

	// Archive configures the final archive step.
	Archive ArchiveConfig

	// Packages configures package resolution and unpacking.
	Packages PackagesConfig
}

// DescriptorConfig configures how the deployment descriptor is produced.
type DescriptorConfig struct {
	// TemplatePath is the absolute path of a custom descriptor template.
	// Empty selects the built-in template.
	TemplatePath string

	// OutputPath is the staging-relative path of the rendered descriptor.
	OutputPath string
}

// ArchiveConfig configures the external archiver invocation.
type ArchiveConfig struct {
	// OutputPath is the absolute path of the archive to produce.
	OutputPath string

	// Command is the archiver argv. The placeholders {output} and {dir}
	// are replaced with the archive path and the staging directory.
	Command []string
}

// PackagesConfig configures package staging.
type PackagesConfig struct {
	// RepositoryDir is the absolute path of the local package repository.
	RepositoryDir string

	// Transitive controls whether dependencies of required packages are
	// resolved and staged as well.
	Transitive bool

	// UnpackCommand is the extraction argv. The placeholders {archive}
	// and {dest} are replaced with the package archive path and the
	// destination directory.
	UnpackCommand []string

	// Requirements are the packages the application depends on.
	Requirements []Requirement
}
