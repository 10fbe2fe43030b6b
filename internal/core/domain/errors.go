package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingPrerequisite is returned when a task references a prerequisite that doesn't exist in the graph.
	ErrMissingPrerequisite = zerr.New("missing prerequisite")

	// ErrCycleDetected is returned when a cycle is detected in the task graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrNoTargetsSpecified is returned when a run is requested without any target tasks.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrTaskExecutionFailed is returned when a staging task fails during a run.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrUnsupportedTaskKind is returned when the runner meets a task kind it cannot dispatch.
	ErrUnsupportedTaskKind = zerr.New("unsupported task kind")

	// ErrDestinationConflict is returned when two different sources map to the same staging destination.
	ErrDestinationConflict = zerr.New("destination conflict")

	// ErrSourceMissing is returned when a configured source file or directory does not exist.
	ErrSourceMissing = zerr.New("source missing")

	// ErrInvalidPattern is returned when an include or exclude glob pattern is malformed.
	ErrInvalidPattern = zerr.New("invalid glob pattern")

	// ErrPackageNotFound is returned when no installed package satisfies a requirement.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrConstraintConflict is returned when requirements resolve the same package to different versions.
	ErrConstraintConflict = zerr.New("conflicting version constraints")

	// ErrInvalidConstraint is returned when a version constraint cannot be parsed.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrDuplicateRequirement is returned when the same package is required more than once in the configuration.
	ErrDuplicateRequirement = zerr.New("duplicate package requirement")

	// ErrSpecParseFailed is returned when a package specification file cannot be parsed.
	ErrSpecParseFailed = zerr.New("failed to parse package specification")

	// ErrUnpackFailed is returned when the external unpack command fails.
	ErrUnpackFailed = zerr.New("unpack command failed")

	// ErrArchiveFailed is returned when the external archive command fails.
	ErrArchiveFailed = zerr.New("archive command failed")

	// ErrRenderFailed is returned when the deployment descriptor cannot be rendered.
	ErrRenderFailed = zerr.New("failed to render deployment descriptor")

	// ErrTemplateParseFailed is returned when a descriptor template cannot be parsed.
	ErrTemplateParseFailed = zerr.New("failed to parse descriptor template")

	// ErrCopyFailed is returned when a staged file cannot be copied to its destination.
	ErrCopyFailed = zerr.New("failed to copy file")

	// ErrDirCreateFailed is returned when a staging directory cannot be created.
	ErrDirCreateFailed = zerr.New("failed to create directory")

	// ErrConfigNotFound is returned when the configuration file cannot be found.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrMissingApplicationName is returned when the configuration has no application name.
	ErrMissingApplicationName = zerr.New("missing application name")

	// ErrInvalidApplicationName is returned when the application name contains invalid characters.
	ErrInvalidApplicationName = zerr.New("application name can only contain alphanumeric characters, hyphens and underscores")

	// ErrMissingSourceRoots is returned when the configuration declares no application source roots.
	ErrMissingSourceRoots = zerr.New("missing source roots")

	// ErrMissingStagingDir is returned when the configuration declares no staging directory.
	ErrMissingStagingDir = zerr.New("missing staging directory")

	// ErrMissingRepositoryDir is returned when packages are required but no repository directory is configured.
	ErrMissingRepositoryDir = zerr.New("missing package repository directory")

	// ErrMissingRequirementName is returned when a package requirement has no name.
	ErrMissingRequirementName = zerr.New("missing package requirement name")

	// ErrInvalidDescriptorPath is returned when the descriptor output path escapes the staging directory.
	ErrInvalidDescriptorPath = zerr.New("descriptor output path must stay inside the staging directory")

	// ErrManifestReadFailed is returned when the staging manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read staging manifest")

	// ErrManifestParseFailed is returned when the staging manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse staging manifest")

	// ErrManifestWriteFailed is returned when the staging manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write staging manifest")

	// ErrManifestMismatch is returned when the staging tree does not match the recorded manifest.
	ErrManifestMismatch = zerr.New("staging tree does not match manifest")
)
