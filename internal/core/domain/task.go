package domain

import "path"

// TaskKind classifies what a task does when it executes.
type TaskKind uint8

const (
	// KindAggregate groups other tasks and performs no work of its own.
	KindAggregate TaskKind = iota
	// KindCreateDirectory ensures a staging directory exists.
	KindCreateDirectory
	// KindCopyFile copies a single source file into the staging tree.
	KindCopyFile
	// KindUnpackPackage extracts an installed package into the staging tree.
	KindUnpackPackage
	// KindRenderDescriptor renders the deployment descriptor.
	KindRenderDescriptor
	// KindArchive invokes the external archiver on the staging tree.
	KindArchive
)

// String returns a short human-readable name for the kind.
func (k TaskKind) String() string {
	switch k {
	case KindAggregate:
		return "aggregate"
	case KindCreateDirectory:
		return "dir"
	case KindCopyFile:
		return "copy"
	case KindUnpackPackage:
		return "unpack"
	case KindRenderDescriptor:
		return "descriptor"
	case KindArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// Task represents a unit of work in the staging graph.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name          InternedString
	Kind          TaskKind
	Prerequisites []InternedString

	// Source is the absolute path read by copy and unpack tasks.
	Source string
	// Destination is the absolute path produced by the task.
	Destination string

	// Package identifies the package an unpack task extracts.
	Package PackageIdentity
	// Packages lists the resolved package set a descriptor task renders.
	Packages []PackageIdentity
}

// Well-known target names addressable from the command line.
const (
	TargetPackages    = "packages"
	TargetApplication = "application"
	TargetStatic      = "static"
	TargetDescriptor  = "descriptor"
	TargetArchive     = "archive"
)

// CopyTaskName derives the task name for a file copied to the given
// staging-relative destination. Destinations are slash-separated.
func CopyTaskName(destRel string) InternedString {
	return NewInternedString("copy:" + path.Clean(destRel))
}

// DirTaskName derives the task name for a staging directory.
func DirTaskName(destRel string) InternedString {
	return NewInternedString("dir:" + path.Clean(destRel))
}

// UnpackTaskName derives the task name for extracting the given package.
func UnpackTaskName(id PackageIdentity) InternedString {
	return NewInternedString("unpack:" + id.String())
}

// SpecTaskName derives the task name for staging a package specification.
func SpecTaskName(id PackageIdentity) InternedString {
	return NewInternedString("spec:" + id.String())
}
