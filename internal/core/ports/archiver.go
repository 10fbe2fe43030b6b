// Package ports defines the core interfaces for the application.
package ports

import "context"

// Archiver drives the external archive tool that turns the staging tree
// into the final deployable artifact.
//
//go:generate mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks
type Archiver interface {
	// Create builds the archive at outputPath from the staging directory.
	// The command is the configured archiver argv with the placeholders
	// {output} and {dir} still unexpanded.
	Create(ctx context.Context, command []string, stagingDir, outputPath string) error
}
