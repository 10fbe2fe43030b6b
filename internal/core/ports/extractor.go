package ports

import (
	"context"

	"github.com/warpack/warpack/internal/core/domain"
)

// Extractor drives the external tool that unpacks a package archive into
// the staging tree.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type Extractor interface {
	// Unpack extracts the package archive into destDir. The command is
	// the configured extraction argv with the placeholders {archive} and
	// {dest} still unexpanded. The identity is attached to errors.
	Unpack(ctx context.Context, command []string, pkg domain.PackageIdentity, archivePath, destDir string) error
}
