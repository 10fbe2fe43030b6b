package shell

import (
	"context"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Extractor implements ports.Extractor by running the configured
// extraction command.
type Extractor struct{}

var _ ports.Extractor = (*Extractor)(nil)

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Unpack extracts the package archive into destDir. The archive path
// carries the exact resolved version, so repeated runs against the same
// repository unpack identical content.
func (e *Extractor) Unpack(ctx context.Context, command []string, pkg domain.PackageIdentity, archivePath, destDir string) error {
	argv := expandCommand(command, []placeholder{
		{token: tokenArchive, value: archivePath},
		{token: tokenDest, value: destDir},
	})

	if err := runCommand(ctx, argv, domain.ErrUnpackFailed); err != nil {
		return zerr.With(err, "package", pkg.String())
	}
	return nil
}
