package shell

import (
	"context"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Archiver implements ports.Archiver by running the configured archive
// command.
type Archiver struct{}

var _ ports.Archiver = (*Archiver)(nil)

// NewArchiver creates a new Archiver.
func NewArchiver() *Archiver {
	return &Archiver{}
}

// Create builds the archive at outputPath from the staging directory.
func (a *Archiver) Create(ctx context.Context, command []string, stagingDir, outputPath string) error {
	argv := expandCommand(command, []placeholder{
		{token: tokenOutput, value: outputPath},
		{token: tokenDir, value: stagingDir},
	})

	if err := runCommand(ctx, argv, domain.ErrArchiveFailed); err != nil {
		return zerr.With(err, "output", outputPath)
	}
	return nil
}
