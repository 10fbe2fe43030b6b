package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/warpack/warpack/internal/core/ports"
)

const (
	// ExtractorNodeID is the unique identifier for the extractor Graft node.
	ExtractorNodeID graft.ID = "adapter.extractor"

	// ArchiverNodeID is the unique identifier for the archiver Graft node.
	ArchiverNodeID graft.ID = "adapter.archiver"
)

func init() {
	graft.Register(graft.Node[ports.Extractor]{
		ID:        ExtractorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Extractor, error) {
			return NewExtractor(), nil
		},
	})

	graft.Register(graft.Node[ports.Archiver]{
		ID:        ArchiverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Archiver, error) {
			return NewArchiver(), nil
		},
	})
}
