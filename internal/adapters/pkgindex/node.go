package pkgindex

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/warpack/warpack/internal/core/ports"
)

// NodeID is the unique identifier for the package index Graft node.
const NodeID graft.ID = "adapter.pkgindex"

func init() {
	graft.Register(graft.Node[ports.PackageIndex]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageIndex, error) {
			return NewDirectoryIndex(), nil
		},
	})
}
