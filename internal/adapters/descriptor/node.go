package descriptor

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/warpack/warpack/internal/core/ports"
)

// NodeID is the unique identifier for the descriptor renderer Graft node.
const NodeID graft.ID = "adapter.descriptor"

func init() {
	graft.Register(graft.Node[ports.DescriptorRenderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DescriptorRenderer, error) {
			return NewRenderer(), nil
		},
	})
}
