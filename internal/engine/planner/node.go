package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/warpack/warpack/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"github.com/warpack/warpack/internal/adapters/pkgindex" //nolint:depguard // Wired in engine wiring
	"github.com/warpack/warpack/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ScannerNodeID,
			pkgindex.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			scanner, err := graft.Dep[*fs.Scanner](ctx)
			if err != nil {
				return nil, err
			}

			index, err := graft.Dep[ports.PackageIndex](ctx)
			if err != nil {
				return nil, err
			}

			return NewPlanner(scanner, index), nil
		},
	})
}
