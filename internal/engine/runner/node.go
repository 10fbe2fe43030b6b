package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/warpack/warpack/internal/adapters/descriptor"         //nolint:depguard // Wired in engine wiring
	"github.com/warpack/warpack/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"github.com/warpack/warpack/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"github.com/warpack/warpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"github.com/warpack/warpack/internal/core/ports"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.StagerNodeID,
			shell.ExtractorNodeID,
			shell.ArchiverNodeID,
			descriptor.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			stager, err := graft.Dep[ports.Stager](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}

			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}

			renderer, err := graft.Dep[ports.DescriptorRenderer](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(stager, extractor, archiver, renderer, telemetry), nil
		},
	})
}
