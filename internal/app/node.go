package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/warpack/warpack/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"github.com/warpack/warpack/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"github.com/warpack/warpack/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"github.com/warpack/warpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/warpack/warpack/internal/core/ports"
	"github.com/warpack/warpack/internal/engine/planner"
	"github.com/warpack/warpack/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			planner.NodeID,
			runner.NodeID,
			fs.HasherNodeID,
			fs.ManifestStoreNodeID,
			progrock.NodeID,
			progrock.FeedNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	plnr, err := graft.Dep[*planner.Planner](ctx)
	if err != nil {
		return nil, err
	}

	rnr, err := graft.Dep[*runner.Runner](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	feed, err := graft.Dep[*progrock.Feed](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, plnr, rnr, hasher, manifests, telemetry, feed, log), nil
}
