package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/warpack/warpack/internal/core/ports"
)

const (
	ScannerNodeID       graft.ID = "adapter.fs.scanner"
	StagerNodeID        graft.ID = "adapter.fs.stager"
	HasherNodeID        graft.ID = "adapter.fs.hasher"
	ManifestStoreNodeID graft.ID = "adapter.fs.manifeststore"
)

func init() {
	// Scanner Node (concrete implementation also needed by Hasher)
	graft.Register(graft.Node[*Scanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Scanner, error) {
			return NewScanner(), nil
		},
	})

	// Stager Node
	graft.Register(graft.Node[ports.Stager]{
		ID:        StagerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Stager, error) {
			return NewStager(), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ScannerNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			scanner, err := graft.Dep[*Scanner](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(scanner), nil
		},
	})

	// ManifestStore Node
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        ManifestStoreNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ManifestStore, error) {
			return NewManifestStore(), nil
		},
	})
}
