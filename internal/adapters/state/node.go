package state

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wolfprint3d/mako/internal/adapters/config"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the package store Graft node.
	NodeID graft.ID = "adapter.state_store"
	// HasherNodeID is the unique identifier for the fingerprinter Graft node.
	HasherNodeID graft.ID = "adapter.state_hasher"
)

func init() {
	// The store starts on the default path; the app rebinds it when the
	// profile overrides state_file.
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Store, error) {
			return NewStore(config.DefaultStateFile), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewFingerprinter(), nil
		},
	})
}
