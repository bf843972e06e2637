package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wolfprint3d/mako/internal/adapters/config" //nolint:depguard // Wired in app layer
	"github.com/wolfprint3d/mako/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"github.com/wolfprint3d/mako/internal/adapters/state"  //nolint:depguard // Wired in app layer
	"github.com/wolfprint3d/mako/internal/core/ports"
	"github.com/wolfprint3d/mako/internal/engine/lifecycle"
	"github.com/wolfprint3d/mako/internal/targets"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer
// needs access to.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lifecycle.NodeID,
			state.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			engine, err := graft.Dep[*lifecycle.Engine](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[*state.Store](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, engine, targets.NewRegistry(), store), nil
		},
	})

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
