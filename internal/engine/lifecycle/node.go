package lifecycle

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wolfprint3d/mako/internal/adapters/cmake"     //nolint:depguard // Wired in engine wiring
	"github.com/wolfprint3d/mako/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/wolfprint3d/mako/internal/adapters/state"     //nolint:depguard // Wired in engine wiring
	"github.com/wolfprint3d/mako/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// NodeID is the unique identifier for the lifecycle engine Graft node.
const NodeID graft.ID = "engine.lifecycle"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cmake.NodeID,
			state.NodeID,
			state.HasherNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			native, err := graft.Dep[ports.NativeBuilder](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[*state.Store](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewEngine(native, store, hasher, tracer, log), nil
		},
	})
}
