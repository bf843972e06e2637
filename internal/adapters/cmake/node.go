package cmake

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wolfprint3d/mako/internal/adapters/logger"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// NodeID is the unique identifier for the CMake adapter Graft node.
const NodeID graft.ID = "adapter.cmake"

func init() {
	graft.Register(graft.Node[ports.NativeBuilder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.NativeBuilder, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
