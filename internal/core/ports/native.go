package ports

import (
	"context"

	"github.com/wolfprint3d/mako/internal/core/domain"
)

// BuildJob carries everything the native build system needs for one target.
type BuildJob struct {
	// SourceDir is the target's source tree.
	SourceDir string

	// BuildDir is the out-of-tree build directory for this target.
	BuildDir string

	// Plan is the immutable configure output, injections resolved.
	Plan domain.ConfigurePlan

	// Parallelism bounds the native build's compile jobs.
	Parallelism int
}

// NativeBuilder drives the underlying build tool that actually compiles a
// wrapped library.
//
//go:generate go run go.uber.org/mock/mockgen -source=native.go -destination=mocks/mock_native.go -package=mocks
type NativeBuilder interface {
	// Configure generates the native build tree from the job's plan.
	Configure(ctx context.Context, job BuildJob) error

	// Build compiles the previously configured build tree.
	Build(ctx context.Context, job BuildJob) error
}
