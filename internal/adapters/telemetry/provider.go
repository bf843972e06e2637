package telemetry

import (
	"os"

	"github.com/wolfprint3d/mako/internal/adapters/telemetry/progrock"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// ProgressEnvVar enables the progrock progress recorder when set.
const ProgressEnvVar = "MAKO_PROGRESS"

// NewTracer selects the tracer implementation for this process. Progress
// recording is opt-in; the default is silence.
func NewTracer() ports.Tracer {
	if os.Getenv(ProgressEnvVar) != "" {
		return progrock.New()
	}
	return NewNoOpTracer()
}
