// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/wolfprint3d/mako/internal/adapters/cmake"
	_ "github.com/wolfprint3d/mako/internal/adapters/config"
	_ "github.com/wolfprint3d/mako/internal/adapters/logger"
	_ "github.com/wolfprint3d/mako/internal/adapters/state"
	_ "github.com/wolfprint3d/mako/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/wolfprint3d/mako/internal/app"
	_ "github.com/wolfprint3d/mako/internal/engine/lifecycle"
)
