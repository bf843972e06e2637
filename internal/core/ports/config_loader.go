package ports

import "github.com/wolfprint3d/mako/internal/core/domain"

// ConfigLoader defines the interface for loading the build profile.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the profile from the given path and resolves defaults.
	Load(path string) (*domain.BuildProfile, error)
}
