package ports

import "github.com/wolfprint3d/mako/internal/core/domain"

// PackageStore defines the interface for persisting packaged-target records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PackageStore interface {
	// Get retrieves the package info for a target name.
	// Returns nil, nil if not found.
	Get(target string) (*domain.PackageInfo, error)

	// Put stores the package info.
	Put(info domain.PackageInfo) error
}
