package ports

import "github.com/wolfprint3d/mako/internal/core/domain"

// Hasher defines the interface for fingerprinting configure output.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint computes a stable hash of a configure plan. Two plans with
	// the same options, flags and resolved injections hash identically.
	Fingerprint(plan domain.ConfigurePlan) string
}

// TargetResolver looks up registered targets by name. Implemented by the
// target registry.
type TargetResolver interface {
	Lookup(name string) (BuildTarget, error)
}
