// Package targets holds the registry of buildable targets.
package targets

import (
	"slices"

	"go.trai.ch/zerr"

	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
	"github.com/wolfprint3d/mako/internal/targets/dlib"
	"github.com/wolfprint3d/mako/internal/targets/openblas"
)

// Registry maps target names to their descriptors' lifecycle callbacks.
type Registry struct {
	targets map[string]ports.BuildTarget
}

// NewRegistry creates a registry containing all known targets.
func NewRegistry() *Registry {
	r := &Registry{targets: make(map[string]ports.BuildTarget)}
	r.register(dlib.New())
	r.register(openblas.New())
	return r
}

func (r *Registry) register(t ports.BuildTarget) {
	r.targets[t.Name()] = t
}

// Lookup returns the target with the given name.
func (r *Registry) Lookup(name string) (ports.BuildTarget, error) {
	t, ok := r.targets[name]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownTarget, "target", name)
	}
	return t, nil
}

// Names returns all registered target names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
