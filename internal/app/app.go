// Package app implements the application layer for mako.
package app

import (
	"context"
	"fmt"
	"io"
	"slices"

	"go.trai.ch/zerr"

	"github.com/wolfprint3d/mako/internal/adapters/cmake"
	"github.com/wolfprint3d/mako/internal/adapters/state"
	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
	"github.com/wolfprint3d/mako/internal/engine/lifecycle"
	"github.com/wolfprint3d/mako/internal/targets"
)

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	engine   *lifecycle.Engine
	registry *targets.Registry
	store    *state.Store

	configPath string
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, engine *lifecycle.Engine, registry *targets.Registry, store *state.Store) *App {
	return &App{
		loader:     loader,
		engine:     engine,
		registry:   registry,
		store:      store,
		configPath: "mako.yaml",
	}
}

// SetConfigPath sets the profile path, normally from the CLI flag.
func (a *App) SetConfigPath(path string) {
	if path != "" {
		a.configPath = path
	}
}

// Run executes the full lifecycle for the named targets. With no names, all
// registered targets build.
func (a *App) Run(ctx context.Context, targetNames []string, force bool) error {
	profile, names, err := a.prepare(targetNames)
	if err != nil {
		return err
	}

	_, err = a.engine.Run(ctx, lifecycle.Request{
		Profile:     profile,
		Resolver:    a.registry,
		TargetNames: names,
		Force:       force,
	})
	return err
}

// Configure runs only the configure phase for the named targets. When out is
// non-nil, the rendered native-build argv for each target is written to it,
// one target per paragraph, without invoking anything.
func (a *App) Configure(ctx context.Context, targetNames []string, out io.Writer) error {
	profile, names, err := a.prepare(targetNames)
	if err != nil {
		return err
	}

	res, err := a.engine.Run(ctx, lifecycle.Request{
		Profile:       profile,
		Resolver:      a.registry,
		TargetNames:   names,
		ConfigureOnly: true,
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	for _, name := range sortedKeys(res.Plans) {
		job := ports.BuildJob{
			SourceDir: name,
			BuildDir:  profile.BuildDir + "/" + name,
			Plan:      res.Plans[name],
		}
		if src, ok := profile.Sources[name]; ok && src != "" {
			job.SourceDir = src
		}
		if _, err := fmt.Fprintf(out, "%s:\n", name); err != nil {
			return err
		}
		for _, arg := range cmake.RenderConfigureArgs(job) {
			if _, err := fmt.Fprintf(out, "  %s\n", arg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Targets returns all registered target names, sorted.
func (a *App) Targets() []string {
	return a.registry.Names()
}

func (a *App) prepare(targetNames []string) (*domain.BuildProfile, []string, error) {
	profile, err := a.loader.Load(a.configPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.store.SetPath(profile.StateFile)

	names := targetNames
	if len(names) == 0 {
		names = a.registry.Names()
	}
	return profile, names, nil
}

func sortedKeys(plans map[string]domain.ConfigurePlan) []string {
	names := make([]string, 0, len(plans))
	for name := range plans {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
