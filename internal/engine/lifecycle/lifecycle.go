// Package lifecycle implements the target lifecycle engine: dependency
// declaration, configuration and packaging, in that fixed order per target,
// with independent targets building concurrently.
package lifecycle

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// TargetStatus represents the status of a target within a run.
type TargetStatus string

const (
	// StatusPending indicates the target is waiting to build.
	StatusPending TargetStatus = "Pending"
	// StatusRunning indicates the target is currently building.
	StatusRunning TargetStatus = "Running"
	// StatusDone indicates the target built and packaged successfully.
	StatusDone TargetStatus = "Done"
	// StatusFailed indicates the target failed.
	StatusFailed TargetStatus = "Failed"
	// StatusCached indicates the native build was skipped, the stored
	// package matched the configure fingerprint.
	StatusCached TargetStatus = "Cached"
)

// Engine runs targets through their lifecycle.
type Engine struct {
	native ports.NativeBuilder
	store  ports.PackageStore
	hasher ports.Hasher
	tracer ports.Tracer
	logger ports.Logger

	mu     sync.RWMutex
	status map[string]TargetStatus
}

// NewEngine creates an Engine with the given collaborators.
func NewEngine(
	native ports.NativeBuilder,
	store ports.PackageStore,
	hasher ports.Hasher,
	tracer ports.Tracer,
	logger ports.Logger,
) *Engine {
	return &Engine{
		native: native,
		store:  store,
		hasher: hasher,
		tracer: tracer,
		logger: logger,
		status: make(map[string]TargetStatus),
	}
}

// Request describes one engine run.
type Request struct {
	// Profile is the resolved run configuration.
	Profile *domain.BuildProfile

	// Resolver looks up targets by name.
	Resolver ports.TargetResolver

	// TargetNames are the targets requested on the command line.
	TargetNames []string

	// Force disables the fingerprint cache and rebuilds everything.
	Force bool

	// ConfigureOnly stops after the configure phase, skipping the native
	// build and packaging.
	ConfigureOnly bool
}

// Result reports what a run produced.
type Result struct {
	// Plans maps target names to their configure output. Injections are
	// resolved later, during the build stage, so Resolved is not set here.
	Plans map[string]domain.ConfigurePlan

	// Statuses maps target names to their final status.
	Statuses map[string]TargetStatus
}

// runState carries the per-run descriptors and callbacks. It is built during
// the configure stage and read-only during the build stage, except that each
// target mutates only its own descriptor.
type runState struct {
	targets map[string]ports.BuildTarget
	descs   map[string]*domain.TargetDescriptor
	hosts   map[string]*recordingHost
}

// Run executes the requested targets through the fixed lifecycle.
//
// The configure stage runs first for every target in the transitive closure
// of the request: dependencies declared, then the target's Configure callback
// recorded into its descriptor. A product injection discovered during
// configure pulls its source target into the run and adds an ordering edge,
// even though the consumer declares no upstream dependency. The build stage
// then walks the validated graph level by level; targets within a level are
// independent and build concurrently.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.TargetNames) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	run, graph, err := e.configureAll(req)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, graph.TargetCount())
	for name := range graph.Walk() {
		order = append(order, name)
	}
	e.tracer.EmitPlan(ctx, order)

	if !req.ConfigureOnly {
		if err := e.buildAll(ctx, run, req, graph); err != nil {
			return nil, err
		}
	}

	return e.result(run), nil
}

// configureAll runs dependency declaration and configuration for the
// transitive closure of the requested targets, then validates the graph.
func (e *Engine) configureAll(req Request) (*runState, *domain.Graph, error) {
	run := &runState{
		targets: make(map[string]ports.BuildTarget),
		descs:   make(map[string]*domain.TargetDescriptor),
		hosts:   make(map[string]*recordingHost),
	}
	edges := make(map[string][]string)

	worklist := append([]string(nil), req.TargetNames...)
	for len(worklist) > 0 {
		name := worklist[0]
		worklist = worklist[1:]
		if _, seen := run.targets[name]; seen {
			continue
		}

		target, err := req.Resolver.Lookup(name)
		if err != nil {
			return nil, nil, err
		}

		d := domain.NewTargetDescriptor(name)
		host := newRecordingHost(req.Profile.Context, d, e.logger)
		run.targets[name] = target
		run.descs[name] = d
		run.hosts[name] = host
		e.setStatus(name, StatusPending)

		deps := target.Dependencies()
		if err := d.DeclareDependencies(deps); err != nil {
			return nil, nil, err
		}
		if err := target.Configure(host); err != nil {
			return nil, nil, zerr.With(zerr.Wrap(err, "configure failed"), "target", name)
		}
		if err := d.MarkConfigured(); err != nil {
			return nil, nil, err
		}

		edges[name] = deps
		worklist = append(worklist, deps...)
		for _, inj := range d.Plan().Injections {
			edges[name] = append(edges[name], inj.FromTarget)
			worklist = append(worklist, inj.FromTarget)
		}
	}

	graph := domain.NewGraph()
	for name, deps := range edges {
		if err := graph.AddTarget(name, deps); err != nil {
			return nil, nil, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, nil, err
	}
	return run, graph, nil
}

// buildAll walks the graph level by level, building independent targets
// concurrently up to the profile's parallelism.
func (e *Engine) buildAll(ctx context.Context, run *runState, req Request, graph *domain.Graph) error {
	parallelism := req.Profile.Parallelism
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}

	for _, level := range graph.Levels() {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(parallelism)
		for _, name := range level {
			g.Go(func() error {
				return e.buildOne(gctx, run, req, name)
			})
		}
		if err := g.Wait(); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
	}
	return nil
}

// buildOne runs the native build and packaging for a single target.
func (e *Engine) buildOne(ctx context.Context, run *runState, req Request, name string) error {
	e.setStatus(name, StatusRunning)
	ctx, span := e.tracer.Start(ctx, "build "+name)
	defer span.End()

	if err := e.buildTarget(ctx, span, run, req, name); err != nil {
		span.RecordError(err)
		e.setStatus(name, StatusFailed)
		wrapped := zerr.With(zerr.Wrap(err, "target build failed"), "target", name)
		e.logger.Error(wrapped)
		return wrapped
	}
	return nil
}

func (e *Engine) buildTarget(ctx context.Context, span ports.Span, run *runState, req Request, name string) error {
	d := run.descs[name]
	plan := d.Plan()

	resolved, err := e.resolveInjections(run, req.Profile, plan)
	if err != nil {
		return err
	}
	plan.Resolved = resolved

	fingerprint := e.hasher.Fingerprint(plan)
	span.SetAttribute("fingerprint", fingerprint)

	if !req.Force {
		if hit, err := e.restoreCached(d, name, fingerprint); err != nil {
			return err
		} else if hit {
			span.Cached()
			return nil
		}
	}

	job := ports.BuildJob{
		SourceDir:   sourceDir(req.Profile, name),
		BuildDir:    filepath.Join(req.Profile.BuildDir, name),
		Plan:        plan,
		Parallelism: req.Profile.Parallelism,
	}
	if err := e.native.Configure(ctx, job); err != nil {
		return zerr.Wrap(err, "native configure failed")
	}
	if err := e.native.Build(ctx, job); err != nil {
		return zerr.Wrap(err, "native build failed")
	}

	host := run.hosts[name]
	if err := run.targets[name].Package(host); err != nil {
		return zerr.Wrap(err, "package failed")
	}
	if !host.defaultPackaged {
		e.logger.Warn("target " + name + " skipped default packaging, no artifacts collected")
	}
	if err := d.MarkPackaged(); err != nil {
		return err
	}

	if err := e.store.Put(domain.PackageInfo{
		Target:      name,
		Fingerprint: fingerprint,
		Syslibs:     d.Syslibs(),
		Exports:     d.Exports(),
		Timestamp:   time.Now(),
	}); err != nil {
		return zerr.Wrap(err, "failed to store package info")
	}

	e.setStatus(name, StatusDone)
	return nil
}

// restoreCached checks the store for a package matching the fingerprint and,
// on a hit, restores the descriptor's exports and syslibs from it so that
// consumers of a cached target still see its products.
func (e *Engine) restoreCached(d *domain.TargetDescriptor, name, fingerprint string) (bool, error) {
	info, err := e.store.Get(name)
	if err != nil || info == nil || info.Fingerprint != fingerprint {
		return false, nil
	}

	d.SetExports(info.Exports)
	for _, directive := range info.Syslibs {
		d.AddSyslib(directive)
	}
	if err := d.MarkPackaged(); err != nil {
		return false, err
	}
	e.setStatus(name, StatusCached)
	e.logger.Info("cached: " + name)
	return true, nil
}

// resolveInjections maps injected native-build variables to concrete paths
// from the source targets' exports. Source targets finished in an earlier
// level, so their exports are final by the time a consumer reads them.
func (e *Engine) resolveInjections(run *runState, profile *domain.BuildProfile, plan domain.ConfigurePlan) (map[string]string, error) {
	if len(plan.Injections) == 0 {
		return nil, nil
	}

	resolved := make(map[string]string, 2*len(plan.Injections))
	for _, inj := range plan.Injections {
		upstream, ok := run.descs[inj.FromTarget]
		if !ok {
			return nil, zerr.With(domain.ErrMissingDependency, "dependency", inj.FromTarget)
		}
		exports := upstream.Exports()
		buildDir := filepath.Join(profile.BuildDir, inj.FromTarget)

		resolved[inj.IncludeVar] = filepath.Join(buildDir, exports.IncludeDir)
		libs := make([]string, len(exports.Libs))
		for i, lib := range exports.Libs {
			libs[i] = filepath.Join(buildDir, lib)
		}
		// CMake list separator.
		resolved[inj.LibsVar] = strings.Join(libs, ";")
	}
	return resolved, nil
}

func sourceDir(profile *domain.BuildProfile, name string) string {
	if src, ok := profile.Sources[name]; ok && src != "" {
		return src
	}
	return name
}

func (e *Engine) result(run *runState) *Result {
	res := &Result{
		Plans:    make(map[string]domain.ConfigurePlan, len(run.descs)),
		Statuses: make(map[string]TargetStatus, len(run.descs)),
	}
	for name, d := range run.descs {
		res.Plans[name] = d.Plan()
		res.Statuses[name] = e.getStatus(name)
	}
	return res
}

// setStatus updates the status of a target.
func (e *Engine) setStatus(name string, status TargetStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status[name] = status
}

// getStatus retrieves the status of a target.
func (e *Engine) getStatus(name string) TargetStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status[name]
}
