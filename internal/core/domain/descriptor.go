// Package domain contains the core domain models for target configuration
// and the target dependency graph.
package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Phase is a lifecycle phase of a target descriptor. Phases advance strictly
// linearly: Created, DepsDeclared, Configured, Packaged.
type Phase int

const (
	// PhaseCreated is the initial state of a fresh descriptor.
	PhaseCreated Phase = iota
	// PhaseDepsDeclared means the dependency set has been registered.
	PhaseDepsDeclared
	// PhaseConfigured means options and flags have been accumulated.
	PhaseConfigured
	// PhasePackaged means artifacts have been finalized for consumers.
	PhasePackaged
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDepsDeclared:
		return "deps-declared"
	case PhaseConfigured:
		return "configured"
	case PhasePackaged:
		return "packaged"
	default:
		return "created"
	}
}

// ProductInjection binds another target's exported include path and link
// libraries into this target's native-build inputs, under the given
// native-build variable names.
type ProductInjection struct {
	FromTarget string `json:"from_target"`
	IncludeVar string `json:"include_var"`
	LibsVar    string `json:"libs_var"`
}

// ProductExports is what a target publishes for injection into its consumers.
// IncludeDir is relative to the target's build directory.
type ProductExports struct {
	IncludeDir string   `json:"include_dir,omitzero"`
	Libs       []string `json:"libs,omitzero"`
}

// TargetDescriptor accumulates the configuration of one buildable target over
// a single orchestrator invocation. It is created per run, mutated only during
// the configure and package phases, and never shared across targets, so it
// needs no locking.
type TargetDescriptor struct {
	name string

	deps       []string
	options    OptionSet
	flags      []string
	injections []ProductInjection
	exports    ProductExports
	syslibs    []string

	phase Phase
}

// NewTargetDescriptor creates a descriptor in the Created phase.
func NewTargetDescriptor(name string) *TargetDescriptor {
	return &TargetDescriptor{name: name}
}

// Name returns the target name.
func (d *TargetDescriptor) Name() string { return d.name }

// Phase returns the current lifecycle phase.
func (d *TargetDescriptor) Phase() Phase { return d.phase }

// advance moves the descriptor to the next phase, enforcing the linear order.
func (d *TargetDescriptor) advance(to Phase) error {
	if to != d.phase+1 {
		err := zerr.With(ErrPhaseOrder, "target", d.name)
		err = zerr.With(err, "phase", d.phase.String())
		return zerr.With(err, "requested", to.String())
	}
	d.phase = to
	return nil
}

// DeclareDependencies registers the upstream targets this build requires and
// moves the descriptor to DepsDeclared. An empty set is valid.
func (d *TargetDescriptor) DeclareDependencies(deps []string) error {
	if err := d.advance(PhaseDepsDeclared); err != nil {
		return err
	}
	d.deps = append(d.deps[:0], deps...)
	return nil
}

// Dependencies returns the declared upstream target names.
func (d *TargetDescriptor) Dependencies() []string {
	out := make([]string, len(d.deps))
	copy(out, d.deps)
	return out
}

// AddOptions appends native-build options in KEY=VALUE form. Conflicting
// values for a key are rejected, which is what keeps mutually exclusive
// configuration branches honest.
func (d *TargetDescriptor) AddOptions(pairs ...string) error {
	if err := d.options.Add(pairs...); err != nil {
		return zerr.With(err, "target", d.name)
	}
	return nil
}

// AddCompilerFlags appends compiler flags in order.
func (d *TargetDescriptor) AddCompilerFlags(flags ...string) {
	d.flags = append(d.flags, flags...)
}

// AddInjection records a cross-target product binding request.
func (d *TargetDescriptor) AddInjection(inj ProductInjection) {
	d.injections = append(d.injections, inj)
}

// SetExports records what this target publishes for injection into consumers.
func (d *TargetDescriptor) SetExports(e ProductExports) {
	d.exports = e
}

// Exports returns the published products.
func (d *TargetDescriptor) Exports() ProductExports { return d.exports }

// AddSyslib records a system-library link directive re-exported to consumers
// of the packaged target.
func (d *TargetDescriptor) AddSyslib(directive string) {
	d.syslibs = append(d.syslibs, directive)
}

// Syslibs returns the recorded system-library link directives.
func (d *TargetDescriptor) Syslibs() []string {
	out := make([]string, len(d.syslibs))
	copy(out, d.syslibs)
	return out
}

// MarkConfigured moves the descriptor to Configured.
func (d *TargetDescriptor) MarkConfigured() error {
	return d.advance(PhaseConfigured)
}

// MarkPackaged moves the descriptor to Packaged.
func (d *TargetDescriptor) MarkPackaged() error {
	return d.advance(PhasePackaged)
}

// Plan snapshots the accumulated configuration into an immutable record for
// the native builder and for fingerprinting.
func (d *TargetDescriptor) Plan() ConfigurePlan {
	flags := make([]string, len(d.flags))
	copy(flags, d.flags)
	injections := make([]ProductInjection, len(d.injections))
	copy(injections, d.injections)
	return ConfigurePlan{
		Target:     d.name,
		Options:    d.options.All(),
		Flags:      flags,
		Injections: injections,
	}
}

// ConfigurePlan is the immutable result of a target's configure phase: the
// exact inputs handed to the native build system.
type ConfigurePlan struct {
	Target     string
	Options    []Option
	Flags      []string
	Injections []ProductInjection

	// Resolved maps injected native-build variables to their resolved paths,
	// filled in by the lifecycle engine from upstream exports.
	Resolved map[string]string
}

// PackageInfo is the persisted record of a packaged target.
type PackageInfo struct {
	Target      string         `json:"target"`
	Fingerprint string         `json:"fingerprint"`
	Syslibs     []string       `json:"syslibs,omitzero"`
	Exports     ProductExports `json:"exports,omitzero"`
	Timestamp   time.Time      `json:"timestamp"`
}

// BuildProfile is the resolved run configuration for one invocation.
type BuildProfile struct {
	// Context holds the platform and backend request the run branches on.
	Context BuildContext

	// BuildDir is the root directory for per-target build trees.
	BuildDir string

	// StateFile is the path of the persisted package-state store.
	StateFile string

	// Parallelism bounds concurrent target builds. Zero means NumCPU.
	Parallelism int

	// Sources maps target names to their source directories.
	Sources map[string]string
}
