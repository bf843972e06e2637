// Package ports defines the core interfaces for the application.
package ports

import "github.com/wolfprint3d/mako/internal/core/domain"

// BuildHost is the capability surface the orchestrator hands to a target
// during its lifecycle callbacks. Targets never see the engine itself, only
// this interface bound to their own descriptor.
type BuildHost interface {
	// Context returns the read-only platform and backend facts for this run.
	Context() domain.BuildContext

	// AddOptions appends native-build options in KEY=VALUE form.
	// It fails if a key would be set to two different values.
	AddOptions(pairs ...string) error

	// AddCompilerFlags appends compiler flags for the native build.
	AddCompilerFlags(flags ...string)

	// InjectProducts binds the named target's exported include path and link
	// libraries into this target's native-build inputs under the given
	// variable names.
	InjectProducts(fromTarget, includeVar, libsVar string)

	// ExportProducts publishes this target's include directory and link
	// libraries for injection into consumers.
	ExportProducts(includeDir string, libs ...string)

	// ExportSyslib registers a system-library link directive that consumers
	// of the packaged target must carry.
	ExportSyslib(directive string)

	// DefaultPackage runs the orchestrator's default packaging behavior,
	// collecting the target's artifacts for downstream consumption.
	DefaultPackage() error
}

// BuildTarget is one buildable unit. The engine invokes the three lifecycle
// callbacks sequentially per run: Dependencies, Configure, Package.
type BuildTarget interface {
	// Name returns the unique target name.
	Name() string

	// Dependencies returns the names of upstream targets this build requires.
	// An empty result is valid.
	Dependencies() []string

	// Configure produces the native-build options and compiler flags for the
	// current platform through the host.
	Configure(host BuildHost) error

	// Package finalizes build artifacts for downstream consumption.
	Package(host BuildHost) error
}
