package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetAlreadyExists is returned when adding a target with a name that already exists.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrMissingDependency is returned when a target depends on a target that is not in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the target dependency graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnknownTarget is returned when a requested target is not registered.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrUnknownPlatform is returned for an unrecognized platform name in the profile.
	ErrUnknownPlatform = zerr.New("unknown platform")

	// ErrMalformedOption is returned when a native-build option is not in KEY=VALUE form.
	ErrMalformedOption = zerr.New("malformed option")

	// ErrConflictingOption is returned when an option key is set to two different values.
	ErrConflictingOption = zerr.New("conflicting option")

	// ErrPhaseOrder is returned when a lifecycle phase runs out of order.
	ErrPhaseOrder = zerr.New("lifecycle phase out of order")

	// ErrNoTargetsSpecified is returned when a run is requested with nothing to build.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrBuildExecutionFailed wraps target failures for exit-code handling in main.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
