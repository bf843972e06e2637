// Package cmake provides the CMake native-builder adapter.
package cmake

import (
	"context"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/wolfprint3d/mako/internal/core/ports"
)

// Runner implements ports.NativeBuilder by shelling out to cmake.
type Runner struct {
	logger ports.Logger
}

var _ ports.NativeBuilder = (*Runner)(nil)

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// RenderConfigureArgs renders the cmake argv for a configure invocation.
// It is a pure function of the job: options in insertion order, compiler
// flags joined into CMAKE_C_FLAGS/CMAKE_CXX_FLAGS, resolved injections as
// cache variables in sorted order.
func RenderConfigureArgs(job ports.BuildJob) []string {
	args := []string{"-S", job.SourceDir, "-B", job.BuildDir}

	for _, opt := range job.Plan.Options {
		args = append(args, "-D"+opt.String())
	}

	if len(job.Plan.Flags) > 0 {
		joined := strings.Join(job.Plan.Flags, " ")
		args = append(args, "-DCMAKE_C_FLAGS="+joined, "-DCMAKE_CXX_FLAGS="+joined)
	}

	keys := make([]string, 0, len(job.Plan.Resolved))
	for key := range job.Plan.Resolved {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		args = append(args, "-D"+key+"="+job.Plan.Resolved[key])
	}

	return args
}

// RenderBuildArgs renders the cmake argv for a build invocation.
func RenderBuildArgs(job ports.BuildJob) []string {
	args := []string{"--build", job.BuildDir}
	if job.Parallelism > 0 {
		args = append(args, "--parallel", strconv.Itoa(job.Parallelism))
	}
	return args
}

// Configure generates the native build tree for the job.
func (r *Runner) Configure(ctx context.Context, job ports.BuildJob) error {
	if err := os.MkdirAll(job.BuildDir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create build directory")
	}
	return r.run(ctx, RenderConfigureArgs(job))
}

// Build compiles the previously configured build tree.
func (r *Runner) Build(ctx context.Context, job ports.BuildJob) error {
	return r.run(ctx, RenderBuildArgs(job))
}

func (r *Runner) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, "cmake", args...) //nolint:gosec // argv is rendered from the validated plan

	// Stream both pipes line by line into the logger.
	cmd.Stdout = &logWriter{logger: r.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: r.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		var exitCode int
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1 // Unknown or signal
		}
		return zerr.With(zerr.Wrap(err, "cmake failed"), "exit_code", exitCode)
	}

	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
