// Package dlib describes the build of the dlib machine-learning library.
//
// The target carries no logic of its own beyond toggling dlib's CMake
// switches: GUI, asserts and the optional codec/database integrations stay
// off permanently to keep the dependency surface minimal, and exactly one
// BLAS backend policy is selected per platform.
package dlib

import (
	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// Target implements ports.BuildTarget for dlib.
type Target struct{}

// New creates the dlib target.
func New() *Target {
	return &Target{}
}

// Name returns the target name.
func (t *Target) Name() string { return "dlib" }

// Dependencies declares no upstream targets. The OpenBLAS binding, when
// requested, is a product injection rather than a declared dependency.
func (t *Target) Dependencies() []string { return nil }

// Configure selects dlib's CMake options and compiler flags for the platform.
func (t *Target) Configure(host ports.BuildHost) error {
	if err := host.AddOptions(
		"DLIB_NO_GUI_SUPPORT=TRUE",
		"DLIB_ENABLE_ASSERTS=OFF",
		"DLIB_PNG_SUPPORT=OFF",
		"DLIB_JPEG_SUPPORT=OFF",
		"DLIB_GIF_SUPPORT=OFF",
		"DLIB_LINK_WITH_SQLITE3=OFF",
		"DLIB_USE_CUDA=OFF",
		"DLIB_USE_LAPACK=OFF",
	); err != nil {
		return err
	}

	bctx := host.Context()
	if bctx.Platform == domain.PlatformLinux {
		// Known false positive in dlib's headers on this toolchain.
		host.AddCompilerFlags("-Wno-tautological-constant-compare")
	}

	// Exactly one BLAS policy per run.
	switch {
	case bctx.Platform.Apple():
		// macOS and iOS ship Accelerate.framework.
		return host.AddOptions("DLIB_USE_BLAS=ON")
	case bctx.OpenBLAS:
		if err := host.AddOptions("DLIB_USE_BLAS=ON"); err != nil {
			return err
		}
		host.InjectProducts("OpenBLAS", "OPENBLAS_INCLUDE", "OPENBLAS_LIBS")
		return nil
	default:
		return host.AddOptions("DLIB_USE_BLAS=OFF")
	}
}

// Package finalizes artifacts and re-exports the Accelerate framework link
// requirement on Apple platforms so consumers pick it up automatically.
func (t *Target) Package(host ports.BuildHost) error {
	if err := host.DefaultPackage(); err != nil {
		return err
	}
	if host.Context().Platform.Apple() {
		host.ExportSyslib("-framework Accelerate")
	}
	return nil
}
