// Package openblas describes the build of the OpenBLAS library, the
// linear-algebra backend injected into consumers on platforms without an
// accelerated math framework.
package openblas

import (
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// Target implements ports.BuildTarget for OpenBLAS.
type Target struct{}

// New creates the OpenBLAS target.
func New() *Target {
	return &Target{}
}

// Name returns the target name.
func (t *Target) Name() string { return "OpenBLAS" }

// Dependencies declares no upstream targets.
func (t *Target) Dependencies() []string { return nil }

// Configure selects OpenBLAS's CMake options.
func (t *Target) Configure(host ports.BuildHost) error {
	return host.AddOptions(
		"NOFORTRAN=ON",
		"BUILD_TESTING=OFF",
		"BUILD_WITHOUT_LAPACK=OFF",
	)
}

// Package finalizes artifacts and publishes the include path and static
// library for product injection into consumers.
func (t *Target) Package(host ports.BuildHost) error {
	if err := host.DefaultPackage(); err != nil {
		return err
	}
	host.ExportProducts("include", "libopenblas.a")
	return nil
}
