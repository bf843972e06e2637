package dlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/targets/dlib"
)

// hostRecorder captures everything a target pushes through the BuildHost.
type hostRecorder struct {
	bctx domain.BuildContext

	options         domain.OptionSet
	flags           []string
	injections      []domain.ProductInjection
	exports         domain.ProductExports
	syslibs         []string
	defaultPackaged int
}

func (h *hostRecorder) Context() domain.BuildContext { return h.bctx }

func (h *hostRecorder) AddOptions(pairs ...string) error {
	return h.options.Add(pairs...)
}

func (h *hostRecorder) AddCompilerFlags(flags ...string) {
	h.flags = append(h.flags, flags...)
}

func (h *hostRecorder) InjectProducts(fromTarget, includeVar, libsVar string) {
	h.injections = append(h.injections, domain.ProductInjection{
		FromTarget: fromTarget,
		IncludeVar: includeVar,
		LibsVar:    libsVar,
	})
}

func (h *hostRecorder) ExportProducts(includeDir string, libs ...string) {
	h.exports = domain.ProductExports{IncludeDir: includeDir, Libs: libs}
}

func (h *hostRecorder) ExportSyslib(directive string) {
	h.syslibs = append(h.syslibs, directive)
}

func (h *hostRecorder) DefaultPackage() error {
	h.defaultPackaged++
	return nil
}

var fixedDisables = []string{
	"DLIB_NO_GUI_SUPPORT=TRUE",
	"DLIB_ENABLE_ASSERTS=OFF",
	"DLIB_PNG_SUPPORT=OFF",
	"DLIB_JPEG_SUPPORT=OFF",
	"DLIB_GIF_SUPPORT=OFF",
	"DLIB_LINK_WITH_SQLITE3=OFF",
	"DLIB_USE_CUDA=OFF",
	"DLIB_USE_LAPACK=OFF",
}

func configure(t *testing.T, bctx domain.BuildContext) *hostRecorder {
	t.Helper()
	host := &hostRecorder{bctx: bctx}
	require.NoError(t, dlib.New().Configure(host))
	return host
}

func TestTarget_Identity(t *testing.T) {
	target := dlib.New()
	assert.Equal(t, "dlib", target.Name())
	assert.Empty(t, target.Dependencies())
}

func TestConfigure_ExactlyOneBLASPolicy(t *testing.T) {
	tests := []struct {
		name string
		bctx domain.BuildContext
		want string
	}{
		{"linux", domain.BuildContext{Platform: domain.PlatformLinux}, "OFF"},
		{"linux openblas", domain.BuildContext{Platform: domain.PlatformLinux, OpenBLAS: true}, "ON"},
		{"macos", domain.BuildContext{Platform: domain.PlatformMacOS}, "ON"},
		{"ios", domain.BuildContext{Platform: domain.PlatformIOS}, "ON"},
		{"other", domain.BuildContext{Platform: domain.PlatformOther}, "OFF"},
		{"other openblas", domain.BuildContext{Platform: domain.PlatformOther, OpenBLAS: true}, "ON"},
		// The openblas request is moot on Apple platforms, Accelerate wins.
		{"macos openblas", domain.BuildContext{Platform: domain.PlatformMacOS, OpenBLAS: true}, "ON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := configure(t, tt.bctx)
			v, ok := host.options.Get("DLIB_USE_BLAS")
			require.True(t, ok, "BLAS policy must always be set")
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestConfigure_FixedDisablesOnEveryPlatform(t *testing.T) {
	for _, platform := range []domain.Platform{
		domain.PlatformLinux, domain.PlatformMacOS, domain.PlatformIOS, domain.PlatformOther,
	} {
		t.Run(platform.String(), func(t *testing.T) {
			host := configure(t, domain.BuildContext{Platform: platform})
			for _, pair := range fixedDisables {
				opt, err := domain.ParseOption(pair)
				require.NoError(t, err)
				v, ok := host.options.Get(opt.Key)
				require.True(t, ok, "missing %s", opt.Key)
				assert.Equal(t, opt.Value, v)
			}
		})
	}
}

func TestConfigure_TautologicalWarningFlagLinuxOnly(t *testing.T) {
	const flag = "-Wno-tautological-constant-compare"

	host := configure(t, domain.BuildContext{Platform: domain.PlatformLinux})
	assert.Contains(t, host.flags, flag)

	for _, platform := range []domain.Platform{
		domain.PlatformMacOS, domain.PlatformIOS, domain.PlatformOther,
	} {
		host := configure(t, domain.BuildContext{Platform: platform})
		assert.NotContains(t, host.flags, flag, "flag leaked onto %s", platform)
	}
}

func TestConfigure_OpenBLASInjection(t *testing.T) {
	host := configure(t, domain.BuildContext{Platform: domain.PlatformLinux, OpenBLAS: true})

	require.Len(t, host.injections, 1)
	inj := host.injections[0]
	assert.Equal(t, "OpenBLAS", inj.FromTarget)
	assert.Equal(t, "OPENBLAS_INCLUDE", inj.IncludeVar)
	assert.Equal(t, "OPENBLAS_LIBS", inj.LibsVar)

	// No injection in any other branch.
	for _, bctx := range []domain.BuildContext{
		{Platform: domain.PlatformLinux},
		{Platform: domain.PlatformMacOS},
		{Platform: domain.PlatformMacOS, OpenBLAS: true},
		{Platform: domain.PlatformIOS, OpenBLAS: true},
		{Platform: domain.PlatformOther},
	} {
		host := configure(t, bctx)
		assert.Empty(t, host.injections)
	}
}

func TestPackage_AccelerateExportOnApplePlatformsOnly(t *testing.T) {
	for _, tt := range []struct {
		platform domain.Platform
		want     bool
	}{
		{domain.PlatformMacOS, true},
		{domain.PlatformIOS, true},
		{domain.PlatformLinux, false},
		{domain.PlatformOther, false},
	} {
		t.Run(tt.platform.String(), func(t *testing.T) {
			host := &hostRecorder{bctx: domain.BuildContext{Platform: tt.platform}}
			require.NoError(t, dlib.New().Package(host))

			assert.Equal(t, 1, host.defaultPackaged, "default packaging must always run")
			if tt.want {
				assert.Equal(t, []string{"-framework Accelerate"}, host.syslibs)
			} else {
				assert.Empty(t, host.syslibs)
			}
		})
	}
}

func TestScenario_LinuxNoOpenBLAS(t *testing.T) {
	bctx := domain.BuildContext{Platform: domain.PlatformLinux}
	host := configure(t, bctx)

	v, _ := host.options.Get("DLIB_USE_BLAS")
	assert.Equal(t, "OFF", v)
	assert.Contains(t, host.flags, "-Wno-tautological-constant-compare")
	assert.Empty(t, host.injections)

	require.NoError(t, dlib.New().Package(host))
	assert.Empty(t, host.syslibs)
}

func TestScenario_MacOS(t *testing.T) {
	bctx := domain.BuildContext{Platform: domain.PlatformMacOS}
	host := configure(t, bctx)

	v, _ := host.options.Get("DLIB_USE_BLAS")
	assert.Equal(t, "ON", v)
	assert.Empty(t, host.injections)

	require.NoError(t, dlib.New().Package(host))
	assert.Equal(t, []string{"-framework Accelerate"}, host.syslibs)
}

func TestScenario_LinuxOpenBLAS(t *testing.T) {
	bctx := domain.BuildContext{Platform: domain.PlatformLinux, OpenBLAS: true}
	host := configure(t, bctx)

	v, _ := host.options.Get("DLIB_USE_BLAS")
	assert.Equal(t, "ON", v)
	require.Len(t, host.injections, 1)

	require.NoError(t, dlib.New().Package(host))
	assert.Empty(t, host.syslibs)
}
