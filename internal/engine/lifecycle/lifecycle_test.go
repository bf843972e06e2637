package lifecycle_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wolfprint3d/mako/internal/adapters/telemetry"
	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
	"github.com/wolfprint3d/mako/internal/core/ports/mocks"
	"github.com/wolfprint3d/mako/internal/engine/lifecycle"
	"github.com/wolfprint3d/mako/internal/targets"
)

type fixedHasher struct{ fp string }

func (h fixedHasher) Fingerprint(domain.ConfigurePlan) string { return h.fp }

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func testProfile(platform domain.Platform, openblas bool) *domain.BuildProfile {
	return &domain.BuildProfile{
		Context:     domain.BuildContext{Platform: platform, OpenBLAS: openblas},
		BuildDir:    "build",
		Parallelism: 2,
		Sources:     map[string]string{"dlib": "vendor/dlib"},
	}
}

func newEngine(native ports.NativeBuilder, store ports.PackageStore, fp string) *lifecycle.Engine {
	return lifecycle.NewEngine(native, store, fixedHasher{fp: fp}, telemetry.NewNoOpTracer(), nopLogger{})
}

func TestRun_LinuxOpenBLAS_BuildsUpstreamFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	native := mocks.NewMockNativeBuilder(ctrl)
	store := mocks.NewMockPackageStore(ctrl)

	var mu sync.Mutex
	var configured []string
	jobs := make(map[string]ports.BuildJob)

	native.EXPECT().Configure(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, job ports.BuildJob) error {
			mu.Lock()
			defer mu.Unlock()
			configured = append(configured, job.Plan.Target)
			jobs[job.Plan.Target] = job
			return nil
		}).Times(2)
	native.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	store.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(2)

	var puts []domain.PackageInfo
	store.EXPECT().Put(gomock.Any()).DoAndReturn(func(info domain.PackageInfo) error {
		mu.Lock()
		defer mu.Unlock()
		puts = append(puts, info)
		return nil
	}).Times(2)

	e := newEngine(native, store, "fp1")
	res, err := e.Run(context.Background(), lifecycle.Request{
		Profile:     testProfile(domain.PlatformLinux, true),
		Resolver:    targets.NewRegistry(),
		TargetNames: []string{"dlib"},
	})
	require.NoError(t, err)

	// The injection pulls OpenBLAS into the run and orders it first.
	require.Equal(t, []string{"OpenBLAS", "dlib"}, configured)
	assert.Equal(t, lifecycle.StatusDone, res.Statuses["dlib"])
	assert.Equal(t, lifecycle.StatusDone, res.Statuses["OpenBLAS"])

	// dlib's job carries the resolved OpenBLAS products.
	dlibJob := jobs["dlib"]
	assert.Equal(t, "vendor/dlib", dlibJob.SourceDir)
	assert.Equal(t, filepath.Join("build", "dlib"), dlibJob.BuildDir)
	assert.Equal(t,
		filepath.Join("build", "OpenBLAS", "include"),
		dlibJob.Plan.Resolved["OPENBLAS_INCLUDE"])
	assert.Equal(t,
		filepath.Join("build", "OpenBLAS", "libopenblas.a"),
		dlibJob.Plan.Resolved["OPENBLAS_LIBS"])

	// Both packages were persisted, OpenBLAS with its exports.
	require.Len(t, puts, 2)
	for _, info := range puts {
		if info.Target == "OpenBLAS" {
			assert.Equal(t, "include", info.Exports.IncludeDir)
			assert.Equal(t, []string{"libopenblas.a"}, info.Exports.Libs)
		}
	}
}

func TestRun_CacheHitSkipsNativeBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	native := mocks.NewMockNativeBuilder(ctrl)
	store := mocks.NewMockPackageStore(ctrl)

	store.EXPECT().Get("dlib").Return(&domain.PackageInfo{
		Target:      "dlib",
		Fingerprint: "fp1",
	}, nil).Times(1)

	e := newEngine(native, store, "fp1")
	res, err := e.Run(context.Background(), lifecycle.Request{
		Profile:     testProfile(domain.PlatformLinux, false),
		Resolver:    targets.NewRegistry(),
		TargetNames: []string{"dlib"},
	})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusCached, res.Statuses["dlib"])
}

func TestRun_StaleFingerprintRebuilds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	native := mocks.NewMockNativeBuilder(ctrl)
	store := mocks.NewMockPackageStore(ctrl)

	store.EXPECT().Get("dlib").Return(&domain.PackageInfo{
		Target:      "dlib",
		Fingerprint: "stale",
	}, nil).Times(1)
	native.EXPECT().Configure(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	native.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	store.EXPECT().Put(gomock.Any()).Return(nil).Times(1)

	e := newEngine(native, store, "fp2")
	res, err := e.Run(context.Background(), lifecycle.Request{
		Profile:     testProfile(domain.PlatformLinux, false),
		Resolver:    targets.NewRegistry(),
		TargetNames: []string{"dlib"},
	})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusDone, res.Statuses["dlib"])
}

func TestRun_ForceBypassesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	native := mocks.NewMockNativeBuilder(ctrl)
	store := mocks.NewMockPackageStore(ctrl)

	// No Get expectation: the cache must not even be consulted.
	native.EXPECT().Configure(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	native.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	store.EXPECT().Put(gomock.Any()).Return(nil).Times(1)

	e := newEngine(native, store, "fp1")
	_, err := e.Run(context.Background(), lifecycle.Request{
		Profile:     testProfile(domain.PlatformLinux, false),
		Resolver:    targets.NewRegistry(),
		TargetNames: []string{"dlib"},
		Force:       true,
	})
	require.NoError(t, err)
}

func TestRun_NativeFailureFailsTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	native := mocks.NewMockNativeBuilder(ctrl)
	store := mocks.NewMockPackageStore(ctrl)

	store.EXPECT().Get("dlib").Return(nil, nil).Times(1)
	native.EXPECT().Configure(gomock.Any(), gomock.Any()).Return(errors.New("cmake exploded")).Times(1)

	e := newEngine(native, store, "fp1")
	_, err := e.Run(context.Background(), lifecycle.Request{
		Profile:     testProfile(domain.PlatformLinux, false),
		Resolver:    targets.NewRegistry(),
		TargetNames: []string{"dlib"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestRun_ConfigureOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Strict mocks: any native or store call fails the test.
	native := mocks.NewMockNativeBuilder(ctrl)
	store := mocks.NewMockPackageStore(ctrl)

	e := newEngine(native, store, "fp1")
	res, err := e.Run(context.Background(), lifecycle.Request{
		Profile:       testProfile(domain.PlatformMacOS, false),
		Resolver:      targets.NewRegistry(),
		TargetNames:   []string{"dlib"},
		ConfigureOnly: true,
	})
	require.NoError(t, err)

	plan, ok := res.Plans["dlib"]
	require.True(t, ok)

	var blas string
	for _, opt := range plan.Options {
		if opt.Key == "DLIB_USE_BLAS" {
			blas = opt.Value
		}
	}
	assert.Equal(t, "ON", blas)
	assert.Empty(t, plan.Injections)
}

func TestRun_NoTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newEngine(mocks.NewMockNativeBuilder(ctrl), mocks.NewMockPackageStore(ctrl), "fp1")
	_, err := e.Run(context.Background(), lifecycle.Request{
		Profile:  testProfile(domain.PlatformLinux, false),
		Resolver: targets.NewRegistry(),
	})
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestRun_UnknownTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newEngine(mocks.NewMockNativeBuilder(ctrl), mocks.NewMockPackageStore(ctrl), "fp1")
	_, err := e.Run(context.Background(), lifecycle.Request{
		Profile:     testProfile(domain.PlatformLinux, false),
		Resolver:    targets.NewRegistry(),
		TargetNames: []string{"zlib"},
	})
	require.ErrorIs(t, err, domain.ErrUnknownTarget)
}
