package cmake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolfprint3d/mako/internal/adapters/cmake"
	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

func TestRenderConfigureArgs(t *testing.T) {
	job := ports.BuildJob{
		SourceDir: "vendor/dlib",
		BuildDir:  "build/dlib",
		Plan: domain.ConfigurePlan{
			Target: "dlib",
			Options: []domain.Option{
				{Key: "DLIB_USE_BLAS", Value: "ON"},
				{Key: "DLIB_JPEG_SUPPORT", Value: "OFF"},
			},
			Flags: []string{"-Wno-tautological-constant-compare"},
			Resolved: map[string]string{
				"OPENBLAS_LIBS":    "build/OpenBLAS/libopenblas.a",
				"OPENBLAS_INCLUDE": "build/OpenBLAS/include",
			},
		},
	}

	assert.Equal(t, []string{
		"-S", "vendor/dlib",
		"-B", "build/dlib",
		"-DDLIB_USE_BLAS=ON",
		"-DDLIB_JPEG_SUPPORT=OFF",
		"-DCMAKE_C_FLAGS=-Wno-tautological-constant-compare",
		"-DCMAKE_CXX_FLAGS=-Wno-tautological-constant-compare",
		"-DOPENBLAS_INCLUDE=build/OpenBLAS/include",
		"-DOPENBLAS_LIBS=build/OpenBLAS/libopenblas.a",
	}, cmake.RenderConfigureArgs(job))
}

func TestRenderConfigureArgsNoFlags(t *testing.T) {
	job := ports.BuildJob{
		SourceDir: "src",
		BuildDir:  "out",
		Plan:      domain.ConfigurePlan{Target: "OpenBLAS"},
	}

	args := cmake.RenderConfigureArgs(job)
	assert.Equal(t, []string{"-S", "src", "-B", "out"}, args)
	assert.NotContains(t, args, "-DCMAKE_C_FLAGS=")
}

func TestRenderBuildArgs(t *testing.T) {
	job := ports.BuildJob{BuildDir: "build/dlib", Parallelism: 8}
	assert.Equal(t, []string{"--build", "build/dlib", "--parallel", "8"}, cmake.RenderBuildArgs(job))

	job.Parallelism = 0
	assert.Equal(t, []string{"--build", "build/dlib"}, cmake.RenderBuildArgs(job))
}
