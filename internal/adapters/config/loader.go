// Package config provides the build profile loader for mako.
package config

import (
	"os"
	"runtime"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/wolfprint3d/mako/internal/core/domain"
)

// Defaults applied when the profile leaves fields empty.
const (
	DefaultBuildDir  = ".mako/build"
	DefaultStateFile = ".mako/state.json"
)

// Makofile represents the structure of the mako.yaml configuration file.
type Makofile struct {
	Version     string               `yaml:"version"`
	Platform    string               `yaml:"platform"`
	OpenBLAS    bool                 `yaml:"openblas"`
	BuildDir    string               `yaml:"build_dir"`
	StateFile   string               `yaml:"state_file"`
	Parallelism int                  `yaml:"parallelism"`
	Targets     map[string]TargetDTO `yaml:"targets"`
}

// TargetDTO represents per-target settings in the configuration.
type TargetDTO struct {
	Source string `yaml:"source"`
}

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// Load reads the profile from the given path and resolves defaults.
func (l *FileConfigLoader) Load(path string) (*domain.BuildProfile, error) {
	return Load(path)
}

// Load reads a mako.yaml file and returns a resolved BuildProfile.
func Load(path string) (*domain.BuildProfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Makofile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	platform, err := resolvePlatform(file.Platform)
	if err != nil {
		return nil, err
	}

	profile := &domain.BuildProfile{
		Context: domain.BuildContext{
			Platform: platform,
			OpenBLAS: file.OpenBLAS,
		},
		BuildDir:    file.BuildDir,
		StateFile:   file.StateFile,
		Parallelism: file.Parallelism,
		Sources:     make(map[string]string, len(file.Targets)),
	}
	if profile.BuildDir == "" {
		profile.BuildDir = DefaultBuildDir
	}
	if profile.StateFile == "" {
		profile.StateFile = DefaultStateFile
	}
	for name, dto := range file.Targets {
		profile.Sources[name] = dto.Source
	}

	return profile, nil
}

func resolvePlatform(name string) (domain.Platform, error) {
	if name == "" || name == "auto" {
		return domain.DetectPlatform(runtime.GOOS), nil
	}
	platform, err := domain.ParsePlatform(name)
	if err != nil {
		return 0, zerr.With(err, "platform", name)
	}
	return platform, nil
}
