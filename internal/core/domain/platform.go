package domain

// Platform identifies the host platform family a build is configured for.
// Anything the orchestrator has no platform-specific behavior for collapses
// into PlatformOther.
type Platform int

const (
	// PlatformOther covers every platform without dedicated handling.
	PlatformOther Platform = iota
	// PlatformLinux is a Linux host.
	PlatformLinux
	// PlatformMacOS is a macOS host.
	PlatformMacOS
	// PlatformIOS is an iOS cross-build host.
	PlatformIOS
)

// String returns the canonical lowercase platform name.
func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformMacOS:
		return "macos"
	case PlatformIOS:
		return "ios"
	default:
		return "other"
	}
}

// Apple reports whether the platform links against Apple frameworks.
func (p Platform) Apple() bool {
	return p == PlatformMacOS || p == PlatformIOS
}

// DetectPlatform maps a GOOS value to a Platform.
func DetectPlatform(goos string) Platform {
	switch goos {
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformMacOS
	case "ios":
		return PlatformIOS
	default:
		return PlatformOther
	}
}

// ParsePlatform parses a canonical platform name as written in the profile.
func ParsePlatform(name string) (Platform, error) {
	switch name {
	case "linux":
		return PlatformLinux, nil
	case "macos":
		return PlatformMacOS, nil
	case "ios":
		return PlatformIOS, nil
	case "other":
		return PlatformOther, nil
	default:
		return 0, ErrUnknownPlatform
	}
}

// BuildContext carries the run-level facts targets branch on during
// configuration.
type BuildContext struct {
	// Platform is the platform the native builds are configured for.
	Platform Platform

	// OpenBLAS requests the OpenBLAS backend for targets that support it.
	OpenBLAS bool
}
