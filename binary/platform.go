package binary

import (
	"fmt"
)

// Platform is an operating system as named by the runner.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformDarwin  Platform = "darwin"
	PlatformWindows Platform = "win32"
)

// POSIX reports whether binaries on this platform need the executable bit.
func (p Platform) POSIX() bool {
	return p == PlatformLinux || p == PlatformDarwin
}

// Executable returns the on-disk name of the command name on this platform.
func (p Platform) Executable(name string) string {
	if p == PlatformWindows {
		return name + ".exe"
	}
	return name
}

// Arch is a cpu architecture as named by the runner.
type Arch string

const (
	ArchX64   Arch = "x64"
	ArchARM64 Arch = "arm64"
)

// Descriptor is the release naming of one supported (platform, arch) pair.
type Descriptor struct {
	Platform Platform
	Arch     Arch

	// OS is the operating system as spelled in release asset names.
	OS string
	// ArchName is the architecture as spelled in release asset names.
	ArchName string
	// Kind of the release archive for this platform.
	Kind ArchiveKind
}

// Template returns the template used to resolve urls and file names for
// the given binary name and version on this descriptor.
func (d Descriptor) Template(name, version string) Template {
	return Template{
		OS:               d.OS,
		ArchName:         d.ArchName,
		Name:             name,
		Version:          version,
		ArchiveExtension: d.Kind.Extension(),
		Extension:        d.Platform.Executable(""),
	}
}

// UnsupportedPlatformError is returned when no release exists for the
// requested platform and arch.
type UnsupportedPlatformError struct {
	Platform string
	Arch     string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("Unsupported platform %s and arch %s", e.Platform, e.Arch)
}

// Match returns the descriptor for an exact (platform, arch) pair.
// Six pairs are supported: linux, darwin and win32 on x64 and arm64.
func Match(platform, arch string) (Descriptor, error) {
	desc := Descriptor{
		Platform: Platform(platform),
		Arch:     Arch(arch),
	}

	switch desc.Platform {
	case PlatformLinux:
		desc.OS, desc.Kind = "Linux", TarGz
	case PlatformDarwin:
		desc.OS, desc.Kind = "Darwin", TarGz
	case PlatformWindows:
		desc.OS, desc.Kind = "Windows", Zip
	default:
		return Descriptor{}, &UnsupportedPlatformError{Platform: platform, Arch: arch}
	}

	switch desc.Arch {
	case ArchX64:
		desc.ArchName = "x86_64"
	case ArchARM64:
		desc.ArchName = "arm64"
	default:
		return Descriptor{}, &UnsupportedPlatformError{Platform: platform, Arch: arch}
	}

	return desc, nil
}
