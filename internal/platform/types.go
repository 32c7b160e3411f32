// Package platform detects the host OS and architecture and turns them into
// the asset-name tokens release builds commonly use.
//
// Detection uses runtime.GOOS and runtime.GOARCH, plus gopsutil for Linux
// distribution details with a graceful fallback when that fails. The result
// can be injected into a Lua state as a read-only "platform" table.
package platform

import "context"

// Linux distribution families that affect which release builds run.
const (
	FamilyDebian  = "debian"
	FamilyRHEL    = "rhel"
	FamilyFedora  = "fedora"
	FamilySUSE    = "suse"
	FamilyArch    = "arch"
	FamilyAlpine  = "alpine" // musl libc
	FamilyGentoo  = "gentoo"
	FamilyUnknown = "unknown"
)

// Info contains platform detection information.
type Info struct {
	OS       string // "linux", "darwin", "windows"
	Arch     string // "amd64", "arm64" (normalized)
	ArchRaw  string // original GOARCH
	Platform string // distro ID (Linux only, e.g., "ubuntu")
	Family   string // canonical family (Linux only)
	Version  string // distro version (Linux only)
}

// Distro contains Linux distribution information.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// GetDistro returns distro information, or nil off Linux or when distro
// detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != "linux" || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// Target returns "os/arch", e.g. "linux/amd64".
func (i *Info) Target() string {
	return i.OS + "/" + i.Arch
}

func (i *Info) IsLinux() bool   { return i.OS == "linux" }
func (i *Info) IsMacOS() bool   { return i.OS == "darwin" }
func (i *Info) IsWindows() bool { return i.OS == "windows" }
func (i *Info) IsAMD64() bool   { return i.Arch == "amd64" }
func (i *Info) IsARM64() bool   { return i.Arch == "arm64" }

// IsAppleSilicon returns true on macOS arm64.
func (i *Info) IsAppleSilicon() bool {
	return i.IsMacOS() && i.IsARM64()
}

// IsMusl returns true on Linux distributions that ship musl instead of glibc.
func (i *Info) IsMusl() bool {
	return i.IsLinux() && i.Family == FamilyAlpine
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector returns a fixed Info. It lets callers target a platform other
// than the host.
type StaticDetector struct {
	Info Info
}

// Detect returns a copy of the configured Info.
func (d StaticDetector) Detect(ctx context.Context) (*Info, error) {
	info := d.Info
	return &info, nil
}
