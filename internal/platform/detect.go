package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector for the running host.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns the host's OS and normalized architecture. On Linux it adds
// distro details from gopsutil; if that lookup fails the distro fields stay
// empty and detection still succeeds. A cancelled context is a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		ArchRaw: runtime.GOARCH,
	}

	arch, err := normalizeArch(runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	info.Arch = arch

	if runtime.GOOS == "linux" {
		platform, family, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}

		platform = normalizePlatform(platform)
		if platform != "" {
			info.Platform = platform
			info.Family = mapFamily(family)
			info.Version = normalizePlatform(version)
		}
	}

	return info, nil
}

// ParseTarget builds an Info from an "os/arch" string such as
// "darwin/arm64" or "linux/x86_64".
func ParseTarget(target string) (*Info, error) {
	goos, goarch, ok := strings.Cut(strings.TrimSpace(target), "/")
	if !ok || goos == "" || goarch == "" {
		return nil, fmt.Errorf("invalid target %q: want os/arch", target)
	}

	arch, err := normalizeArch(goarch)
	if err != nil {
		return nil, err
	}

	return &Info{
		OS:      normalizePlatform(goos),
		Arch:    arch,
		ArchRaw: goarch,
	}, nil
}
