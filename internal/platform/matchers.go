package platform

import "fmt"

// Matchers returns the asset-name tokens release builds for info's OS and
// architecture commonly carry, in the dash, underscore, Rust target triple
// and goreleaser title-case spellings. The list feeds release.SelectBinary.
func Matchers(info *Info) ([]string, error) {
	if info == nil {
		return nil, fmt.Errorf("platform info is required")
	}

	uname, err := unameArch(info.Arch)
	if err != nil {
		return nil, err
	}

	// goreleaser's default archive names spell amd64 as x86_64 and keep arm64
	title := info.Arch
	if info.Arch == "amd64" {
		title = uname
	}

	goStyle := []string{
		info.OS + "-" + info.Arch,
		info.OS + "_" + info.Arch,
	}

	switch info.OS {
	case "linux":
		triples := []string{
			uname + "-unknown-linux-musl",
			uname + "-unknown-linux-gnu",
		}
		if !info.IsMusl() {
			triples[0], triples[1] = triples[1], triples[0]
		}
		return concat(goStyle, triples, []string{
			"linux-" + uname,
			"Linux_" + title,
		}), nil

	case "darwin":
		return concat(goStyle, []string{
			uname + "-apple-darwin",
			"macos-" + info.Arch,
			"Darwin_" + title,
		}), nil

	case "windows":
		return concat(goStyle, []string{
			uname + "-pc-windows-msvc",
			"Windows_" + title,
		}), nil

	default:
		return nil, fmt.Errorf("unsupported OS for release matching: %s", info.OS)
	}
}

// unameArch maps a normalized architecture to the uname spelling used in
// target triples (x86_64, aarch64).
func unameArch(arch string) (string, error) {
	switch arch {
	case "amd64":
		return "x86_64", nil
	case "arm64":
		return "aarch64", nil
	default:
		return "", fmt.Errorf("unsupported architecture for release matching: %s", arch)
	}
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
