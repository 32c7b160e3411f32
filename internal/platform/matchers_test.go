package platform

import (
	"strings"
	"testing"
)

func TestMatchers(t *testing.T) {
	tests := []struct {
		name    string
		info    *Info
		want    []string
		wantErr bool
	}{
		{
			name: "linux_amd64_glibc",
			info: &Info{OS: "linux", Arch: "amd64", Family: FamilyDebian},
			want: []string{
				"linux-amd64", "linux_amd64",
				"x86_64-unknown-linux-gnu", "x86_64-unknown-linux-musl",
				"linux-x86_64", "Linux_x86_64",
			},
		},
		{
			name: "linux_arm64_musl",
			info: &Info{OS: "linux", Arch: "arm64", Family: FamilyAlpine},
			want: []string{
				"linux-arm64", "linux_arm64",
				"aarch64-unknown-linux-musl", "aarch64-unknown-linux-gnu",
				"linux-aarch64", "Linux_arm64",
			},
		},
		{
			name: "darwin_arm64",
			info: &Info{OS: "darwin", Arch: "arm64"},
			want: []string{
				"darwin-arm64", "darwin_arm64",
				"aarch64-apple-darwin", "macos-arm64", "Darwin_arm64",
			},
		},
		{
			name: "windows_amd64",
			info: &Info{OS: "windows", Arch: "amd64"},
			want: []string{
				"windows-amd64", "windows_amd64",
				"x86_64-pc-windows-msvc", "Windows_x86_64",
			},
		},
		{name: "unsupported_os", info: &Info{OS: "plan9", Arch: "amd64"}, wantErr: true},
		{name: "unsupported_arch", info: &Info{OS: "linux", Arch: "mips"}, wantErr: true},
		{name: "nil_info", info: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Matchers(tt.info)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Matchers() error = %v, wantErr %v", err, tt.wantErr)
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("Matchers() =\n  %v\nwant\n  %v", got, tt.want)
			}
		})
	}
}

func TestMatchers_AvoidDropList(t *testing.T) {
	// A platform token that contains a drop-list substring would make every
	// matching asset unselectable.
	drop := []string{"sha256", "-update", "apk", "rpm", "deb", "zst", "exe"}

	for _, info := range []*Info{
		{OS: "linux", Arch: "amd64"},
		{OS: "linux", Arch: "arm64"},
		{OS: "darwin", Arch: "amd64"},
		{OS: "darwin", Arch: "arm64"},
		{OS: "windows", Arch: "amd64"},
	} {
		matchers, err := Matchers(info)
		if err != nil {
			t.Fatalf("Matchers(%s) error = %v", info.Target(), err)
		}
		for _, m := range matchers {
			for _, d := range drop {
				if strings.Contains(m, d) {
					t.Errorf("%s matcher %q contains drop token %q", info.Target(), m, d)
				}
			}
		}
	}
}
