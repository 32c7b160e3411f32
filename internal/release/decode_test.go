package release

import (
	"errors"
	"strings"
	"testing"
)

const bareRelease = `{
  "tag_name": "v2.67.0",
  "name": "v2.67.0",
  "assets": [
    {"name": "chezmoi-2.67.0-aarch64.rpm", "size": 10, "browser_download_url": "https://github.com/twpayne/chezmoi/releases/download/v2.67.0/chezmoi-2.67.0-aarch64.rpm"},
    {"name": "chezmoi-darwin-arm64", "size": 20, "browser_download_url": "https://github.com/twpayne/chezmoi/releases/download/v2.67.0/chezmoi-darwin-arm64"}
  ]
}`

func TestDecodeManifest(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare_response", bareRelease},
		{"wrapped_response", `{"json": ` + bareRelease + `, "status": 200}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := DecodeManifest([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeManifest() error = %v", err)
			}

			got, err := SelectBinary(m, []string{"darwin-arm64", "aarch64-apple-darwin"})
			if err != nil {
				t.Fatalf("SelectBinary() error = %v", err)
			}
			want := "https://github.com/twpayne/chezmoi/releases/download/v2.67.0/chezmoi-darwin-arm64"
			if got != want {
				t.Errorf("SelectBinary() = %q, want %q", got, want)
			}
		})
	}
}

func TestDecodeManifest_Errors(t *testing.T) {
	if _, err := DecodeManifest([]byte(`{"assets": [`)); err == nil {
		t.Error("expected error for truncated JSON")
	}

	_, err := DecodeManifest([]byte(`[1, 2]`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("DecodeManifest(array) error = %v, want ErrTypeMismatch", err)
	}
}

func TestReadManifest(t *testing.T) {
	m, err := ReadManifest(strings.NewReader(`{"json": {"foo": "bar"}}`))
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if _, err := SelectBinary(m, []string{"x"}); !errors.Is(err, ErrStructural) {
		t.Errorf("SelectBinary() error = %v, want ErrStructural", err)
	}
}

func TestDecodeRelease(t *testing.T) {
	r, err := DecodeRelease([]byte(bareRelease))
	if err != nil {
		t.Fatalf("DecodeRelease() error = %v", err)
	}
	if r.TagName != "v2.67.0" {
		t.Errorf("TagName = %q", r.TagName)
	}
	if len(r.Assets) != 2 || r.Assets[1].Size != 20 {
		t.Fatalf("Assets = %+v", r.Assets)
	}

	urls := r.URLs()
	if Basename(urls[0]) != "chezmoi-2.67.0-aarch64.rpm" {
		t.Errorf("URLs()[0] = %q", urls[0])
	}

	got, err := SelectBinary(r.Manifest(), []string{"aarch64", "darwin-arm64"})
	if err != nil {
		t.Fatalf("SelectBinary(Manifest()) error = %v", err)
	}
	if got != urls[1] {
		t.Errorf("SelectBinary(Manifest()) = %q, want %q", got, urls[1])
	}
}
