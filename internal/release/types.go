package release

// Manifest path and field names.
const (
	FieldJSON        = "json"
	FieldAssets      = "assets"
	FieldDownloadURL = "browser_download_url"
)

// dropList holds the substrings that mark an asset as something other than a
// raw binary. It is only read; DropList hands out copies.
var dropList = [...]string{"sha256", "-update", "apk", "rpm", "deb", "zst", "exe"}

// DropList returns a copy of the substrings that exclude an asset from
// selection.
func DropList() []string {
	out := make([]string, len(dropList))
	copy(out, dropList[:])
	return out
}

// Asset is one downloadable file of a release.
type Asset struct {
	Name               string `json:"name,omitempty"`
	BrowserDownloadURL string `json:"browser_download_url"`
	ContentType        string `json:"content_type,omitempty"`
	Size               int64  `json:"size,omitempty"`
}

// Release is the subset of a release API response that selection cares about.
type Release struct {
	TagName string  `json:"tag_name,omitempty"`
	Name    string  `json:"name,omitempty"`
	Assets  []Asset `json:"assets"`
}

// Manifest returns the release in the wrapped map form accepted by
// SelectBinary.
func (r *Release) Manifest() map[string]any {
	assets := make([]any, 0, len(r.Assets))
	for _, a := range r.Assets {
		assets = append(assets, map[string]any{
			FieldDownloadURL: a.BrowserDownloadURL,
			"name":           a.Name,
		})
	}

	return map[string]any{
		FieldJSON: map[string]any{
			"tag_name":  r.TagName,
			"name":      r.Name,
			FieldAssets: assets,
		},
	}
}

// URLs returns the download URLs of all assets in manifest order.
func (r *Release) URLs() []string {
	urls := make([]string, len(r.Assets))
	for i, a := range r.Assets {
		urls[i] = a.BrowserDownloadURL
	}
	return urls
}
