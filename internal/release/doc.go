// Package release selects the raw binary download from a release manifest.
//
// A release manifest is the JSON body of a source-hosting platform's release
// API, wrapped one level under a "json" key:
//
//	{"json": {"assets": [{"browser_download_url": "https://..."}, ...]}}
//
// # Selection
//
// Selection runs two filter stages over the asset URLs, in manifest order:
//  1. Keep URLs containing at least one caller-supplied matcher.
//  2. Drop URLs containing any drop-list token (checksums, update deltas,
//     distribution packages).
//
// The first surviving URL is returned verbatim. Both stages use plain,
// case-sensitive substring containment, so a token like "deb" also excludes
// an asset named "binary-debug". Callers pick matchers specific enough to
// avoid that.
//
// # Errors
//
// Failures are typed and never recovered locally:
//   - TypeMismatchError: the manifest is not a mapping, or matchers are not a
//     sequence of strings
//   - StructuralError: the manifest has no json/assets path to asset records
//   - NotFoundError: no asset survives both stages
//
// Each type matches its sentinel (ErrTypeMismatch, ErrStructural, ErrNotFound)
// with errors.Is.
//
// # Usage
//
//	manifest, err := release.DecodeManifest(body)
//	if err != nil {
//	    return err
//	}
//	url, err := release.SelectBinary(manifest, []string{"linux-amd64", "linux_amd64"})
package release
