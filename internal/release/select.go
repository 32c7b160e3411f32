package release

import (
	"fmt"
	"strings"
)

// SelectBinary returns the first asset URL in manifest that contains at least
// one matcher and none of the drop-list tokens.
//
// manifest must be a map[string]any holding json.assets, a sequence of
// records with a string browser_download_url. matchers must be a []string or
// a []any whose elements are all strings. Input shapes are checked before any
// filtering runs.
func SelectBinary(manifest any, matchers any) (string, error) {
	m, ok := manifest.(map[string]any)
	if !ok {
		return "", &TypeMismatchError{
			Argument: "manifest",
			Message:  fmt.Sprintf("must be a mapping as returned by the release API, got %T", manifest),
		}
	}

	patterns, err := toMatchers(matchers)
	if err != nil {
		return "", err
	}

	urls, err := assetURLs(m)
	if err != nil {
		return "", err
	}

	return selectURL(urls, patterns)
}

// Select is the typed form of SelectBinary.
func Select(assets []Asset, matchers []string) (string, error) {
	urls := make([]string, len(assets))
	for i, a := range assets {
		urls[i] = a.BrowserDownloadURL
	}
	return selectURL(urls, matchers)
}

// Basename returns the part of url after its last slash.
func Basename(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}
	return url
}

func selectURL(urls, matchers []string) (string, error) {
	var filtered []string
	for _, u := range urls {
		if containsAny(u, matchers) {
			filtered = append(filtered, u)
		}
	}

	for _, u := range filtered {
		if !containsAny(u, dropList[:]) {
			return u, nil
		}
	}

	return "", &NotFoundError{
		Matchers:  append([]string(nil), matchers...),
		Available: basenames(urls),
		Filtered:  basenames(filtered),
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func basenames(urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = Basename(u)
	}
	return out
}

// toMatchers checks the matchers argument and returns it as []string.
func toMatchers(v any) ([]string, error) {
	switch m := v.(type) {
	case []string:
		return m, nil
	case []any:
		out := make([]string, len(m))
		for i, e := range m {
			s, ok := e.(string)
			if !ok {
				return nil, &TypeMismatchError{
					Argument: "matchers",
					Message:  fmt.Sprintf("element %d must be a string, got %T", i, e),
				}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, &TypeMismatchError{
			Argument: "matchers",
			Message:  fmt.Sprintf("must be a list of substrings to match against asset URLs, got %T", v),
		}
	}
}

// assetURLs walks json.assets and projects each record to its download URL.
func assetURLs(manifest map[string]any) ([]string, error) {
	body, ok := manifest[FieldJSON]
	if !ok {
		return nil, &StructuralError{Path: FieldJSON, Message: "missing; is it release API output?"}
	}
	bodyMap, ok := body.(map[string]any)
	if !ok {
		return nil, &StructuralError{Path: FieldJSON, Message: fmt.Sprintf("must be a mapping, got %T", body)}
	}

	path := FieldJSON + "." + FieldAssets
	raw, ok := bodyMap[FieldAssets]
	if !ok {
		return nil, &StructuralError{Path: path, Message: "missing 'assets' object; is it release API output?"}
	}
	assets, ok := raw.([]any)
	if !ok {
		return nil, &StructuralError{Path: path, Message: fmt.Sprintf("must be a sequence, got %T", raw)}
	}

	urls := make([]string, len(assets))
	for i, a := range assets {
		record, ok := a.(map[string]any)
		if !ok {
			return nil, &StructuralError{
				Path:    fmt.Sprintf("%s[%d]", path, i),
				Message: fmt.Sprintf("must be a mapping, got %T", a),
			}
		}
		u, ok := record[FieldDownloadURL].(string)
		if !ok {
			return nil, &StructuralError{
				Path:    fmt.Sprintf("%s[%d].%s", path, i, FieldDownloadURL),
				Message: "missing or not a string",
			}
		}
		urls[i] = u
	}

	return urls, nil
}
