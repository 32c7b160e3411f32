package release

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeManifest decodes a JSON release document into the map form accepted
// by SelectBinary. A document without a top-level "json" key is treated as a
// bare API response and wrapped.
func DecodeManifest(data []byte) (map[string]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{
			Argument: "manifest",
			Message:  fmt.Sprintf("must be a JSON object, got %T", doc),
		}
	}

	if _, wrapped := m[FieldJSON]; wrapped {
		return m, nil
	}
	return map[string]any{FieldJSON: m}, nil
}

// ReadManifest reads all of r and decodes it with DecodeManifest.
func ReadManifest(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return DecodeManifest(data)
}

// DecodeRelease decodes a bare release API response into a Release.
func DecodeRelease(data []byte) (*Release, error) {
	var r Release
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &r, nil
}
