package release

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrStructural   = errors.New("structural error")
	ErrNotFound     = errors.New("not found")
)

// TypeMismatchError reports input of the wrong outer shape.
type TypeMismatchError struct {
	Argument string // "manifest" or "matchers"
	Message  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Argument, e.Message)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// StructuralError reports a manifest that is a mapping but lacks a usable
// json/assets path.
type StructuralError struct {
	Path    string
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("manifest %s: %s", e.Path, e.Message)
}

// Is reports whether target is ErrStructural.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// NotFoundError reports that no asset passed both filter stages. It carries
// enough context to tell a bad matcher from an excluded format.
type NotFoundError struct {
	Matchers  []string // requested matchers
	Available []string // basenames of every asset
	Filtered  []string // basenames that matched before the drop-list ran
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(
		"No matching binaries found for matchers %q. Available assets: %q. After filtering for matchers: %q. After removing package formats: []",
		e.Matchers, e.Available, e.Filtered,
	)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
