package filter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/ghdl/internal/logging"
	"github.com/ZebulonRouseFrantzich/ghdl/internal/platform"
	"github.com/ZebulonRouseFrantzich/ghdl/internal/release"
	lua "github.com/yuin/gopher-lua"
)

// Lua globals
const (
	luaGlobalNamespace = "ghdl"
	luaGlobalManifest  = "release"
	luaGlobalResult    = "result"
	luaGlobalMatchers  = "matchers"
)

// Error kinds reported to scripts by ghdl.select.
const (
	KindTypeMismatch = "type_mismatch"
	KindStructural   = "structural"
	KindNotFound     = "not_found"
	KindOther        = "error"
)

// Runtime is a sandboxed Lua state with the ghdl functions registered. It is
// not safe for concurrent use; create one Runtime per goroutine.
type Runtime struct {
	L        *lua.LState
	logger   logging.Logger
	platform *platform.Info

	// lastErr is the most recent selection error raised into the script.
	lastErr error
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for selection outcomes.
func WithLogger(logger logging.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPlatform injects a read-only "platform" table for info.
func WithPlatform(info *platform.Info) Option {
	return func(r *Runtime) {
		r.platform = info
	}
}

// NewRuntime creates a sandboxed Lua state with the ghdl table registered.
func NewRuntime(opts ...Option) (*Runtime, error) {
	r := &Runtime{logger: logging.Noop()}
	for _, opt := range opts {
		opt(r)
	}

	r.L = newSandboxedVM()

	if r.platform != nil {
		if err := platform.InjectPlatformTable(r.L, r.platform); err != nil {
			r.L.Close()
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	r.register()
	return r, nil
}

// Close releases the Lua state.
func (r *Runtime) Close() {
	r.L.Close()
}

// SetManifest exposes manifest to scripts as the global "release".
func (r *Runtime) SetManifest(manifest map[string]any) {
	r.L.SetGlobal(luaGlobalManifest, toLua(r.L, manifest))
}

// SetMatchers exposes matchers to scripts as the global "matchers".
func (r *Runtime) SetMatchers(matchers []string) {
	r.L.SetGlobal(luaGlobalMatchers, toLua(r.L, matchers))
}

// Run executes code and returns the string the script stored in the global
// "result". Cancelling ctx aborts the script.
func (r *Runtime) Run(ctx context.Context, code string) (string, error) {
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	r.lastErr = nil
	r.L.SetGlobal(luaGlobalResult, lua.LNil)

	if err := r.L.DoString(code); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("script cancelled: %w", ctx.Err())
		}
		return "", &ScriptError{
			Message: "Lua script failed",
			Detail:  err.Error(),
			Err:     r.raisedError(err),
		}
	}

	result := r.L.GetGlobal(luaGlobalResult)
	if result.Type() != lua.LTString {
		return "", &ScriptError{
			Message: "script did not produce a URL",
			Detail:  fmt.Sprintf("expected string in global %q, got %s", luaGlobalResult, result.Type()),
		}
	}
	return result.String(), nil
}

// raisedError returns the selection error behind err when the script died
// from it rather than catching it with pcall and failing later.
func (r *Runtime) raisedError(err error) error {
	var apiErr *lua.ApiError
	if r.lastErr == nil || !errors.As(err, &apiErr) || apiErr.Object == nil {
		return nil
	}
	if !strings.Contains(apiErr.Object.String(), r.lastErr.Error()) {
		return nil
	}
	return r.lastErr
}

func (r *Runtime) register() {
	L := r.L
	ns := L.NewTable()
	L.SetField(ns, "filter_binaries", L.NewFunction(r.luaFilterBinaries))
	L.SetField(ns, "select", L.NewFunction(r.luaSelect))
	L.SetField(ns, "decode_manifest", L.NewFunction(r.luaDecodeManifest))
	L.SetField(ns, "basename", L.NewFunction(luaBasename))
	L.SetField(ns, "drop_list", L.NewFunction(luaDropList))
	L.SetGlobal(luaGlobalNamespace, platform.ReadOnly(L, ns, luaGlobalNamespace))
}

// selectFromArgs converts the two Lua arguments and runs the selector.
func (r *Runtime) selectFromArgs(L *lua.LState) (string, error) {
	manifest, err := fromLua(L.Get(1))
	if err != nil {
		return "", fmt.Errorf("manifest: %w", err)
	}
	// An empty Lua table is ambiguous; as a manifest it is an empty mapping.
	if list, ok := manifest.([]any); ok && len(list) == 0 {
		manifest = map[string]any{}
	}

	matchers, err := fromLua(L.Get(2))
	if err != nil {
		return "", fmt.Errorf("matchers: %w", err)
	}

	url, err := release.SelectBinary(manifest, matchers)
	if err != nil {
		r.logger.Debug("no binary selected", "kind", errorKind(err), "error", err)
		return "", err
	}

	r.logger.Debug("selected binary", "url", url, "asset", release.Basename(url))
	return url, nil
}

// ghdl.filter_binaries(manifest, matchers) -> url
func (r *Runtime) luaFilterBinaries(L *lua.LState) int {
	url, err := r.selectFromArgs(L)
	if err != nil {
		r.lastErr = err
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(url))
	return 1
}

// ghdl.select(manifest, matchers) -> url | nil, message, kind
func (r *Runtime) luaSelect(L *lua.LState) int {
	url, err := r.selectFromArgs(L)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		L.Push(lua.LString(errorKind(err)))
		return 3
	}
	L.Push(lua.LString(url))
	return 1
}

// ghdl.decode_manifest(json) -> manifest
func (r *Runtime) luaDecodeManifest(L *lua.LState) int {
	manifest, err := release.DecodeManifest([]byte(L.CheckString(1)))
	if err != nil {
		r.lastErr = err
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(toLua(L, manifest))
	return 1
}

// ghdl.basename(url) -> string
func luaBasename(L *lua.LState) int {
	L.Push(lua.LString(release.Basename(L.CheckString(1))))
	return 1
}

// ghdl.drop_list() -> {string...}
func luaDropList(L *lua.LState) int {
	L.Push(toLua(L, release.DropList()))
	return 1
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, release.ErrTypeMismatch):
		return KindTypeMismatch
	case errors.Is(err, release.ErrStructural):
		return KindStructural
	case errors.Is(err, release.ErrNotFound):
		return KindNotFound
	default:
		return KindOther
	}
}

// ScriptError is a script failure with a short message and the raw Lua error.
// Err is the selection error that aborted the script, if any.
type ScriptError struct {
	Message string
	Detail  string
	Err     error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// FormatError formats err for display. Outside verbose mode the Lua stack
// traceback is cut off.
func FormatError(err error, verbose bool) string {
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		return err.Error()
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", scriptErr.Message, scriptErr.Detail)
	}
	detail := scriptErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", scriptErr.Message, detail)
}
