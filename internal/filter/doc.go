// Package filter exposes release binary selection to Lua scripts.
//
// A Runtime owns a sandboxed gopher-lua state with a read-only global "ghdl"
// table:
//
//	ghdl.filter_binaries(manifest, matchers) -- url, raises on failure
//	ghdl.select(manifest, matchers)          -- url | nil, message, kind
//	ghdl.decode_manifest(json_string)        -- manifest table
//	ghdl.basename(url)                       -- final path segment
//	ghdl.drop_list()                         -- excluded substrings
//
// kind is one of "type_mismatch", "structural" or "not_found".
//
// # Sandbox
//
// Scripts cannot execute commands, touch the filesystem or load code: the os,
// io, debug and package loading globals are removed. string, table and math
// stay available.
//
// # Usage
//
//	rt, err := filter.NewRuntime(filter.WithPlatform(info))
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	rt.SetManifest(manifest)
//	url, err := rt.Run(ctx, `result = ghdl.filter_binaries(release, platform.matchers)`)
//
// # Value conversion
//
// Lua tables whose keys are exactly 1..n become []any, other tables become
// map[string]any. Empty tables become empty sequences, except a manifest
// argument, which becomes an empty mapping.
package filter
