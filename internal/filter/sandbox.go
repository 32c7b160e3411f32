package filter

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM removes globals that could execute commands, touch the
// filesystem, load external code or bypass the sandbox.
func sandboxLuaVM(L *lua.LState) {
	for _, name := range []string{
		"os",
		"io",
		"require",
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"module",
		"debug",
		"package",
	} {
		L.SetGlobal(name, lua.LNil)
	}
}

func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
