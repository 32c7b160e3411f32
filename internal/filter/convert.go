package filter

import (
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// maxDepth bounds table nesting so self-referencing tables cannot recurse
// forever.
const maxDepth = 64

// fromLua converts a Lua value to the Go shapes release.SelectBinary accepts.
func fromLua(v lua.LValue) (any, error) {
	return fromLuaDepth(v, 0)
}

func fromLuaDepth(v lua.LValue, depth int) (any, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LBool:
		return bool(v), nil
	case lua.LNumber:
		return float64(v), nil
	case lua.LString:
		return string(v), nil
	case *lua.LTable:
		if depth >= maxDepth {
			return nil, fmt.Errorf("table nesting exceeds %d levels", maxDepth)
		}
		return tableFromLua(v, depth+1)
	default:
		// Functions, userdata and threads have no data form; pass them
		// through so validation reports their type.
		return v, nil
	}
}

func tableFromLua(t *lua.LTable, depth int) (any, error) {
	n := t.Len()
	count := 0
	t.ForEach(func(lua.LValue, lua.LValue) { count++ })

	if count == n {
		list := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			e, err := fromLuaDepth(t.RawGetInt(i), depth)
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
		return list, nil
	}

	m := make(map[string]any, count)
	var convErr error
	t.ForEach(func(key, value lua.LValue) {
		if convErr != nil {
			return
		}
		var k string
		switch key := key.(type) {
		case lua.LString:
			k = string(key)
		case lua.LNumber:
			k = strconv.FormatFloat(float64(key), 'f', -1, 64)
		default:
			k = key.String()
		}
		e, err := fromLuaDepth(value, depth)
		if err != nil {
			convErr = err
			return
		}
		m[k] = e
	})
	if convErr != nil {
		return nil, convErr
	}
	return m, nil
}

// toLua converts decoded JSON (and the string slices used for matchers) into
// Lua values.
func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case float64:
		return lua.LNumber(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case []string:
		t := L.CreateTable(len(v), 0)
		for _, s := range v {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.CreateTable(len(v), 0)
		for i, e := range v {
			t.RawSetInt(i+1, toLua(L, e))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(v))
		for k, e := range v {
			t.RawSetString(k, toLua(L, e))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(v))
	}
}
