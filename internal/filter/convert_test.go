package filter

import (
	"reflect"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestFromLua(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tests := []struct {
		name string
		code string
		want any
	}{
		{"string", `return "x"`, "x"},
		{"number", `return 3`, float64(3)},
		{"bool", `return true`, true},
		{"nil", `return nil`, nil},
		{"sequence", `return {"a", "b"}`, []any{"a", "b"}},
		{"empty", `return {}`, []any{}},
		{"mapping", `return {a = "x", b = {1, 2}}`, map[string]any{"a": "x", "b": []any{float64(1), float64(2)}}},
		{"mixed", `return {"a", k = "v"}`, map[string]any{"1": "a", "k": "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.code); err != nil {
				t.Fatalf("DoString() error = %v", err)
			}
			v := L.Get(-1)
			L.Pop(1)

			got, err := fromLua(v)
			if err != nil {
				t.Fatalf("fromLua() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("fromLua() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFromLua_Cycle(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(`local t = {}; t.self = t; return t`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	v := L.Get(-1)
	L.Pop(1)

	if _, err := fromLua(v); err == nil || !strings.Contains(err.Error(), "nesting") {
		t.Errorf("fromLua(cycle) error = %v, want nesting error", err)
	}
}

func TestToLua_RoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	in := map[string]any{
		"json": map[string]any{
			"assets": []any{
				map[string]any{"browser_download_url": "https://example.com/a", "size": float64(10)},
			},
			"draft": false,
		},
	}

	got, err := fromLua(toLua(L, in))
	if err != nil {
		t.Fatalf("fromLua() error = %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %#v, want %#v", got, in)
	}
}
